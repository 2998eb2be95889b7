// Package client is the HTTP orchestrator of the SDK: it resolves
// navigation by URL, hands response bodies to the parser, and injects itself
// into every parsed entity so the entity graph can refresh and submit forms
// through the same client and access token.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/symfonycorp/connect-go/pkg/connect/entity"
	connecterrors "github.com/symfonycorp/connect-go/pkg/connect/errors"
	"github.com/symfonycorp/connect-go/pkg/connect/model"
	"github.com/symfonycorp/connect-go/pkg/connect/parser"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultEndpoint is the production API entry point.
const DefaultEndpoint = "https://connect.symfony.com/api"

const accessTokenParameter = "access_token"

type ConnectClient interface {
	Root(ctx context.Context) (*entity.Root, error)
	Get(ctx context.Context, url string, headers map[string][]string) (entity.Resource, error)
	Submit(ctx context.Context, url, method string, fields *model.Fields, headers map[string][]string) (entity.Resource, error)

	SetAccessToken(token string)
	ResetAccessToken()
	AccessToken() string
}

func Debug(enabled string) func(*connectClient) {
	return func(c *connectClient) {
		c.debug = (enabled == "true")
	}
}

func Endpoint(endpoint string) func(*connectClient) {
	return func(c *connectClient) {
		c.endpoint = endpoint
	}
}

func AccessToken(token string) func(*connectClient) {
	return func(c *connectClient) {
		c.accessToken = token
	}
}

// NewConnectClient creates a client for the given API endpoint. One client
// should be used per logical session: the access token is the only piece of
// shared mutable state.
func NewConnectClient(options ...func(*connectClient)) ConnectClient {
	c := &connectClient{
		endpoint: DefaultEndpoint,
		parser:   parser.New(),
		debug:    false,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

const TraceAttributeURL string = "connect-url"

var tracer = otel.Tracer("connect-client")

type connectClient struct {
	endpoint    string
	accessToken string
	parser      *parser.Parser
	debug       bool
}

func (c *connectClient) Root(ctx context.Context) (*entity.Root, error) {
	resource, err := c.Get(ctx, c.endpoint, nil)
	if err != nil {
		return nil, err
	}

	root, ok := resource.(*entity.Root)
	if !ok {
		return nil, connecterrors.NewBadResponseError(fmt.Sprintf("the api entry point did not return a root, got %s", resource.Kind()))
	}

	return root, nil
}

func (c *connectClient) SetAccessToken(token string) {
	c.accessToken = token
}

func (c *connectClient) ResetAccessToken() {
	c.accessToken = ""
}

func (c *connectClient) AccessToken() string {
	return c.accessToken
}

func (c *connectClient) Get(ctx context.Context, target string, headers map[string][]string) (entity.Resource, error) {
	var err error

	ctx, span := tracer.Start(ctx, "get-resource",
		trace.WithAttributes(attribute.String(TraceAttributeURL, target)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	target, err = c.urlWithAccessToken(target)
	if err != nil {
		return nil, err
	}

	var resource entity.Resource
	resource, err = c.call(ctx, http.MethodGet, target, nil, headers)

	return resource, err
}

// Submit dispatches a form submission. GET submissions go as query
// parameters, anything else as a form encoded request body.
func (c *connectClient) Submit(ctx context.Context, target, method string, fields *model.Fields, headers map[string][]string) (entity.Resource, error) {
	var err error

	method = strings.ToUpper(method)

	ctx, span := tracer.Start(ctx, "submit-form",
		trace.WithAttributes(attribute.String(TraceAttributeURL, target)),
		trace.WithAttributes(attribute.String("connect-form-method", method)),
	)
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	target, err = c.urlWithAccessToken(target)
	if err != nil {
		return nil, err
	}

	values := encodeFields(fields)

	var body io.Reader
	if method == http.MethodGet {
		target, err = mergeQuery(target, values)
		if err != nil {
			return nil, err
		}
	} else {
		body = strings.NewReader(values.Encode())
		if headers == nil {
			headers = map[string][]string{}
		}
		headers["Content-Type"] = []string{"application/x-www-form-urlencoded"}
	}

	var resource entity.Resource
	resource, err = c.call(ctx, method, target, body, headers)

	return resource, err
}

func (c *connectClient) call(ctx context.Context, method, target string, body io.Reader, headers map[string][]string) (entity.Resource, error) {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, connecterrors.NewRequestError(fmt.Sprintf("failed to create request: %s", err.Error()))
	}

	req.Header.Set("Accept", c.parser.ContentType())
	for header, headerValues := range headers {
		for _, value := range headerValues {
			req.Header.Add(header, value)
		}
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, connecterrors.NewRequestError(fmt.Sprintf("failed to send request: %s", err.Error()))
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connecterrors.NewBadResponseError(fmt.Sprintf("failed to read response body: %s", err.Error()))
	}

	if c.debug && resp.StatusCode >= http.StatusBadRequest {
		reqbytes, _ := httputil.DumpRequest(req, false)
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error("request failed",
			slog.String("request", string(reqbytes)),
			slog.String("response", string(respbytes)),
		)
	}

	return c.classify(resp, respBody)
}

func (c *connectClient) classify(resp *http.Response, respBody []byte) (entity.Resource, error) {
	reason := http.StatusText(resp.StatusCode)

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, connecterrors.NewServerError(resp.StatusCode, respBody, reason, resp.Header)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		// an unparseable body still reports the original status, wrapped
		// around an empty error payload
		resource, err := c.parser.Parse(respBody)
		if err != nil {
			return nil, connecterrors.NewClientError(resp.StatusCode, respBody, reason, resp.Header, nil)
		}

		modelError, _ := resource.(*model.Error)

		return nil, connecterrors.NewClientError(resp.StatusCode, respBody, reason, resp.Header, modelError)
	}

	if resp.StatusCode == http.StatusNoContent || len(strings.TrimSpace(string(respBody))) == 0 {
		return entity.NoContent, nil
	}

	resource, err := c.parser.Parse(respBody)
	if err != nil {
		return nil, err
	}

	if e, ok := resource.(interface{ SetAPI(entity.API) }); ok {
		e.SetAPI(c)
	}

	return resource, nil
}

// urlWithAccessToken merges the access token into the target's query string
// without disturbing other parameters. An existing parameter of the same
// name is overwritten.
func (c *connectClient) urlWithAccessToken(target string) (string, error) {
	if c.accessToken == "" {
		return target, nil
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", connecterrors.NewRequestError(fmt.Sprintf("invalid url %q: %s", target, err.Error()))
	}

	query := parsed.Query()
	query.Set(accessTokenParameter, c.accessToken)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func mergeQuery(target string, values url.Values) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", connecterrors.NewRequestError(fmt.Sprintf("invalid url %q: %s", target, err.Error()))
	}

	query := parsed.Query()
	for key, keyValues := range values {
		for _, value := range keyValues {
			query.Add(key, value)
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// encodeFields flattens a field map into form values. Repeated groups use
// the wire's bracket convention: name[0][subfield]=value.
func encodeFields(fields *model.Fields) url.Values {
	values := url.Values{}
	if fields == nil {
		return values
	}

	for _, name := range fields.Names() {
		value, _ := fields.Get(name)
		encodeValue(values, name, value)
	}

	return values
}

func encodeValue(values url.Values, key string, value any) {
	switch v := value.(type) {
	case nil:
		// omitted, like null fields in a form encoded payload
	case string:
		values.Set(key, v)
	case bool:
		if v {
			values.Set(key, "1")
		} else {
			values.Set(key, "0")
		}
	case int:
		values.Set(key, strconv.Itoa(v))
	case time.Time:
		values.Set(key, v.Format(time.RFC3339))
	case []string:
		for i, item := range v {
			values.Set(fmt.Sprintf("%s[%d]", key, i), item)
		}
	case *model.Fields:
		for _, sub := range v.Names() {
			subValue, _ := v.Get(sub)
			encodeValue(values, fmt.Sprintf("%s[%s]", key, sub), subValue)
		}
	case []*model.Fields:
		for i, group := range v {
			for _, sub := range group.Names() {
				subValue, _ := group.Get(sub)
				encodeValue(values, fmt.Sprintf("%s[%d][%s]", key, i, sub), subValue)
			}
		}
	default:
		values.Set(key, fmt.Sprintf("%v", v))
	}
}
