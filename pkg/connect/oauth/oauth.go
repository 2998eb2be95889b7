// Package oauth performs the authorization-code exchange against the
// Connect identity provider. The rest of the SDK only ever sees the opaque
// bearer token this package produces.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// DefaultEndpoint is the production identity provider.
const DefaultEndpoint = "https://connect.symfony.com"

const (
	authorizePath   = "/oauth/authorize"
	accessTokenPath = "/oauth/access_token"
)

var tracer = otel.Tracer("connect-oauth")

// Error is a failure reported by the OAuth2 provider, keyed by the error
// code of the provider's payload.
type Error struct {
	Code    string
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("oauth error %q: %s", e.Code, e.Message)
}

// AccessToken is the outcome of a completed authorization-code exchange.
type AccessToken struct {
	Token string
	Scope string
}

type Consumer struct {
	appID        string
	appSecret    string
	scope        string
	endpoint     string
	strictChecks bool
}

func Endpoint(endpoint string) func(*Consumer) {
	return func(c *Consumer) {
		c.endpoint = endpoint
	}
}

// WithoutStrictChecks disables the provider-side strict redirect checks.
func WithoutStrictChecks() func(*Consumer) {
	return func(c *Consumer) {
		c.strictChecks = false
	}
}

func NewConsumer(appID, appSecret, scope string, options ...func(*Consumer)) *Consumer {
	c := &Consumer{
		appID:        appID,
		appSecret:    appSecret,
		scope:        scope,
		endpoint:     DefaultEndpoint,
		strictChecks: true,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// AuthorizationURL builds the URL to send the user's browser to. The state
// is echoed back on the callback and must be verified by the caller.
func (c *Consumer) AuthorizationURL(callbackURI, state string) string {
	params := url.Values{}
	params.Set("client_id", c.appID)
	params.Set("scope", c.scope)
	params.Set("redirect_uri", callbackURI)
	params.Set("state", state)
	params.Set("response_type", "code")

	return c.endpoint + authorizePath + "?" + params.Encode()
}

// RequestAccessToken trades an authorization code for a bearer token.
func (c *Consumer) RequestAccessToken(ctx context.Context, callbackURI, authorizationCode string) (*AccessToken, error) {
	var err error

	ctx, span := tracer.Start(ctx, "request-access-token")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	params := url.Values{}
	params.Set("client_id", c.appID)
	params.Set("client_secret", c.appSecret)
	params.Set("code", authorizationCode)
	params.Set("grant_type", "authorization_code")
	params.Set("redirect_uri", callbackURI)
	params.Set("response_type", "code")
	params.Set("scope", c.scope)
	if c.strictChecks {
		params.Set("strict", "true")
	} else {
		params.Set("strict", "false")
	}

	target := c.endpoint + accessTokenPath
	log.Debug("requesting access token", slog.String("url", target))

	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	payload := struct {
		AccessToken string `json:"access_token"`
		Scope       string `json:"scope"`
		Error       string `json:"error"`
		Message     string `json:"message"`
	}{}

	if err = json.Unmarshal(respBody, &payload); err != nil {
		log.Error("received a non-json response from the oauth provider", slog.String("body", string(respBody)))
		err = &Error{Code: "provider", Message: "response content couldn't be converted to JSON"}
		return nil, err
	}

	if payload.Error != "" {
		log.Error("the oauth provider responded with an error", slog.String("body", string(respBody)))
		err = &Error{Code: payload.Error, Message: payload.Message}
		return nil, err
	}

	return &AccessToken{Token: payload.AccessToken, Scope: payload.Scope}, nil
}
