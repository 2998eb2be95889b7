package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	testutils "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"

	"github.com/matryer/is"
)

var Expects = testutils.Expects
var Returns = testutils.Returns
var anyInput = expects.AnyInput
var method = expects.RequestMethod
var path = expects.RequestPath
var body = expects.RequestBody

func TestAuthorizationURL(t *testing.T) {
	is := is.New(t)

	consumer := NewConsumer("app-id", "app-secret", "SCOPE_EMAIL")

	authURL := consumer.AuthorizationURL("https://example.com/callback", "random-state")

	parsed, err := url.Parse(authURL)
	is.NoErr(err)
	is.Equal(parsed.Path, "/oauth/authorize")
	is.True(strings.HasPrefix(authURL, DefaultEndpoint))

	query := parsed.Query()
	is.Equal(query.Get("client_id"), "app-id")
	is.Equal(query.Get("scope"), "SCOPE_EMAIL")
	is.Equal(query.Get("redirect_uri"), "https://example.com/callback")
	is.Equal(query.Get("state"), "random-state")
	is.Equal(query.Get("response_type"), "code")

	// the secret never appears in a browser-visible url
	is.True(!strings.Contains(authURL, "app-secret"))
}

func TestRequestAccessToken(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is,
			method(http.MethodPost),
			path("/oauth/access_token"),
			body("client_id=app-id&client_secret=app-secret&code=the-code&grant_type=authorization_code&redirect_uri=https%3A%2F%2Fexample.com%2Fcallback&response_type=code&scope=SCOPE_EMAIL&strict=true"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"access_token":"tok-456","scope":"SCOPE_EMAIL"}`)),
		),
	)
	defer s.Close()

	consumer := NewConsumer("app-id", "app-secret", "SCOPE_EMAIL", Endpoint(s.URL()))

	token, err := consumer.RequestAccessToken(context.Background(), "https://example.com/callback", "the-code")
	is.NoErr(err)
	is.Equal(token.Token, "tok-456")
	is.Equal(token.Scope, "SCOPE_EMAIL")
}

func TestRequestAccessTokenWithoutStrictChecks(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is,
			method(http.MethodPost),
			body("client_id=app-id&client_secret=app-secret&code=the-code&grant_type=authorization_code&redirect_uri=https%3A%2F%2Fexample.com%2Fcallback&response_type=code&scope=SCOPE_EMAIL&strict=false"),
		),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusOK),
			response.Body([]byte(`{"access_token":"tok-456","scope":"SCOPE_EMAIL"}`)),
		),
	)
	defer s.Close()

	consumer := NewConsumer("app-id", "app-secret", "SCOPE_EMAIL", Endpoint(s.URL()), WithoutStrictChecks())

	_, err := consumer.RequestAccessToken(context.Background(), "https://example.com/callback", "the-code")
	is.NoErr(err)
}

func TestRequestAccessTokenSurfacesProviderErrors(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("application/json"),
			response.Code(http.StatusBadRequest),
			response.Body([]byte(`{"error":"invalid_grant","message":"The authorization code has expired."}`)),
		),
	)
	defer s.Close()

	consumer := NewConsumer("app-id", "app-secret", "SCOPE_EMAIL", Endpoint(s.URL()))

	_, err := consumer.RequestAccessToken(context.Background(), "https://example.com/callback", "the-code")
	is.True(err != nil)

	var oauthErr *Error
	is.True(errors.As(err, &oauthErr))
	is.Equal(oauthErr.Code, "invalid_grant")
	is.Equal(oauthErr.Message, "The authorization code has expired.")
}

func TestRequestAccessTokenRejectsNonJSONResponses(t *testing.T) {
	is := is.New(t)

	s := testutils.NewMockServiceThat(
		Expects(is, anyInput()),
		Returns(
			response.ContentType("text/html"),
			response.Code(http.StatusOK),
			response.Body([]byte("<html>maintenance</html>")),
		),
	)
	defer s.Close()

	consumer := NewConsumer("app-id", "app-secret", "SCOPE_EMAIL", Endpoint(s.URL()))

	_, err := consumer.RequestAccessToken(context.Background(), "https://example.com/callback", "the-code")
	is.True(err != nil)

	var oauthErr *Error
	is.True(errors.As(err, &oauthErr))
	is.Equal(oauthErr.Code, "provider")
}
