package errors

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestSentinelMatching(t *testing.T) {
	is := is.New(t)

	is.True(errors.Is(NewSchemaError("nope"), ErrSchema))
	is.True(errors.Is(NewRequestError("nope"), ErrRequest))
	is.True(errors.Is(NewBadResponseError("nope"), ErrBadResponse))
	is.True(!errors.Is(NewSchemaError("nope"), ErrRequest))
}

func TestParseErrorTruncatesTheSnippet(t *testing.T) {
	is := is.New(t)

	body := []byte(strings.Repeat("x", 1000))
	err := NewParseError("could not parse the document.", body)

	is.True(errors.Is(err, ErrParse))
	is.True(len(err.Snippet()) <= 256)
	is.True(strings.Contains(err.Error(), "could not parse the document."))
}

func TestClientErrorAlwaysCarriesAPayload(t *testing.T) {
	is := is.New(t)

	err := NewClientError(http.StatusBadRequest, []byte("raw"), "Bad Request", http.Header{}, nil)

	is.True(errors.Is(err, ErrClient))
	is.True(err.Err != nil)
	is.Equal(len(err.Err.Parameters()), 0)
}

func TestServerError(t *testing.T) {
	is := is.New(t)

	err := NewServerError(http.StatusBadGateway, []byte("upstream down"), "Bad Gateway", http.Header{})

	is.True(errors.Is(err, ErrServer))
	is.Equal(err.StatusCode, http.StatusBadGateway)
}
