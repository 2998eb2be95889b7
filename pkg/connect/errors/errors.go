package errors

import (
	"fmt"
	"net/http"

	"github.com/symfonycorp/connect-go/pkg/connect/model"
)

var ErrParse = fmt.Errorf("parse error")
var ErrClient = fmt.Errorf("client error")
var ErrServer = fmt.Errorf("server error")
var ErrSchema = fmt.Errorf("schema error")
var ErrRequest = fmt.Errorf("request error")
var ErrBadResponse = fmt.Errorf("bad response")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

// NewSchemaError signals a programming error in the calling code, such as
// reading an undeclared property or submitting an unknown form id.
func NewSchemaError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrSchema,
	}
}

func NewRequestError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrRequest,
	}
}

func NewBadResponseError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrBadResponse,
	}
}

const parseErrorSnippetLength = 256

// ParseError is returned when a response body could not be turned into an
// entity: malformed XML, a missing required node or attribute, or a value
// outside the known vocabulary. It carries a snippet of the offending
// document.
type ParseError struct {
	msg     string
	snippet string
}

func NewParseError(msg string, body []byte) *ParseError {
	snippet := string(body)
	if len(snippet) > parseErrorSnippetLength {
		snippet = snippet[:parseErrorSnippetLength] + "..."
	}

	return &ParseError{
		msg:     msg,
		snippet: snippet,
	}
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s Body: %q", e.msg, e.snippet)
}

func (e ParseError) Is(target error) bool { return target == ErrParse }

func (e ParseError) Snippet() string { return e.snippet }

// ClientError wraps an HTTP 4xx response. When the response body parsed as a
// structured validation payload, Err holds it; otherwise Err is an empty
// model.Error so the status is still reported.
type ClientError struct {
	StatusCode int
	Body       []byte
	Reason     string
	Headers    http.Header
	Err        *model.Error
}

func NewClientError(statusCode int, body []byte, reason string, headers http.Header, modelError *model.Error) *ClientError {
	if modelError == nil {
		modelError = model.NewError()
	}

	return &ClientError{
		StatusCode: statusCode,
		Body:       body,
		Reason:     reason,
		Headers:    headers,
		Err:        modelError,
	}
}

func (e ClientError) Error() string {
	return fmt.Sprintf("client error %d: %s", e.StatusCode, e.Reason)
}

func (e ClientError) Is(target error) bool { return target == ErrClient }

// ServerError wraps an HTTP 5xx response.
type ServerError struct {
	StatusCode int
	Body       []byte
	Reason     string
	Headers    http.Header
}

func NewServerError(statusCode int, body []byte, reason string, headers http.Header) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		Body:       body,
		Reason:     reason,
		Headers:    headers,
	}
}

func (e ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Reason)
}

func (e ServerError) Is(target error) bool { return target == ErrServer }
