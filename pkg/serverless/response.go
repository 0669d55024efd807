package serverless

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// Common header names set by the response constructors
const (
	HeaderContentType = "Content-Type"
	HeaderLocation    = "Location"
)

// Response is a platform-agnostic response returned by handlers
type Response struct {
	status    int
	hasStatus bool
	headers   map[string]string
	body      []byte
	isBase64  bool
}

// NewResponse creates a 200 response with no headers and an empty body
func NewResponse() Response {
	return Response{status: http.StatusOK, hasStatus: true, body: []byte{}}
}

// Status returns the status code
func (r Response) Status() int {
	if !r.hasStatus {
		return http.StatusOK
	}
	return r.status
}

// WithStatus sets the status code. No range is enforced.
func (r Response) WithStatus(status int) Response {
	r.status = status
	r.hasStatus = true
	return r
}

// Headers returns a copy of all headers
func (r Response) Headers() map[string]string {
	return copyMap(r.headers)
}

// Header returns a header value
func (r Response) Header(name string) (string, bool) {
	v, ok := r.headers[name]
	return v, ok
}

// WithHeader sets a header
func (r Response) WithHeader(name, value string) Response {
	r.headers = withEntry(r.headers, name, value)
	return r
}

// Body returns the raw body. The returned slice must not be modified.
func (r Response) Body() []byte {
	if r.body == nil {
		return []byte{}
	}
	return r.body
}

// WithBody sets the body. The bytes are copied.
func (r Response) WithBody(body []byte) Response {
	r.body = append(make([]byte, 0, len(body)), body...)
	return r
}

// WithBodyString sets the body from a string
func (r Response) WithBodyString(body string) Response {
	r.body = []byte(body)
	return r
}

// BodyString returns the body as text
func (r Response) BodyString() (string, error) {
	if !utf8.Valid(r.body) {
		return "", NewSerializationError(fmt.Errorf("response body is not valid UTF-8"))
	}
	return string(r.body), nil
}

// IsBase64 reports whether adapters must treat the body as binary
func (r Response) IsBase64() bool {
	return r.isBase64
}

// WithBase64 marks the body as binary content
func (r Response) WithBase64(isBase64 bool) Response {
	r.isBase64 = isBase64
	return r
}

// JSON creates a 200 response with v encoded as the body
func JSON(v any) (Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Response{}, NewSerializationError(err)
	}
	return NewResponse().
		WithHeader(HeaderContentType, "application/json").
		WithBody(body), nil
}

// Text creates a 200 text/plain response
func Text(text string) Response {
	return NewResponse().
		WithHeader(HeaderContentType, "text/plain").
		WithBodyString(text)
}

// HTML creates a 200 text/html response
func HTML(html string) Response {
	return NewResponse().
		WithHeader(HeaderContentType, "text/html").
		WithBodyString(html)
}

// Redirect creates a 302 response pointing at location
func Redirect(location string) Response {
	return NewResponse().
		WithStatus(http.StatusFound).
		WithHeader(HeaderLocation, location)
}

// NotFound creates a 404 response
func NotFound() Response {
	return NewResponse().WithStatus(http.StatusNotFound).WithBodyString("Not Found")
}

// BadRequest creates a 400 response
func BadRequest() Response {
	return NewResponse().WithStatus(http.StatusBadRequest).WithBodyString("Bad Request")
}

// InternalError creates a 500 response
func InternalError() Response {
	return NewResponse().WithStatus(http.StatusInternalServerError).WithBodyString("Internal Server Error")
}
