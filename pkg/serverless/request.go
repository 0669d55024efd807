package serverless

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Method is an HTTP verb
type Method string

const (
	MethodGet     Method = http.MethodGet
	MethodHead    Method = http.MethodHead
	MethodPost    Method = http.MethodPost
	MethodPut     Method = http.MethodPut
	MethodPatch   Method = http.MethodPatch
	MethodDelete  Method = http.MethodDelete
	MethodConnect Method = http.MethodConnect
	MethodOptions Method = http.MethodOptions
	MethodTrace   Method = http.MethodTrace
)

var knownMethods = map[Method]bool{
	MethodGet: true, MethodHead: true, MethodPost: true, MethodPut: true, MethodPatch: true,
	MethodDelete: true, MethodConnect: true, MethodOptions: true, MethodTrace: true,
}

// ParseMethod converts a verb such as "get" or "POST" into a Method
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !knownMethods[m] {
		return "", NewHTTPError("unknown method %q", s)
	}
	return m, nil
}

// Request is a platform-agnostic request handed to every handler.
//
// Request values are immutable: the With methods return a modified copy and never
// touch the receiver, so a Request can be shared freely once built.
type Request struct {
	method     Method
	uri        *url.URL
	headers    map[string]string
	query      map[string]string
	pathParams map[string]string
	body       []byte
	rawEvent   any
}

// NewRequest creates an empty request with no method, no URI and an empty body
func NewRequest() Request {
	return Request{body: []byte{}}
}

// Method returns the HTTP method, if the invocation carried one
func (r Request) Method() (Method, bool) {
	return r.method, r.method != ""
}

// MethodString returns the HTTP method as a string, or "" when absent
func (r Request) MethodString() string {
	return string(r.method)
}

// WithMethod sets the HTTP method
func (r Request) WithMethod(m Method) Request {
	r.method = m
	return r
}

// WithMethodString sets the HTTP method from a string. Unknown verbs leave the
// request unchanged.
func (r Request) WithMethodString(s string) Request {
	m, err := ParseMethod(s)
	if err != nil {
		return r
	}
	r.method = m
	return r
}

// URI returns a copy of the request URI, if present
func (r Request) URI() (*url.URL, bool) {
	if r.uri == nil {
		return nil, false
	}
	u := *r.uri
	return &u, true
}

// Path returns the path portion of the URI, if present
func (r Request) Path() (string, bool) {
	if r.uri == nil {
		return "", false
	}
	return r.uri.Path, true
}

// WithURI sets the request URI
func (r Request) WithURI(u *url.URL) Request {
	if u == nil {
		r.uri = nil
		return r
	}
	c := *u
	r.uri = &c
	return r
}

// WithPath parses raw as a URI and sets it. Unparsable input leaves the request
// unchanged.
func (r Request) WithPath(raw string) Request {
	u, err := url.Parse(raw)
	if err != nil {
		return r
	}
	r.uri = u
	return r
}

// Headers returns a copy of all headers
func (r Request) Headers() map[string]string {
	return copyMap(r.headers)
}

// Header returns a header value. Names are matched exactly as stored.
func (r Request) Header(name string) (string, bool) {
	v, ok := r.headers[name]
	return v, ok
}

// WithHeader sets a header
func (r Request) WithHeader(name, value string) Request {
	r.headers = withEntry(r.headers, name, value)
	return r
}

// Query returns a copy of all query parameters
func (r Request) Query() map[string]string {
	return copyMap(r.query)
}

// QueryParam returns a query parameter
func (r Request) QueryParam(name string) (string, bool) {
	v, ok := r.query[name]
	return v, ok
}

// WithQuery sets a query parameter
func (r Request) WithQuery(name, value string) Request {
	r.query = withEntry(r.query, name, value)
	return r
}

// PathParams returns a copy of all path parameters
func (r Request) PathParams() map[string]string {
	return copyMap(r.pathParams)
}

// PathParam returns a path parameter
func (r Request) PathParam(name string) (string, bool) {
	v, ok := r.pathParams[name]
	return v, ok
}

// WithPathParam sets a path parameter
func (r Request) WithPathParam(name, value string) Request {
	r.pathParams = withEntry(r.pathParams, name, value)
	return r
}

// Body returns the raw body. The returned slice must not be modified.
func (r Request) Body() []byte {
	if r.body == nil {
		return []byte{}
	}
	return r.body
}

// WithBody sets the body. The bytes are copied.
func (r Request) WithBody(body []byte) Request {
	r.body = append(make([]byte, 0, len(body)), body...)
	return r
}

// WithBodyString sets the body from a string
func (r Request) WithBodyString(body string) Request {
	r.body = []byte(body)
	return r
}

// BodyString returns the body as text
func (r Request) BodyString() (string, error) {
	if !utf8.Valid(r.body) {
		return "", NewSerializationError(fmt.Errorf("request body is not valid UTF-8"))
	}
	return string(r.body), nil
}

// BodyJSON decodes the body as JSON into v
func (r Request) BodyJSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return NewSerializationError(err)
	}
	return nil
}

// RawEvent returns the platform event the request was built from, or nil
func (r Request) RawEvent() any {
	return r.rawEvent
}

// WithRawEvent retains the platform event for platform-specific access
func (r Request) WithRawEvent(event any) Request {
	r.rawEvent = event
	return r
}

// EventValue looks up a dotted path such as "requestContext.stage" in the raw event
func (r Request) EventValue(path string) (any, bool) {
	return Lookup(r.rawEvent, path)
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}

// withEntry returns a copy of m with key set, leaving m untouched
func withEntry(m map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(m)+1)
	maps.Copy(out, m)
	out[key] = value
	return out
}
