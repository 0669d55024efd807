package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"fnbridge/pkg/serverless"
)

// Platform describes one execution platform's native shapes. Decode and Encode are
// required; RequestID and Enrich are optional.
type Platform struct {
	// Name identifies the platform in metadata and logs
	Name string
	// Decode converts a native event into a Request. Events that are not HTTP shaped
	// produce a Request carrying only the raw event.
	Decode func(event any) (serverless.Request, error)
	// Encode converts a Response into the native reply
	Encode func(resp serverless.Response) map[string]any
	// RequestID extracts the platform's request id. An empty result falls back to a
	// generated uuid.
	RequestID func(ctx context.Context, req serverless.Request, native any) string
	// Enrich adds platform specific details to the invocation context
	Enrich func(ctx context.Context, fc serverless.Context, native any) serverless.Context
}

// Platforms returns every built-in platform
func Platforms() []Platform {
	return []Platform{AWS(), Cloudflare(), Azure(), GCP(), Vercel(), Local()}
}

// PlatformNames returns the names of every built-in platform
func PlatformNames() []string {
	platforms := Platforms()
	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		names = append(names, p.Name)
	}
	return names
}

// PlatformByName looks up a built-in platform
func PlatformByName(name string) (Platform, bool) {
	platforms := Platforms()
	idx := slices.IndexFunc(platforms, func(p Platform) bool { return p.Name == name })
	if idx < 0 {
		return Platform{}, false
	}
	return platforms[idx], true
}

// httpShape names the fields of an HTTP shaped native event. Lists are dotted paths
// tried in order; the first string found wins.
type httpShape struct {
	methods []string
	targets []string
	headers string
	query   string
	body    string
	base64  func(tree any) bool
}

func (s httpShape) decode(event any) (serverless.Request, error) {
	tree, err := eventTree(event)
	if err != nil {
		return serverless.Request{}, err
	}
	req := serverless.NewRequest().WithRawEvent(tree)

	rawMethod, ok := firstString(tree, s.methods)
	if !ok {
		return req, nil
	}
	method, err := serverless.ParseMethod(rawMethod)
	if err != nil {
		return serverless.Request{}, serverless.NewPlatformError("unsupported method %q", rawMethod)
	}
	req = req.WithMethod(method)

	if target, ok := firstString(tree, s.targets); ok {
		u, err := url.Parse(target)
		if err != nil {
			return serverless.Request{}, serverless.NewPlatformError("invalid request target %q: %v", target, err)
		}
		req = req.WithURI(u)
		for name, values := range u.Query() {
			if len(values) > 0 {
				req = req.WithQuery(name, values[0])
			}
		}
	}

	for name, value := range stringMap(tree, s.headers) {
		req = req.WithHeader(name, value)
	}
	if s.query != "" {
		for name, value := range stringMap(tree, s.query) {
			req = req.WithQuery(name, value)
		}
	}

	body, err := s.decodeBody(tree)
	if err != nil {
		return serverless.Request{}, err
	}
	return req.WithBody(body), nil
}

func (s httpShape) decodeBody(tree any) ([]byte, error) {
	v, ok := serverless.Lookup(tree, s.body)
	if !ok || v == nil {
		return nil, nil
	}
	switch body := v.(type) {
	case string:
		if s.base64 != nil && s.base64(tree) {
			data, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return nil, serverless.NewPlatformError("invalid base64 body: %v", err)
			}
			return data, nil
		}
		return []byte(body), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, serverless.NewPlatformError("invalid body: %v", err)
		}
		return data, nil
	}
}

// rawOnly decodes any event into a Request that only retains the event
func rawOnly(event any) (serverless.Request, error) {
	tree, err := eventTree(event)
	if err != nil {
		return serverless.Request{}, err
	}
	return serverless.NewRequest().WithRawEvent(tree), nil
}

// eventTree turns a native event into a decoded JSON tree
func eventTree(event any) (any, error) {
	switch e := event.(type) {
	case json.RawMessage:
		return decodeJSON(e)
	case []byte:
		return decodeJSON(e)
	}
	tree, err := serverless.ToTree(event)
	if err != nil {
		return nil, serverless.NewPlatformError("unsupported event: %v", err)
	}
	return tree, nil
}

func nativeTree(native any) (any, error) {
	return eventTree(native)
}

func decodeJSON(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, serverless.NewPlatformError("event is not valid JSON: %v", err)
	}
	return tree, nil
}

func firstString(tree any, paths []string) (string, bool) {
	for _, path := range paths {
		if s, ok := serverless.LookupString(tree, path); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// stringMap reads a name/value object. Multi-valued entries are joined with commas
// and scalars are formatted.
func stringMap(tree any, path string) map[string]string {
	v, ok := serverless.Lookup(tree, path)
	if !ok {
		return nil
	}
	out := map[string]string{}
	switch obj := v.(type) {
	case map[string]string:
		for k, s := range obj {
			out[k] = s
		}
	case map[string]any:
		for k, item := range obj {
			switch val := item.(type) {
			case nil:
			case string:
				out[k] = val
			case []any:
				parts := make([]string, 0, len(val))
				for _, p := range val {
					parts = append(parts, fmt.Sprint(p))
				}
				out[k] = strings.Join(parts, ",")
			default:
				out[k] = fmt.Sprint(val)
			}
		}
	}
	return out
}

// headerValue looks a header up case-insensitively
func headerValue(req serverless.Request, name string) string {
	if v, ok := req.Header(name); ok {
		return v
	}
	for k, v := range req.Headers() {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// encodeBody returns the body as text. Bodies flagged as base64, and bodies that
// are not valid UTF-8, are base64 encoded and reported as such.
func encodeBody(resp serverless.Response) (string, bool) {
	body := resp.Body()
	if resp.IsBase64() || !utf8.Valid(body) {
		return base64.StdEncoding.EncodeToString(body), true
	}
	return string(body), false
}

// statusCodeReply builds the {statusCode, headers, body, isBase64Encoded} shape
// shared by several platforms
func statusCodeReply(resp serverless.Response) map[string]any {
	body, isBase64 := encodeBody(resp)
	return map[string]any{
		"statusCode":      resp.Status(),
		"headers":         resp.Headers(),
		"body":            body,
		"isBase64Encoded": isBase64,
	}
}
