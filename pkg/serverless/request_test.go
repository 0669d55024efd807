package serverless

import (
	"net/url"
	"testing"
)

func TestRequestBuilder(t *testing.T) {
	req := NewRequest().
		WithMethod(MethodGet).
		WithPath("/api/users").
		WithHeader("Content-Type", "application/json").
		WithQuery("page", "1").
		WithPathParam("id", "123").
		WithBodyString(`{"name":"test"}`)

	if m, ok := req.Method(); !ok || m != MethodGet {
		t.Errorf("Expected method GET, got %q (ok=%v)", m, ok)
	}
	if p, ok := req.Path(); !ok || p != "/api/users" {
		t.Errorf("Expected path /api/users, got %q", p)
	}
	if v, _ := req.Header("Content-Type"); v != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", v)
	}
	if v, _ := req.QueryParam("page"); v != "1" {
		t.Errorf("Expected page=1, got %q", v)
	}
	if v, _ := req.PathParam("id"); v != "123" {
		t.Errorf("Expected id=123, got %q", v)
	}
	body, err := req.BodyString()
	if err != nil {
		t.Fatalf("BodyString failed: %v", err)
	}
	if body != `{"name":"test"}` {
		t.Errorf("Expected body %q, got %q", `{"name":"test"}`, body)
	}
}

func TestRequestDefaults(t *testing.T) {
	req := NewRequest()

	if _, ok := req.Method(); ok {
		t.Error("Expected no method on a new request")
	}
	if _, ok := req.URI(); ok {
		t.Error("Expected no URI on a new request")
	}
	if req.Body() == nil || len(req.Body()) != 0 {
		t.Errorf("Expected empty non-nil body, got %v", req.Body())
	}
	if _, ok := req.Header("X-Missing"); ok {
		t.Error("Expected missing header to be absent")
	}
	if req.RawEvent() != nil {
		t.Errorf("Expected nil raw event, got %v", req.RawEvent())
	}
	if req.MethodString() != "" {
		t.Errorf("Expected empty method string, got %q", req.MethodString())
	}
}

func TestRequestCopyOnWrite(t *testing.T) {
	base := NewRequest().WithHeader("A", "1")
	derived := base.WithHeader("B", "2")

	if _, ok := base.Header("B"); ok {
		t.Error("Header added to derived request leaked into base request")
	}
	if _, ok := derived.Header("A"); !ok {
		t.Error("Derived request lost header A")
	}

	headers := derived.Headers()
	headers["C"] = "3"
	if _, ok := derived.Header("C"); ok {
		t.Error("Mutating Headers() result changed the request")
	}

	raw := []byte("hello")
	withBody := NewRequest().WithBody(raw)
	raw[0] = 'j'
	if got, _ := withBody.BodyString(); got != "hello" {
		t.Errorf("Expected body to be copied, got %q", got)
	}

	u, _ := url.Parse("/a")
	withURI := NewRequest().WithURI(u)
	u.Path = "/b"
	if p, _ := withURI.Path(); p != "/a" {
		t.Errorf("Expected URI to be copied, got %q", p)
	}
}

func TestRequestMethodString(t *testing.T) {
	req := NewRequest().WithMethodString("post")
	if m, _ := req.Method(); m != MethodPost {
		t.Errorf("Expected POST, got %q", m)
	}

	unchanged := req.WithMethodString("FETCH")
	if m, _ := unchanged.Method(); m != MethodPost {
		t.Errorf("Expected unknown verb to be ignored, got %q", m)
	}

	if _, err := ParseMethod("BREW"); !IsHTTP(err) {
		t.Errorf("Expected HTTP error for unknown verb, got %v", err)
	}
}

func TestRequestWithPathQuery(t *testing.T) {
	req := NewRequest().WithPath("/search?q=go")
	if p, _ := req.Path(); p != "/search" {
		t.Errorf("Expected path /search, got %q", p)
	}
	u, _ := req.URI()
	if u.Query().Get("q") != "go" {
		t.Errorf("Expected raw query q=go, got %q", u.RawQuery)
	}

	bad := req.WithPath("%zz")
	if p, _ := bad.Path(); p != "/search" {
		t.Errorf("Expected unparsable path to be ignored, got %q", p)
	}
}

func TestRequestBodyErrors(t *testing.T) {
	req := NewRequest().WithBody([]byte{0xff, 0xfe})
	if _, err := req.BodyString(); !IsSerialization(err) {
		t.Errorf("Expected serialization error for invalid UTF-8, got %v", err)
	}

	var out map[string]any
	if err := NewRequest().WithBodyString("not json").BodyJSON(&out); !IsSerialization(err) {
		t.Errorf("Expected serialization error for invalid JSON, got %v", err)
	}

	var data struct {
		Name string `json:"name"`
	}
	if err := NewRequest().WithBodyString(`{"name":"test"}`).BodyJSON(&data); err != nil {
		t.Fatalf("BodyJSON failed: %v", err)
	}
	if data.Name != "test" {
		t.Errorf("Expected name test, got %q", data.Name)
	}
}

func TestRequestRawEvent(t *testing.T) {
	event := map[string]any{
		"requestContext": map[string]any{"stage": "prod"},
	}
	req := NewRequest().WithRawEvent(event)

	if v, ok := req.EventValue("requestContext.stage"); !ok || v != "prod" {
		t.Errorf("Expected stage prod, got %v", v)
	}
	if _, ok := req.EventValue("requestContext.missing"); ok {
		t.Error("Expected missing event path to be absent")
	}
}
