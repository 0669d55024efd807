package serverless

import (
	"encoding/json"
	"testing"
)

func TestResponseBuilder(t *testing.T) {
	resp := NewResponse().
		WithStatus(201).
		WithHeader("Content-Type", "application/json").
		WithBodyString(`{"id":123}`)

	if resp.Status() != 201 {
		t.Errorf("Expected status 201, got %d", resp.Status())
	}
	if v, _ := resp.Header("Content-Type"); v != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", v)
	}
	if string(resp.Body()) != `{"id":123}` {
		t.Errorf("Expected body %q, got %q", `{"id":123}`, resp.Body())
	}
	if resp.IsBase64() {
		t.Error("Expected IsBase64 to default to false")
	}
}

func TestResponseDefaults(t *testing.T) {
	if NewResponse().Status() != 200 {
		t.Errorf("Expected default status 200, got %d", NewResponse().Status())
	}
	var zero Response
	if zero.Status() != 200 {
		t.Errorf("Expected zero-value status 200, got %d", zero.Status())
	}
	if len(zero.Body()) != 0 {
		t.Errorf("Expected empty body, got %q", zero.Body())
	}
	if NewResponse().WithStatus(0).Status() != 0 {
		t.Error("Expected arbitrary status codes to be representable")
	}
	if NewResponse().WithStatus(799).Status() != 799 {
		t.Error("Expected status 799 to be kept")
	}
}

func TestResponseCopyOnWrite(t *testing.T) {
	first := NewResponse().WithHeader("X-A", "1")
	second := first.WithHeader("X-B", "2").WithStatus(500)

	if _, ok := first.Header("X-B"); ok {
		t.Error("Header added to second response leaked into first")
	}
	if first.Status() != 200 {
		t.Errorf("Expected first response to keep status 200, got %d", first.Status())
	}
	if second.Status() != 500 {
		t.Errorf("Expected second response status 500, got %d", second.Status())
	}
}

func TestJSONResponse(t *testing.T) {
	data := map[string]any{"id": float64(123), "name": "test"}

	resp, err := JSON(data)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if v, _ := resp.Header("Content-Type"); v != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", v)
	}

	var parsed map[string]any
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		t.Fatalf("Body is not JSON: %v", err)
	}
	if parsed["name"] != "test" || parsed["id"] != float64(123) {
		t.Errorf("Unexpected decoded body: %v", parsed)
	}

	if _, err := JSON(make(chan int)); !IsSerialization(err) {
		t.Errorf("Expected serialization error for unencodable value, got %v", err)
	}
}

func TestConvenienceResponses(t *testing.T) {
	tests := []struct {
		name        string
		resp        Response
		status      int
		header      string
		headerValue string
		body        string
	}{
		{"Text", Text("hi"), 200, "Content-Type", "text/plain", "hi"},
		{"HTML", HTML("<h1>Hello</h1>"), 200, "Content-Type", "text/html", "<h1>Hello</h1>"},
		{"Redirect", Redirect("/d"), 302, "Location", "/d", ""},
		{"NotFound", NotFound(), 404, "", "", "Not Found"},
		{"BadRequest", BadRequest(), 400, "", "", "Bad Request"},
		{"InternalError", InternalError(), 500, "", "", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.resp.Status() != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, tt.resp.Status())
			}
			if tt.header != "" {
				if v, _ := tt.resp.Header(tt.header); v != tt.headerValue {
					t.Errorf("Expected %s %q, got %q", tt.header, tt.headerValue, v)
				}
			}
			if string(tt.resp.Body()) != tt.body {
				t.Errorf("Expected body %q, got %q", tt.body, tt.resp.Body())
			}
		})
	}
}

func TestResponseBodyString(t *testing.T) {
	resp := NewResponse().WithBody([]byte{0xc3, 0x28}).WithBase64(true)
	if _, err := resp.BodyString(); !IsSerialization(err) {
		t.Errorf("Expected serialization error, got %v", err)
	}
	if !resp.IsBase64() {
		t.Error("Expected IsBase64 to be true")
	}
}
