package adapter

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"fnbridge/pkg/introspect"
	"fnbridge/pkg/serverless"
)

func setupLocalRouter(f *Function, requestID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if requestID != "" {
			c.Set(RequestIDKey, requestID)
		}
		c.Next()
	})
	router.NoRoute(f.GinHandler())
	return router
}

func TestGinHandler(t *testing.T) {
	var got serverless.Request
	var fc serverless.Context
	h := serverless.HandlerFunc(func(_ context.Context, req serverless.Request, c serverless.Context) (serverless.Response, error) {
		got, fc = req, c
		return serverless.Text("created").WithStatus(http.StatusCreated).WithHeader("X-Custom", "1"), nil
	})
	router := setupLocalRouter(newTestFunction(t, h, Config{}), "mw-id")

	req := httptest.NewRequest(http.MethodPost, "/users?notify=yes", bytes.NewBufferString(`{"name":"Ada"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if w.Body.String() != "created" || w.Header().Get("X-Custom") != "1" {
		t.Errorf("Unexpected reply: %q %v", w.Body.String(), w.Header())
	}
	if w.Header().Get("Content-Type") != "text/plain" {
		t.Errorf("Expected text/plain, got %s", w.Header().Get("Content-Type"))
	}
	if path, _ := got.Path(); path != "/users" {
		t.Errorf("Expected /users, got %s", path)
	}
	if v, _ := got.QueryParam("notify"); v != "yes" {
		t.Errorf("Expected notify query, got %q", v)
	}
	if v, _ := got.Header("Content-Type"); v != "application/json" {
		t.Errorf("Expected content type header, got %q", v)
	}
	if body, _ := got.BodyString(); body != `{"name":"Ada"}` {
		t.Errorf("Expected body, got %q", body)
	}
	if fc.RequestID() != "mw-id" {
		t.Errorf("Expected middleware request id, got %s", fc.RequestID())
	}
}

func TestGinHandlerPanicAndErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    serverless.HandlerFunc
		wantStatus int
	}{
		{"panic", func(context.Context, serverless.Request, serverless.Context) (serverless.Response, error) {
			panic("local boom")
		}, http.StatusInternalServerError},
		{"http error", func(context.Context, serverless.Request, serverless.Context) (serverless.Response, error) {
			return serverless.Response{}, serverless.NewHTTPError("bad input")
		}, http.StatusBadRequest},
		{"invalid status", func(context.Context, serverless.Request, serverless.Context) (serverless.Response, error) {
			return serverless.NewResponse().WithStatus(0), nil
		}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupLocalRouter(newTestFunction(t, tt.handler, Config{}), "")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestGinHandlerIntrospection(t *testing.T) {
	calls := 0
	h := serverless.HandlerFunc(func(context.Context, serverless.Request, serverless.Context) (serverless.Response, error) {
		calls++
		return serverless.NewResponse(), nil
	})
	f := newTestFunction(t, h, Config{Introspect: introspect.Options{Info: true, JSON: true}})

	w := httptest.NewRecorder()
	setupLocalRouter(f, "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON info reply, got %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if calls != 0 {
		t.Errorf("Expected handler not to run, ran %d times", calls)
	}
}

func TestLocalBodyLimit(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		wantStatus int
	}{
		{"at limit", maxLocalBody, http.StatusOK},
		{"over limit", maxLocalBody + 5, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := -1
			h := serverless.HandlerFunc(func(_ context.Context, req serverless.Request, _ serverless.Context) (serverless.Response, error) {
				seen = len(req.Body())
				return serverless.NewResponse(), nil
			})
			f := newTestFunction(t, h, Config{})

			req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(make([]byte, tt.size)))
			reply := f.EntryPoint(Local())(context.Background(), req, nil)

			if status := replyStatus(t, reply); status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, status)
			}
			if tt.wantStatus == http.StatusOK && seen != tt.size {
				t.Errorf("Expected handler to see %d bytes, got %d", tt.size, seen)
			}
			if tt.wantStatus != http.StatusOK && seen != -1 {
				t.Errorf("Expected handler not to run, saw %d bytes", seen)
			}
		})
	}
}

func TestGinHandlerMarksInvocationLogged(t *testing.T) {
	h := serverless.HandlerFunc(func(context.Context, serverless.Request, serverless.Context) (serverless.Response, error) {
		return serverless.NewResponse(), nil
	})
	f := newTestFunction(t, h, Config{})

	gin.SetMode(gin.TestMode)
	logged := false
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Next()
		logged = c.GetBool(LoggedKey)
	})
	router.NoRoute(f.GinHandler())
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !logged {
		t.Errorf("Expected %s to be set after the invocation", LoggedKey)
	}
}
