package adapter

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fnbridge/pkg/serverless"
)

// LocalName is the platform name of the local development server
const LocalName = "local"

// RequestIDKey is the gin context key holding a request id set by middleware
const RequestIDKey = "request_id"

// LoggedKey is the gin context key GinHandler sets once the invocation is logged
const LoggedKey = "invocation_logged"

// maxLocalBody bounds request bodies read by the local platform
const maxLocalBody = 10 << 20

// Local describes the local development server. Events are *http.Request values;
// GinHandler writes replies straight to the connection, while Encode renders the
// {statusCode, headers, body, isBase64Encoded} shape for callers that need a map.
func Local() Platform {
	return Platform{
		Name:   LocalName,
		Decode: decodeHTTPRequest,
		Encode: statusCodeReply,
		RequestID: func(_ context.Context, req serverless.Request, _ any) string {
			return headerValue(req, "X-Request-ID")
		},
	}
}

func decodeHTTPRequest(event any) (serverless.Request, error) {
	r, ok := event.(*http.Request)
	if !ok || r == nil {
		return serverless.Request{}, serverless.NewPlatformError("local platform expects *http.Request, got %T", event)
	}

	method, err := serverless.ParseMethod(r.Method)
	if err != nil {
		return serverless.Request{}, serverless.NewPlatformError("unsupported method %q", r.Method)
	}
	req := serverless.NewRequest().
		WithMethod(method).
		WithURI(r.URL).
		WithRawEvent(r)

	for name, values := range r.Header {
		if len(values) > 0 {
			req = req.WithHeader(name, values[0])
		}
	}
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			req = req.WithQuery(name, values[0])
		}
	}

	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxLocalBody+1))
		if err != nil {
			return serverless.Request{}, serverless.NewPlatformError("failed to read request body: %v", err)
		}
		if len(body) > maxLocalBody {
			return serverless.Request{}, serverless.NewPlatformError("request body exceeds %d bytes", maxLocalBody)
		}
		req = req.WithBody(body)
	}
	return req, nil
}

// GinHandler serves the function on a gin engine. A request id stored by
// middleware under RequestIDKey is forwarded as X-Request-ID, and LoggedKey is set
// after the invocation so request loggers can skip it.
func (f *Function) GinHandler() gin.HandlerFunc {
	p := Local()
	return func(c *gin.Context) {
		if id := c.GetString(RequestIDKey); id != "" && c.Request.Header.Get("X-Request-ID") == "" {
			c.Request.Header.Set("X-Request-ID", id)
		}

		resp := f.Serve(c.Request.Context(), p, c.Request, nil)
		c.Set(LoggedKey, true)

		for name, value := range resp.Headers() {
			c.Header(name, value)
		}
		status := resp.Status()
		if status < 100 || status > 999 {
			f.logger.WithField("status_code", status).Warn("Invalid status for HTTP reply, sending 500")
			status = http.StatusInternalServerError
		}
		c.Status(status)
		_, _ = c.Writer.Write(resp.Body())
	}
}
