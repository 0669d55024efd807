package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the key used to store request ID in context. It matches the key
// the local function adapter reads.
const RequestIDKey = "request_id"

// InvocationLoggedKey is set by the local function adapter once it has logged the
// invocation, so StructuredLogger does not log the request a second time.
const InvocationLoggedKey = "invocation_logged"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger logs requests the function adapter did not log itself, such as
// those rejected by middleware or matching no route. function names the function
// served by the local server.
func StructuredLogger(logger logrus.FieldLogger, function string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if c.GetBool(InvocationLoggedKey) {
			return
		}

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := logrus.Fields{
			"request_id":    c.GetString(RequestIDKey),
			"function":      function,
			"method":        c.Request.Method,
			"path":          path,
			"status_code":   status,
			"latency_ms":    float64(latency.Nanoseconds()) / 1000000,
			"client_ip":     c.ClientIP(),
			"response_size": c.Writer.Size(),
		}
		if raw != "" {
			fields["query"] = raw
		}

		// Log based on status code
		switch {
		case status >= 500:
			logger.WithFields(fields).Error("Server error")
		case status >= 400:
			logger.WithFields(fields).Warn("Client error")
		case status >= 300:
			logger.WithFields(fields).Info("Redirect")
		default:
			logger.WithFields(fields).Info("Request completed")
		}
	}
}
