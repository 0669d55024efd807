package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORS middleware for handling Cross-Origin Resource Sharing. Preflight requests
// are answered directly unless their path is one of optionsPaths, which are
// routes that serve OPTIONS themselves.
func CORS(optionsPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, HEAD, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")

		if c.Request.Method == http.MethodOptions && !slices.Contains(optionsPaths, c.Request.URL.Path) {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Recovery turns panics outside the function adapter into 500 responses
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"request_id":  c.GetString(RequestIDKey),
					"method":      c.Request.Method,
					"path":        c.Request.URL.Path,
					"panic":       fmt.Sprint(r),
					"stack_trace": string(debug.Stack()),
				}).Error("Recovered from panic")

				abortWithError(c, http.StatusInternalServerError, "Internal server error", "An internal error occurred")
			}
		}()
		c.Next()
	}
}
