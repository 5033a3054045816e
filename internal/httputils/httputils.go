// Package httputils provides utilities for HTTP requests.
package httputils

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// httputilsContextKey is the key type of the values this package stores in the context.
type httputilsContextKey string

const (
	// contextKeyMachine is the key for the machine name in the context.
	contextKeyMachine httputilsContextKey = "httputils:machine"
)

// MachineMiddleware puts the User-Agent header into the context.
func MachineMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		newCtx := WithMachineName(c.Request.Context(), c.GetHeader("User-Agent"))
		c.Request = c.Request.WithContext(newCtx)
		c.Next()
	}
}

// WithMachineName returns a context carrying the machine name.
func WithMachineName(ctx context.Context, machine string) context.Context {
	return context.WithValue(ctx, contextKeyMachine, machine)
}

// GetMachineName returns the machine name from the context.
func GetMachineName(ctx context.Context) string {
	if machine, ok := ctx.Value(contextKeyMachine).(string); ok {
		return machine
	}

	return "!not-standard-path!"
}

// BodyLimitMiddleware caps the request body at limit bytes. Reading past the
// limit fails with *http.MaxBytesError.
func BodyLimitMiddleware(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
