package serverless

import "context"

// Handler is the platform-neutral function contract. ctx carries the platform's
// cancellation and deadline; fc describes the invocation.
type Handler interface {
	Handle(ctx context.Context, req Request, fc Context) (Response, error)
}

// HandlerFunc adapts an ordinary function to Handler
type HandlerFunc func(ctx context.Context, req Request, fc Context) (Response, error)

// Handle calls f(ctx, req, fc)
func (f HandlerFunc) Handle(ctx context.Context, req Request, fc Context) (Response, error) {
	return f(ctx, req, fc)
}
