package serverless

import "context"

// Route identifies a registration by method and exact path
type Route struct {
	Method Method
	Path   string
}

// RouterBuilder collects route registrations. Registering the same method and
// path twice keeps the later handler.
type RouterBuilder struct {
	order  []Route
	routes map[Route]Handler
}

// NewRouter creates an empty router builder
func NewRouter() *RouterBuilder {
	return &RouterBuilder{routes: make(map[Route]Handler)}
}

// Handle registers h for method and path
func (b *RouterBuilder) Handle(method Method, path string, h Handler) *RouterBuilder {
	key := Route{Method: method, Path: path}
	if _, exists := b.routes[key]; !exists {
		b.order = append(b.order, key)
	}
	b.routes[key] = h
	return b
}

// HandleFunc registers a function for method and path
func (b *RouterBuilder) HandleFunc(method Method, path string, fn HandlerFunc) *RouterBuilder {
	return b.Handle(method, path, fn)
}

// Get registers a GET route
func (b *RouterBuilder) Get(path string, h Handler) *RouterBuilder {
	return b.Handle(MethodGet, path, h)
}

// Post registers a POST route
func (b *RouterBuilder) Post(path string, h Handler) *RouterBuilder {
	return b.Handle(MethodPost, path, h)
}

// Put registers a PUT route
func (b *RouterBuilder) Put(path string, h Handler) *RouterBuilder {
	return b.Handle(MethodPut, path, h)
}

// Patch registers a PATCH route
func (b *RouterBuilder) Patch(path string, h Handler) *RouterBuilder {
	return b.Handle(MethodPatch, path, h)
}

// Delete registers a DELETE route
func (b *RouterBuilder) Delete(path string, h Handler) *RouterBuilder {
	return b.Handle(MethodDelete, path, h)
}

// Build freezes the registrations into a Router. Later changes to the builder do
// not affect the returned Router.
func (b *RouterBuilder) Build() *Router {
	r := &Router{
		order:  append([]Route(nil), b.order...),
		routes: make(map[Route]Handler, len(b.routes)),
	}
	for k, h := range b.routes {
		r.routes[k] = h
	}
	return r
}

// Router dispatches requests by exact method and path
type Router struct {
	order  []Route
	routes map[Route]Handler
}

// Routes returns the registered routes in first-registration order
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.order...)
}

// Handle dispatches req to the matching handler. A request without a method or
// URI is an HTTP error; an unmatched request yields a 404 response.
func (r *Router) Handle(ctx context.Context, req Request, fc Context) (Response, error) {
	method, ok := req.Method()
	if !ok {
		return Response{}, NewHTTPError("missing method")
	}
	path, ok := req.Path()
	if !ok {
		return Response{}, NewHTTPError("missing URI")
	}

	h, ok := r.routes[Route{Method: method, Path: path}]
	if !ok {
		return NotFound(), nil
	}
	return h.Handle(ctx, req, fc)
}
