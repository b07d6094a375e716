package server

import (
	"net/http"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally for routing, relying on its method-qualified
// patterns ("GET /api/albums/{id}") for method filtering and path parameters.
type BasicRouter struct {
	mux         *http.ServeMux
	handler     http.Handler
	middlewares []Middleware
	global      []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	mux := http.NewServeMux()
	return &BasicRouter{
		mux:         mux,
		handler:     mux,
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack, applied in the order it's added.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// UseGlobal adds [Middleware] wrapping the router as a whole, so it also sees
// requests the mux rejects on its own: unmatched paths and OPTIONS preflights,
// which never hit a method-qualified pattern.
func (r *BasicRouter) UseGlobal(middleware ...Middleware) {
	r.global = append(r.global, middleware...)

	wrapped := http.Handler(r.mux)
	for i := len(r.global) - 1; i >= 0; i-- {
		wrapped = r.global[i](wrapped)
	}
	r.handler = wrapped
}

// Handle registers a [Handler] for the specified HTTP method and path.
//
// The handler is wrapped with all registered middleware.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	r.mux.Handle(method+" "+path, r.Apply(handler))
}

// Handler registers a custom Handler implementation.
//
// All routes returned by [Handler.Routes] are registered with this handler.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
