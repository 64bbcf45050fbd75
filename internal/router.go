package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is the interface handlers use to declare routes.
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// Handle registers a handler for any other method.
	Handle(method, path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group sharing middleware but no prefix.
	Group(fn func(r Router))

	// Route creates a route group under a path prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the group's stack. It only affects
	// routes declared after the call.
	Use(mw ...Middleware)
}

// chiRouter adapts chi.Router to Router, turning every HandlerFunc into an
// http.HandlerFunc with its own request Context.
type chiRouter struct {
	mux chi.Router
	app *App
}

func (r *chiRouter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodGet, path, h, mw...)
}

func (r *chiRouter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.Handle(http.MethodPost, path, h, mw...)
}

func (r *chiRouter) Handle(method, path string, h HandlerFunc, mw ...Middleware) {
	// Route middleware is listed outermost first.
	for _, m := range slices.Backward(mw) {
		h = m(h)
	}
	r.mux.MethodFunc(method, path, r.app.serve(h))
}

func (r *chiRouter) Group(fn func(Router)) {
	r.mux.Group(func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app})
	})
}

func (r *chiRouter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) {
		fn(&chiRouter{mux: sub, app: r.app})
	})
}

func (r *chiRouter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(r.app.chain(m))
	}
}

// serve runs h with a fresh Context and hands a returned error to the
// app's error handler.
func (a *App) serve(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		c := newContext(w, req, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// chain converts mw to chi middleware. The wrapped http.Handler receives
// c.Request(), so values stored with c.Set reach it.
func (a *App) chain(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.serve(mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		}))
	}
}
