package mux

import (
	"context"
	"net/http"
)

// Router registers routes and dispatches the handler of the first route
// whose path template and method match the request. It implements
// http.Handler:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/users/{id:uuid}", getUser).Methods(http.MethodGet)
//	http.ListenAndServe(":8080", r)
type Router struct {
	routes []*Route
	named  map[string]*Route

	// NotFoundHandler is invoked when no route matches the request
	// path. Defaults to http.NotFoundHandler.
	NotFoundHandler http.Handler

	// MethodNotAllowedHandler is invoked when a route matches the path
	// but not the method. Defaults to a plain 405 response.
	MethodNotAllowedHandler http.Handler
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{named: make(map[string]*Route)}
}

// Handle registers a handler for the given path template and returns
// the new route for further configuration.
func (r *Router) Handle(path string, handler http.Handler) *Route {
	rt := &Route{handler: handler}
	rt.compile(path)
	r.routes = append(r.routes, rt)
	return rt
}

// HandleFunc registers a handler function for the given path template.
func (r *Router) HandleFunc(path string, f func(http.ResponseWriter, *http.Request)) *Route {
	return r.Handle(path, http.HandlerFunc(f))
}

// Get returns the route registered under the given name, or nil.
func (r *Router) Get(name string) *Route {
	r.indexNames()
	return r.named[name]
}

// Walk visits every registered route in registration order. Returning a
// non-nil error stops the walk and is returned to the caller.
func (r *Router) Walk(fn func(*Route) error) error {
	for _, rt := range r.routes {
		if err := fn(rt); err != nil {
			return err
		}
	}
	return nil
}

// ServeHTTP dispatches the request to the first matching route.
// Distinguishes 404 Not Found from 405 Method Not Allowed by tracking
// method mismatches across route iteration.
//
// See: https://www.rfc-editor.org/rfc/rfc9110#section-15.5
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var methodMismatch bool

	for _, rt := range r.routes {
		vars, pathMatch, methodMatch := rt.match(req)
		if !pathMatch {
			continue
		}
		if !methodMatch {
			methodMismatch = true
			continue
		}

		if len(vars) > 0 {
			req = req.WithContext(context.WithValue(req.Context(), varsKey{}, vars))
		}
		rt.handler.ServeHTTP(w, req)
		return
	}

	if methodMismatch {
		if r.MethodNotAllowedHandler != nil {
			r.MethodNotAllowedHandler.ServeHTTP(w, req)
			return
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if r.NotFoundHandler != nil {
		r.NotFoundHandler.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

// indexNames refreshes the name lookup map. Names are assigned via
// Route.Name after registration, so the index is rebuilt lazily.
func (r *Router) indexNames() {
	for _, rt := range r.routes {
		if rt.name != "" {
			r.named[rt.name] = rt
		}
	}
}

type varsKey struct{}

// Vars returns the path variables extracted for the matched route, or
// nil when the route declared none.
func Vars(req *http.Request) map[string]string {
	if vars, ok := req.Context().Value(varsKey{}).(map[string]string); ok {
		return vars
	}
	return nil
}

// VarGet returns the value of a single path variable by name and a
// boolean indicating whether the variable exists.
func VarGet(req *http.Request, name string) (string, bool) {
	vars := Vars(req)
	if vars == nil {
		return "", false
	}
	val, ok := vars[name]
	return val, ok
}
