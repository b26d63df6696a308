// Package mux implements a small HTTP request router with typed path
// variables.
//
// Routes are registered with path templates containing {name} or
// {name:macro} variables:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/files/{id:uuid}", getFile).
//	    Methods(http.MethodGet).
//	    Name("getFile")
//
// Built-in macros constrain variable values: uuid, int, float, slug,
// alpha, alphanum, date, and hex. An unknown macro name is used as an
// inline regexp pattern. Matched variable values are available to
// handlers via Vars:
//
//	id := mux.Vars(req)["id"]
//
// The router exposes its registered routes through Walk, which the
// openapi package uses to extract path templates, method restrictions,
// and route names when assembling an API document.
package mux
