package mux

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Route stores a path template, its compiled matcher, and the handler
// to dispatch. Routes are created through the Router and configured by
// chaining:
//
//	r.HandleFunc("/users/{id:uuid}", getUser).
//	    Methods(http.MethodGet).
//	    Name("getUser")
type Route struct {
	handler  http.Handler
	template string
	pattern  *regexp.Regexp
	varNames []string
	methods  []string
	name     string
	err      error
}

// Methods restricts the route to the given HTTP methods. A request with
// a non-matching method on a matching path yields 405 Method Not Allowed.
//
// See: https://www.rfc-editor.org/rfc/rfc9110#section-15.5.6
func (rt *Route) Methods(methods ...string) *Route {
	for _, m := range methods {
		rt.methods = append(rt.methods, strings.ToUpper(m))
	}
	return rt
}

// Name sets the route name, used to look the route up and as the
// default operation ID in generated API documentation.
func (rt *Route) Name(name string) *Route {
	rt.name = name
	return rt
}

// GetName returns the route name, or the empty string when unset.
func (rt *Route) GetName() string {
	return rt.name
}

// GetPathTemplate returns the path template the route was registered
// with, with macro suffixes intact (e.g. "/users/{id:uuid}").
func (rt *Route) GetPathTemplate() (string, error) {
	if rt.err != nil {
		return "", rt.err
	}
	return rt.template, nil
}

// GetMethods returns the methods the route is restricted to. Routes
// without a method restriction return an error; callers that document
// routes use this to skip method-less registrations.
func (rt *Route) GetMethods() ([]string, error) {
	if rt.err != nil {
		return nil, rt.err
	}
	if len(rt.methods) == 0 {
		return nil, errors.New("mux: route has no methods")
	}
	return append([]string(nil), rt.methods...), nil
}

// Err returns the first error observed while configuring the route.
func (rt *Route) Err() error {
	return rt.err
}

// match reports whether the request path and method match, filling vars
// on a path match. A path match with a method mismatch is reported
// separately so the router can answer 405 instead of 404.
func (rt *Route) match(req *http.Request) (vars map[string]string, pathMatch, methodMatch bool) {
	if rt.err != nil || rt.pattern == nil {
		return nil, false, false
	}

	m := rt.pattern.FindStringSubmatch(req.URL.Path)
	if m == nil {
		return nil, false, false
	}

	if len(rt.varNames) > 0 {
		vars = make(map[string]string, len(rt.varNames))
		for i, name := range rt.varNames {
			vars[name] = m[i+1]
		}
	}

	if len(rt.methods) == 0 {
		return vars, true, true
	}
	for _, method := range rt.methods {
		if method == req.Method {
			return vars, true, true
		}
	}
	return vars, true, false
}

// matchingBrace returns the index of the brace closing s[0], counting
// nested braces so inline patterns like {code:[A-Z]{3}} parse whole.
func matchingBrace(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// compile translates a path template into an anchored regexp. Variables
// are declared as {name} or {name:macro}; unknown macro names are
// treated as inline regexp patterns.
func (rt *Route) compile(tpl string) {
	if !strings.HasPrefix(tpl, "/") {
		rt.err = fmt.Errorf("mux: path template %q must start with a slash", tpl)
		return
	}

	var (
		b        strings.Builder
		varNames []string
	)
	b.WriteByte('^')

	rest := tpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(regexp.QuoteMeta(rest))
			break
		}
		closing := matchingBrace(rest[open:])
		if closing < 0 {
			rt.err = fmt.Errorf("mux: unbalanced braces in path template %q", tpl)
			return
		}

		b.WriteString(regexp.QuoteMeta(rest[:open]))

		inner := rest[open+1 : open+closing]
		varName, macroName, hasMacro := strings.Cut(inner, ":")
		if varName == "" {
			rt.err = fmt.Errorf("mux: empty variable name in path template %q", tpl)
			return
		}

		pattern := `[^/]+`
		if hasMacro {
			pattern = expandMacro(macroName)
		}

		fmt.Fprintf(&b, "(%s)", pattern)
		varNames = append(varNames, varName)

		rest = rest[open+closing+1:]
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		rt.err = fmt.Errorf("mux: compiling path template %q: %w", tpl, err)
		return
	}

	rt.template = tpl
	rt.pattern = re
	rt.varNames = varNames
}
