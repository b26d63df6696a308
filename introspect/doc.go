// Package introspect recursively resolves Go types into schema trees
// for OpenAPI document generation.
//
// An Engine walks a root type via reflection, classifies every type it
// encounters (custom override, enum, primitive, container, object), and
// produces a tree of Node values. Named results — structs, Enumer
// implementations, generic instantiations — are stored once in the
// engine's cache and referenced by name everywhere else, which both
// deduplicates output and breaks reference cycles:
//
//	type Category struct {
//	    Name   string     `json:"name"`
//	    Parent *Category  `json:"parent,omitempty"`
//	}
//
//	eng := introspect.New()
//	node, err := eng.Introspect(Category{})
//	// node is Ref{Name: "Category"}; the cycle on Parent renders as a
//	// reference to the same entry.
//
// Generic instantiations name deterministically from their argument
// types: Box[User] is always "BoxUser", at every call site. Two
// distinct types whose simple names collide are both kept, under
// disambiguated output names, and the collision is reported via
// Conflicts.
//
// Schema shape is controlled with encoding/json tags (names, omitempty,
// "-") and an `openapi` tag for descriptions, formats, value bounds and
// inline enums:
//
//	type Parcel struct {
//	    Weight int32  `json:"weight" openapi:"minimum=0,description=Grams"`
//	    Kind   string `json:"kind" openapi:"enum=letter|box"`
//	}
//
// Types outside reflection's reach (wrappers around channels, C
// handles, opaque IDs) can be mapped explicitly with RegisterCustomType
// before a pass begins.
//
// An Engine runs one synchronous pass at a time. Reset clears the cache
// and recorded failures between passes; custom type registrations
// persist for the engine's lifetime.
package introspect
