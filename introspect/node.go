package introspect

import "reflect"

// Kind enumerates the JSON Schema primitive kinds a type can map to.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.1
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Constraints holds validation bounds attached to a primitive node,
// either from an `openapi` struct tag or from a registered custom type.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.2
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.3
type Constraints struct {
	Minimum    *float64
	Maximum    *float64
	MultipleOf *float64
	MinLength  *int
	MaxLength  *int
	Pattern    string
}

// empty reports whether no constraint is set.
func (c Constraints) empty() bool {
	return c.Minimum == nil && c.Maximum == nil && c.MultipleOf == nil &&
		c.MinLength == nil && c.MaxLength == nil && c.Pattern == ""
}

// Node is a resolved schema tree node. Exactly one concrete variant is
// active per node: Primitive, Enum, Array, Map, Object, Any, or Ref.
// Consumers switch over the concrete type; the unexported marker method
// keeps the set of variants closed to this package.
type Node interface {
	isNode()
}

// Primitive is a scalar schema node with an optional format and constraints.
type Primitive struct {
	Kind        Kind
	Format      string
	Constraints Constraints
}

// Enum is a closed set of string values in declaration order.
type Enum struct {
	Values []string
}

// Array is a homogeneous sequence of items.
type Array struct {
	Items Node
}

// Map is a string-keyed associative shape, rendered as an object with
// additionalProperties.
type Map struct {
	Value Node
}

// Object is a composite with named properties in declaration order.
// Transient properties are never present here.
type Object struct {
	Properties []Property
}

// Any is the unconstrained schema produced for interface types.
type Any struct{}

// Ref points by name to a NamedSchema stored in the engine's cache.
type Ref struct {
	Name string
}

func (Primitive) isNode() {}
func (Enum) isNode()      {}
func (Array) isNode()     {}
func (Map) isNode()       {}
func (Object) isNode()    {}
func (Any) isNode()       {}
func (Ref) isNode()       {}

// Property is a single resolved object property.
//
// Required describes presence, not nullability: a pointer field without
// an omitempty tag option is both nullable and required.
type Property struct {
	Name string
	Node Node

	Nullable bool
	Required bool

	// Transient marks a property excluded from output. The object
	// resolver still walks its type so cycle registration stays
	// consistent, then drops the entry: a transient property is never
	// present in an Object node.
	Transient bool

	// RenamedFrom holds the Go field name when a json tag overrode it.
	RenamedFrom string

	Description string
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool
	Example     any
}

// NamedSchema is a schema entry with a stable, referenceable name.
// Each distinct concrete type produces at most one NamedSchema per
// engine pass.
type NamedSchema struct {
	// Name is the unique output name, disambiguated across packages.
	Name string

	// Type is the canonical concrete type this entry describes.
	Type reflect.Type

	// Node is the resolved schema tree. During object resolution it is
	// nil until all properties have been walked; cyclic references
	// observe the entry and short-circuit to a Ref before then.
	Node Node

	// Example is set when the type implements Exampler.
	Example any
}

// Exampler can be implemented by types to provide an example value for
// the generated schema.
//
//	func (u User) OpenAPIExample() any {
//	    return User{ID: "550e8400-e29b-41d4-a716-446655440000", Name: "Alice"}
//	}
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-9.5
type Exampler interface {
	OpenAPIExample() any
}

// Enumer can be implemented by types to declare a closed set of values.
// The returned slice is emitted in order, not sorted.
//
//	type Color string
//
//	func (Color) OpenAPIEnum() []string {
//	    return []string{"red", "green", "blue"}
//	}
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation#section-6.1.2
type Enumer interface {
	OpenAPIEnum() []string
}
