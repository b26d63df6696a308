package openapi

import (
	"github.com/vellum-api/vellum/introspect"
)

// refPrefix is the JSON Pointer prefix for component schema references.
//
// See: https://spec.openapis.org/oas/v3.1.0#reference-object
const refPrefix = "#/components/schemas/"

// renderNode converts a resolved schema node into an OpenAPI Schema.
// The switch is exhaustive over the node variants; the introspect
// package keeps the set closed.
func renderNode(n introspect.Node) *Schema {
	switch node := n.(type) {
	case introspect.Primitive:
		return renderPrimitive(node)

	case introspect.Enum:
		values := make([]any, len(node.Values))
		for i, v := range node.Values {
			values[i] = v
		}
		return &Schema{Type: TypeString("string"), Enum: values}

	case introspect.Array:
		return &Schema{
			Type:  TypeString("array"),
			Items: renderNode(node.Items),
		}

	case introspect.Map:
		return &Schema{
			Type:                 TypeString("object"),
			AdditionalProperties: renderNode(node.Value),
		}

	case introspect.Object:
		return renderObject(node)

	case introspect.Any:
		return &Schema{}

	case introspect.Ref:
		return &Schema{Ref: refPrefix + node.Name}
	}

	return &Schema{}
}

// renderPrimitive maps a primitive node onto a Schema, carrying format
// and validation constraints through.
func renderPrimitive(p introspect.Primitive) *Schema {
	s := &Schema{Type: TypeString(string(p.Kind))}
	if p.Format != "" {
		s.Format = p.Format
	}

	c := p.Constraints
	s.Minimum = c.Minimum
	s.Maximum = c.Maximum
	s.MultipleOf = c.MultipleOf
	s.MinLength = c.MinLength
	s.MaxLength = c.MaxLength
	s.Pattern = c.Pattern

	return s
}

// renderObject renders an object node with its properties and required
// list in declaration order.
func renderObject(o introspect.Object) *Schema {
	s := &Schema{Type: TypeString("object")}
	if len(o.Properties) == 0 {
		return s
	}

	s.Properties = make(map[string]*Schema, len(o.Properties))
	for _, prop := range o.Properties {
		s.Properties[prop.Name] = renderProperty(prop)
		if prop.Required {
			s.Required = append(s.Required, prop.Name)
		}
	}

	return s
}

// renderProperty renders a single object property. Nullability is
// expressed as a type array for inline schemas and as an anyOf wrapper
// for references, since a $ref cannot grow an extra type. Annotations
// apply in every case: JSON Schema 2020-12 permits keywords alongside
// $ref, and for a nullable reference they sit on the anyOf wrapper.
//
// See: https://json-schema.org/draft/2020-12/json-schema-core#section-10.2.1.2
func renderProperty(p introspect.Property) *Schema {
	s := renderNode(p.Node)

	if p.Nullable {
		if s.Ref != "" {
			s = &Schema{AnyOf: []*Schema{s, {Type: TypeString("null")}}}
		} else if !s.Type.IsZero() {
			s.Type = TypeArray(append(s.Type.Values(), "null")...)
		}
	}

	s.Description = p.Description
	s.Deprecated = p.Deprecated
	s.ReadOnly = p.ReadOnly
	s.WriteOnly = p.WriteOnly
	if p.Example != nil {
		s.Example = p.Example
	}

	return s
}

// componentSchemas renders every named schema the engine resolved into
// the components map, applying type-level examples.
func componentSchemas(engine *introspect.Engine) map[string]*Schema {
	named := engine.Schemas()
	if len(named) == 0 {
		return nil
	}

	schemas := make(map[string]*Schema, len(named))
	for _, ns := range named {
		s := renderNode(ns.Node)
		if ns.Example != nil {
			s.Example = ns.Example
		}
		schemas[ns.Name] = s
	}

	return schemas
}
