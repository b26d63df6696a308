package introspect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// resolveProperty resolves a single struct field into a Property.
//
// The effective name defaults to the field name and is overridden by
// the json tag; when overridden, the original field name is kept as
// RenamedFrom. A `json:"-"` tag marks the property transient: its type
// is still resolved so cycle registration stays consistent, but the
// caller drops the entry. Pointer fields are nullable; fields without
// an omitempty option are required — required describes presence, not
// nullability, so a pointer field may be both.
func (e *Engine) resolveProperty(field reflect.StructField, allOptional bool) (Property, error) {
	tagName, opts := parseJSONTag(field.Tag.Get("json"))
	transient := tagName == "-"

	name := field.Name
	var renamedFrom string
	if tagName != "" && !transient {
		name = tagName
		if tagName != field.Name {
			renamedFrom = field.Name
		}
	}

	ft := field.Type
	nullable := ft.Kind() == reflect.Pointer
	ft = deref(ft)

	node, err := e.resolve(ft)
	if err != nil {
		return Property{}, fmt.Errorf("property %s: %w", field.Name, err)
	}

	prop := Property{
		Name:        name,
		Node:        node,
		Nullable:    nullable,
		Required:    !opts.omitempty && !allOptional,
		Transient:   transient,
		RenamedFrom: renamedFrom,
	}

	applyTag(&prop, field.Tag.Get("openapi"))

	// The encoding/json ",string" option encodes numeric and boolean
	// values as JSON strings. Override the node kind accordingly.
	if opts.stringEncode {
		if p, ok := prop.Node.(Primitive); ok {
			p.Kind = KindString
			p.Format = ""
			prop.Node = p
		}
	}

	return prop, nil
}

type jsonTagOpts struct {
	omitempty    bool
	stringEncode bool // encoding/json ",string" option
}

func parseJSONTag(tag string) (string, jsonTagOpts) {
	if tag == "" {
		return "", jsonTagOpts{}
	}
	name, rest, _ := strings.Cut(tag, ",")
	return name, jsonTagOpts{
		omitempty:    strings.Contains(rest, "omitempty") || strings.Contains(rest, "omitzero"),
		stringEncode: strings.Contains(rest, "string"),
	}
}

// applyTag parses the `openapi` struct tag onto a property. Constraint
// keys apply to primitive nodes; an enum key replaces the node with an
// inline enumeration; the remaining keys annotate the property itself.
//
// See: https://json-schema.org/draft/2020-12/json-schema-validation
func applyTag(prop *Property, tag string) {
	if tag == "" {
		return
	}

	for _, part := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if hasValue {
			value = strings.TrimSpace(value)
		}

		switch key {
		case "description":
			prop.Description = value
		case "example":
			prop.Example = parseTagValue(prop.Node, value)
		case "deprecated":
			prop.Deprecated = true
		case "readOnly":
			prop.ReadOnly = true
		case "writeOnly":
			prop.WriteOnly = true
		case "required":
			prop.Required = true
		case "enum":
			prop.Node = Enum{Values: strings.Split(value, "|")}
		case "format":
			if p, ok := prop.Node.(Primitive); ok {
				p.Format = value
				prop.Node = p
			}
		case "minimum":
			setFloat(prop, value, func(c *Constraints, v *float64) { c.Minimum = v })
		case "maximum":
			setFloat(prop, value, func(c *Constraints, v *float64) { c.Maximum = v })
		case "multipleOf":
			setFloat(prop, value, func(c *Constraints, v *float64) { c.MultipleOf = v })
		case "minLength":
			setInt(prop, value, func(c *Constraints, v *int) { c.MinLength = v })
		case "maxLength":
			setInt(prop, value, func(c *Constraints, v *int) { c.MaxLength = v })
		case "pattern":
			if p, ok := prop.Node.(Primitive); ok {
				p.Constraints.Pattern = value
				prop.Node = p
			}
		}
	}
}

func setFloat(prop *Property, value string, assign func(*Constraints, *float64)) {
	p, ok := prop.Node.(Primitive)
	if !ok {
		return
	}
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		assign(&p.Constraints, &v)
		prop.Node = p
	}
}

func setInt(prop *Property, value string, assign func(*Constraints, *int)) {
	p, ok := prop.Node.(Primitive)
	if !ok {
		return
	}
	if v, err := strconv.Atoi(value); err == nil {
		assign(&p.Constraints, &v)
		prop.Node = p
	}
}

// parseTagValue converts a string tag value to the Go type matching the
// node's primitive kind.
func parseTagValue(node Node, value string) any {
	p, ok := node.(Primitive)
	if !ok {
		return value
	}

	switch p.Kind {
	case KindInteger:
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case KindNumber:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case KindBoolean:
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return value
}
