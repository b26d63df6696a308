package introspect

import (
	"fmt"
	"reflect"
)

// resolveObject produces a Ref to the cached object entry for t,
// resolving the object on first sight. Anonymous structs resolve to an
// inline Object node and are never cached.
//
// Cycle breaking: the cache entry is inserted as a placeholder before
// any property is walked, so a property whose type leads back to t
// observes the entry and short-circuits to a Ref instead of recursing
// forever. If any property fails to resolve, the placeholder is rolled
// back together with every entry cached while building it, since those
// entries may hold a Ref to the placeholder. The error propagates and
// no partial object schema survives.
func (e *Engine) resolveObject(t reflect.Type) (Node, error) {
	simple := schemaName(t.Name())
	if simple == "" || t.PkgPath() == "" {
		return e.buildObject(t)
	}

	if entry := e.cache.get(t); entry != nil {
		return Ref{Name: entry.Name}, nil
	}

	mark := e.cache.mark()
	entry := e.cache.insert(t, simple)

	obj, err := e.buildObject(t)
	if err != nil {
		e.cache.rollback(mark)
		return nil, fmt.Errorf("resolving %s: %w", t, err)
	}
	entry.Node = obj

	if ex, ok := reflect.New(t).Interface().(Exampler); ok {
		entry.Example = ex.OpenAPIExample()
	}

	return Ref{Name: entry.Name}, nil
}

// buildObject assembles the property list for a struct type in field
// declaration order.
func (e *Engine) buildObject(t reflect.Type) (Object, error) {
	var props []Property
	if err := e.collectFields(t, &props, false); err != nil {
		return Object{}, err
	}
	return Object{Properties: props}, nil
}

// collectFields walks exported struct fields in declaration order.
// Embedded structs without an explicit json tag name are inlined, the
// way encoding/json flattens them; fields inlined through a pointer
// embed become optional, since a nil embed omits them all from output.
// Transient properties are walked and then dropped.
func (e *Engine) collectFields(t reflect.Type, props *[]Property, allOptional bool) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if !field.IsExported() {
			continue
		}

		if field.Anonymous {
			jsonName, _ := parseJSONTag(field.Tag.Get("json"))
			if jsonName == "" {
				ft := field.Type
				isPtr := ft.Kind() == reflect.Pointer
				if isPtr {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct {
					if err := e.collectFields(ft, props, allOptional || isPtr); err != nil {
						return err
					}
					continue
				}
			}
		}

		prop, err := e.resolveProperty(field, allOptional)
		if err != nil {
			return err
		}
		if prop.Transient {
			continue
		}

		*props = append(*props, prop)
	}

	return nil
}
