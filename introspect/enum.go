package introspect

import "reflect"

// resolveEnum produces a Ref to the cached enum entry for t, creating
// the entry on first sight. Values come from the type's OpenAPIEnum
// method in declaration order. Resolving the same enum type twice
// returns references to the identical cache entry.
func (e *Engine) resolveEnum(t reflect.Type) Node {
	if entry := e.cache.get(t); entry != nil {
		return Ref{Name: entry.Name}
	}

	values := enumValues(t)

	simple := schemaName(t.Name())
	if simple == "" || t.PkgPath() == "" {
		return Enum{Values: values}
	}

	entry := e.cache.insert(t, simple)
	entry.Node = Enum{Values: values}
	return Ref{Name: entry.Name}
}

// enumValues calls OpenAPIEnum on a fresh instance of t. The pointer
// method set includes value-receiver implementations, so a single New
// covers both receiver forms.
func enumValues(t reflect.Type) []string {
	if en, ok := reflect.New(t).Interface().(Enumer); ok {
		return en.OpenAPIEnum()
	}
	return nil
}
