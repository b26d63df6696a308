package introspect

import (
	"fmt"
	"reflect"
)

// Engine is the type-introspection entry point. It recursively resolves
// Go types into schema nodes, caching every named result so each
// distinct type is described exactly once per pass.
//
// An engine performs a single synchronous traversal at a time and is
// not safe for concurrent use. Run independent passes on independent
// engines, or call Reset between passes.
type Engine struct {
	cache    *schemaCache
	custom   map[reflect.Type]CustomType
	failures []error
}

// New creates an engine with an empty cache and custom type registry.
func New() *Engine {
	return &Engine{
		cache:  newSchemaCache(),
		custom: make(map[reflect.Type]CustomType),
	}
}

// Introspect resolves the type of v. A nil value yields a nil node.
// See IntrospectType for the resolution contract.
func (e *Engine) Introspect(v any) (Node, error) {
	if v == nil {
		return nil, nil
	}
	return e.IntrospectType(reflect.TypeOf(v))
}

// IntrospectType resolves a root type into a schema node. Named object
// and enum results are stored in the cache and returned as a Ref;
// primitives and containers are returned inline.
//
// A root type with no schema shape at all degrades to an empty object
// placeholder, and the failure is recorded for Failures — one bad
// endpoint definition must not prevent the rest of a document from
// being generated. Failures below the root are not masked this way:
// they propagate as errors, because a schema that silently omits a
// nested property is worse than no schema.
func (e *Engine) IntrospectType(t reflect.Type) (Node, error) {
	if t == nil {
		return nil, nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if e.classify(t) == CategoryUnknown {
		e.failures = append(e.failures, fmt.Errorf("%w: %s", ErrUnresolvableType, t))
		return Object{}, nil
	}

	return e.resolve(t)
}

// resolve routes a type to its resolver by category. Containers recurse
// back here for their element and value types; their results stay
// structural and uncached, only the nested named types enter the cache.
func (e *Engine) resolve(t reflect.Type) (Node, error) {
	switch e.classify(t) {
	case CategoryCustom:
		ct := e.custom[t]
		return Primitive{Kind: ct.Kind, Format: ct.Format, Constraints: ct.Constraints}, nil

	case CategoryEnum:
		return e.resolveEnum(t), nil

	case CategoryPrimitive:
		p, _ := mapPrimitive(t)
		return p, nil

	case CategoryArray, CategoryCollection:
		items, err := e.resolve(deref(t.Elem()))
		if err != nil {
			return nil, fmt.Errorf("element of %s: %w", t, err)
		}
		return Array{Items: items}, nil

	case CategoryMap:
		if t.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %s key in %s", ErrUnsupportedKeyType, t.Key(), t)
		}
		value, err := e.resolve(deref(t.Elem()))
		if err != nil {
			return nil, fmt.Errorf("value of %s: %w", t, err)
		}
		return Map{Value: value}, nil

	case CategoryGeneric, CategoryObject:
		return e.resolveObject(t)

	case CategoryAny:
		return Any{}, nil
	}

	// An unknown type below the root is a hard error. The wrap matches
	// both sentinels: the type is unresolvable, and a custom type
	// registration is the way out.
	return nil, fmt.Errorf("%w: %s (%w)", ErrUnresolvableType, t, ErrMissingCustomType)
}

// Schemas returns every named schema resolved so far in the current
// pass, sorted by output name.
func (e *Engine) Schemas() []*NamedSchema {
	return e.cache.all()
}

// Conflicts returns the name conflicts recorded during the current
// pass, sorted by colliding name.
func (e *Engine) Conflicts() []ConflictGroup {
	return e.cache.conflictGroups()
}

// Failures returns root-level resolution failures recorded during the
// current pass.
func (e *Engine) Failures() []error {
	return append([]error(nil), e.failures...)
}

// Reset clears the schema cache and recorded failures for a fresh pass.
// Custom type registrations survive: they are configuration, not pass
// state.
func (e *Engine) Reset() {
	e.cache = newSchemaCache()
	e.failures = nil
}

// deref strips any pointer layers.
func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
