package introspect

import (
	"reflect"
	"strings"
)

// Category is the result of classifying a type. It routes resolution to
// the matching specialized resolver.
type Category int

const (
	// CategoryCustom matches a registered custom type override.
	CategoryCustom Category = iota

	// CategoryEnum matches types implementing Enumer.
	CategoryEnum

	// CategoryPrimitive matches the closed primitive table.
	CategoryPrimitive

	// CategoryArray matches fixed-size native arrays.
	CategoryArray

	// CategoryCollection matches slices.
	CategoryCollection

	// CategoryMap matches map types.
	CategoryMap

	// CategoryGeneric matches instantiated generic struct types.
	CategoryGeneric

	// CategoryObject matches plain struct types.
	CategoryObject

	// CategoryAny matches interface types.
	CategoryAny

	// CategoryUnknown is the fallback for types with no schema shape
	// (chan, func, complex, unsafe pointer).
	CategoryUnknown
)

var enumerType = reflect.TypeOf((*Enumer)(nil)).Elem()

// classify decides which resolver handles a type. Classification is a
// pure read of type metadata plus a custom registry lookup; the
// decision order is fixed and significant, since several categories
// overlap structurally:
//
//  1. registered custom types short-circuit everything else
//  2. Enumer implementations, before the primitive table so that a
//     named string type with declared values resolves as an enum
//  3. the primitive table, before struct handling so that well-known
//     structs such as time.Time stay scalar
//  4. containers (fixed arrays, slices, maps)
//  5. structs, split into generic instantiations and plain objects
//  6. interfaces, which carry no shape information
//  7. everything else falls through to CategoryUnknown
func (e *Engine) classify(t reflect.Type) Category {
	if _, ok := e.custom[t]; ok {
		return CategoryCustom
	}

	if t.Implements(enumerType) || reflect.PointerTo(t).Implements(enumerType) {
		return CategoryEnum
	}

	if _, ok := mapPrimitive(t); ok {
		return CategoryPrimitive
	}

	switch t.Kind() {
	case reflect.Array:
		return CategoryArray
	case reflect.Slice:
		return CategoryCollection
	case reflect.Map:
		return CategoryMap
	case reflect.Struct:
		if strings.IndexByte(t.Name(), '[') >= 0 {
			return CategoryGeneric
		}
		return CategoryObject
	case reflect.Interface:
		return CategoryAny
	}

	return CategoryUnknown
}
