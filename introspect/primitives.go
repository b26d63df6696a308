package introspect

import (
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Well-known concrete types with fixed schema mappings.
var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	urlType      = reflect.TypeOf(url.URL{})
	ipType       = reflect.TypeOf(net.IP{})
)

// mapPrimitive maps a Go type to its primitive schema shape, or reports
// false for types that must be treated as composites. The mapping is a
// closed table: every concrete type maps to exactly one shape or none.
//
// See: https://spec.openapis.org/oas/v3.1.0#data-types
func mapPrimitive(t reflect.Type) (Primitive, bool) {
	switch t {
	case timeType:
		return Primitive{Kind: KindString, Format: "date-time"}, true
	case durationType:
		return Primitive{Kind: KindInteger, Format: "int64"}, true
	case uuidType:
		return Primitive{Kind: KindString, Format: "uuid"}, true
	case urlType:
		return Primitive{Kind: KindString, Format: "uri"}, true
	case ipType:
		return Primitive{Kind: KindString, Format: "ipv4"}, true
	}

	switch t.Kind() {
	case reflect.Bool:
		return Primitive{Kind: KindBoolean}, true

	case reflect.Int8, reflect.Int16, reflect.Int32:
		return Primitive{Kind: KindInteger, Format: "int32"}, true

	case reflect.Int, reflect.Int64:
		return Primitive{Kind: KindInteger, Format: "int64"}, true

	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return Primitive{Kind: KindInteger, Format: "int32"}, true

	case reflect.Uint, reflect.Uint64:
		return Primitive{Kind: KindInteger, Format: "int64"}, true

	case reflect.Float32:
		return Primitive{Kind: KindNumber, Format: "float"}, true

	case reflect.Float64:
		return Primitive{Kind: KindNumber, Format: "double"}, true

	case reflect.String:
		return Primitive{Kind: KindString}, true

	case reflect.Slice:
		// []byte encodes as a base64 string in encoding/json.
		if t.Elem().Kind() == reflect.Uint8 {
			return Primitive{Kind: KindString, Format: "byte"}, true
		}
	}

	return Primitive{}, false
}
