package introspect

import "errors"

// Resolution errors.
var (
	// ErrUnresolvableType is recorded when classification of a root type
	// falls through to the unknown fallback. The engine degrades to an
	// empty object placeholder and keeps going; the error is available
	// via Failures.
	ErrUnresolvableType = errors.New("introspect: unresolvable type")

	// ErrUnsupportedKeyType is returned when a map key type is not a
	// string kind. OpenAPI objects only support string property names.
	ErrUnsupportedKeyType = errors.New("introspect: unsupported map key type")

	// ErrMissingCustomType is returned when a nested type can only be
	// described through a custom type registration (chan, func, complex,
	// unsafe pointer) and no registration exists for it. Errors from
	// this path match ErrUnresolvableType as well, so callers can test
	// either sentinel.
	ErrMissingCustomType = errors.New("introspect: type requires a custom type registration")
)

// Registration errors.
var (
	// ErrInvalidConstraint is returned by RegisterCustomType when the
	// supplied constraints are incompatible with the target kind, a
	// bound pair is inverted, or a multipleOf factor is non-positive.
	ErrInvalidConstraint = errors.New("introspect: invalid custom type constraint")
)
