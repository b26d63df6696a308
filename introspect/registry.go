package introspect

import (
	"fmt"
	"reflect"
)

// CustomType overrides schema resolution for one concrete type,
// mapping it to a primitive shape with optional format and constraints.
// Registrations are validated eagerly and live for the lifetime of the
// engine: Reset does not clear them.
type CustomType struct {
	Kind        Kind
	Format      string
	Constraints Constraints
}

// RegisterCustomType registers a schema override for the type of sample.
// Pointer samples are dereferenced to their element type. Constraints
// incompatible with the target kind, inverted bound pairs, and
// non-positive multipleOf factors are rejected with ErrInvalidConstraint.
//
// Re-registering the same type silently overwrites the previous entry
// (last write wins).
//
// Registration must happen before any introspection pass that reaches
// the type; the registry is consulted before every other classification
// step.
func (e *Engine) RegisterCustomType(sample any, ct CustomType) error {
	if sample == nil {
		return fmt.Errorf("%w: nil sample", ErrInvalidConstraint)
	}

	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if err := validateCustomType(t, ct); err != nil {
		return err
	}

	e.custom[t] = ct
	return nil
}

// validateCustomType checks constraint/kind compatibility.
func validateCustomType(t reflect.Type, ct CustomType) error {
	c := ct.Constraints

	switch ct.Kind {
	case KindString:
		if c.Minimum != nil || c.Maximum != nil || c.MultipleOf != nil {
			return fmt.Errorf("%w: numeric bounds on string custom type %s", ErrInvalidConstraint, t)
		}
	case KindInteger, KindNumber:
		if c.MinLength != nil || c.MaxLength != nil || c.Pattern != "" {
			return fmt.Errorf("%w: string bounds on numeric custom type %s", ErrInvalidConstraint, t)
		}
	case KindBoolean:
		if !c.empty() {
			return fmt.Errorf("%w: constraints on boolean custom type %s", ErrInvalidConstraint, t)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q for custom type %s", ErrInvalidConstraint, ct.Kind, t)
	}

	if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
		return fmt.Errorf("%w: minimum %v greater than maximum %v for %s",
			ErrInvalidConstraint, *c.Minimum, *c.Maximum, t)
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		return fmt.Errorf("%w: minLength %d greater than maxLength %d for %s",
			ErrInvalidConstraint, *c.MinLength, *c.MaxLength, t)
	}
	if c.MinLength != nil && *c.MinLength < 0 {
		return fmt.Errorf("%w: negative minLength for %s", ErrInvalidConstraint, t)
	}
	if c.MultipleOf != nil && *c.MultipleOf <= 0 {
		return fmt.Errorf("%w: multipleOf must be positive for %s", ErrInvalidConstraint, t)
	}

	return nil
}
