// Package schema provides the structural type system used by the contract
// generator. It defines field specifications with explicit optionality and
// constraints, ordered object schemas, and the derivation primitives
// (Omit, Pick, Partial) that operation builders compose.
package schema

import (
	"fmt"
	"regexp"
)

// PrimitiveType represents the built-in semantic field types.
type PrimitiveType int

const (
	// Text types
	TypeString PrimitiveType = iota
	TypeText

	// Numeric types
	TypeInt
	TypeFloat

	// Boolean
	TypeBool

	// Time types
	TypeTimestamp
	TypeDate

	// Unique identifiers
	TypeUUID

	// Validated types
	TypeEmail
	TypeURL

	// Structured types
	TypeJSON
	TypeEnum

	// Unconstrained
	TypeAny
)

// String returns the string representation of the primitive type
func (p PrimitiveType) String() string {
	switch p {
	case TypeString:
		return "string"
	case TypeText:
		return "text"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeTimestamp:
		return "timestamp"
	case TypeDate:
		return "date"
	case TypeUUID:
		return "uuid"
	case TypeEmail:
		return "email"
	case TypeURL:
		return "url"
	case TypeJSON:
		return "json"
	case TypeEnum:
		return "enum"
	case TypeAny:
		return "any"
	default:
		return "unknown"
	}
}

// ParsePrimitiveType converts a string to a PrimitiveType
func ParsePrimitiveType(s string) (PrimitiveType, error) {
	switch s {
	case "string":
		return TypeString, nil
	case "text":
		return TypeText, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "bool":
		return TypeBool, nil
	case "timestamp":
		return TypeTimestamp, nil
	case "date":
		return TypeDate, nil
	case "uuid":
		return TypeUUID, nil
	case "email":
		return TypeEmail, nil
	case "url":
		return TypeURL, nil
	case "json":
		return TypeJSON, nil
	case "enum":
		return TypeEnum, nil
	case "any":
		return TypeAny, nil
	default:
		return 0, fmt.Errorf("unknown primitive type: %s", s)
	}
}

// FieldSpec is a complete field specification: a semantic type, optionality,
// and constraints. Array fields carry an element spec, nested objects carry
// their own Object schema. FieldSpec values are treated as immutable; every
// modifier returns a copy, so specs can be shared freely between derived
// schemas.
type FieldSpec struct {
	Type     PrimitiveType
	Optional bool

	// Numeric constraints
	MinValue *float64
	MaxValue *float64

	// Text constraints
	MinLength *int
	MaxLength *int
	Pattern   *regexp.Regexp

	// Enum values (Type == TypeEnum)
	EnumValues []string

	// Array element and bounds
	Elem     *FieldSpec
	MinItems *int
	MaxItems *int

	// Nested object fields
	Fields *Object
}

// String constructs a required string field spec.
func String() *FieldSpec { return &FieldSpec{Type: TypeString} }

// Text constructs a required long-text field spec.
func Text() *FieldSpec { return &FieldSpec{Type: TypeText} }

// Int constructs a required integer field spec.
func Int() *FieldSpec { return &FieldSpec{Type: TypeInt} }

// Float constructs a required float field spec.
func Float() *FieldSpec { return &FieldSpec{Type: TypeFloat} }

// Bool constructs a required boolean field spec.
func Bool() *FieldSpec { return &FieldSpec{Type: TypeBool} }

// Timestamp constructs a required timestamp field spec.
func Timestamp() *FieldSpec { return &FieldSpec{Type: TypeTimestamp} }

// Date constructs a required date field spec.
func Date() *FieldSpec { return &FieldSpec{Type: TypeDate} }

// UUID constructs a required uuid field spec.
func UUID() *FieldSpec { return &FieldSpec{Type: TypeUUID} }

// Email constructs a required email field spec.
func Email() *FieldSpec { return &FieldSpec{Type: TypeEmail} }

// URL constructs a required url field spec.
func URL() *FieldSpec { return &FieldSpec{Type: TypeURL} }

// JSON constructs a required free-form JSON field spec.
func JSON() *FieldSpec { return &FieldSpec{Type: TypeJSON} }

// Any constructs a field spec that accepts any value.
func Any() *FieldSpec { return &FieldSpec{Type: TypeAny} }

// Enum constructs a required enum field spec with the given values.
func Enum(values ...string) *FieldSpec {
	return &FieldSpec{Type: TypeEnum, EnumValues: values}
}

// ArrayOf constructs a required array field spec with the given element spec.
func ArrayOf(elem *FieldSpec) *FieldSpec {
	return &FieldSpec{Elem: elem}
}

// ObjectOf constructs a required nested-object field spec.
func ObjectOf(fields *Object) *FieldSpec {
	return &FieldSpec{Fields: fields}
}

// clone returns a shallow copy of the spec. Pointer-valued constraints are
// never mutated after construction, so sharing them between copies is safe.
func (f *FieldSpec) clone() *FieldSpec {
	c := *f
	return &c
}

// AsOptional returns a copy of the spec marked optional.
func (f *FieldSpec) AsOptional() *FieldSpec {
	c := f.clone()
	c.Optional = true
	return c
}

// AsRequired returns a copy of the spec marked required.
func (f *FieldSpec) AsRequired() *FieldSpec {
	c := f.clone()
	c.Optional = false
	return c
}

// Min returns a copy of the spec with a minimum numeric value constraint.
func (f *FieldSpec) Min(min float64) *FieldSpec {
	c := f.clone()
	c.MinValue = &min
	return c
}

// Max returns a copy of the spec with a maximum numeric value constraint.
func (f *FieldSpec) Max(max float64) *FieldSpec {
	c := f.clone()
	c.MaxValue = &max
	return c
}

// MinLen returns a copy of the spec with a minimum length constraint.
func (f *FieldSpec) MinLen(n int) *FieldSpec {
	c := f.clone()
	c.MinLength = &n
	return c
}

// MaxLen returns a copy of the spec with a maximum length constraint.
func (f *FieldSpec) MaxLen(n int) *FieldSpec {
	c := f.clone()
	c.MaxLength = &n
	return c
}

// Matching returns a copy of the spec with a pattern constraint.
func (f *FieldSpec) Matching(pattern *regexp.Regexp) *FieldSpec {
	c := f.clone()
	c.Pattern = pattern
	return c
}

// Bounded returns a copy of an array spec with inclusive item-count bounds.
func (f *FieldSpec) Bounded(min, max int) *FieldSpec {
	c := f.clone()
	c.MinItems = &min
	c.MaxItems = &max
	return c
}

// IsArray reports whether the spec describes an array.
func (f *FieldSpec) IsArray() bool { return f.Elem != nil }

// IsObject reports whether the spec describes a nested object.
func (f *FieldSpec) IsObject() bool { return f.Fields != nil }

// IsNumeric reports whether the spec describes a numeric type.
func (f *FieldSpec) IsNumeric() bool {
	return f.Type == TypeInt || f.Type == TypeFloat
}

// IsText reports whether the spec describes a text type.
func (f *FieldSpec) IsText() bool {
	return f.Type == TypeString || f.Type == TypeText
}

// TypeString returns a human-readable type description, including the
// optionality marker used in route tables and error messages.
func (f *FieldSpec) TypeString() string {
	var s string
	switch {
	case f.IsArray():
		s = fmt.Sprintf("array<%s>", f.Elem.TypeString())
	case f.IsObject():
		s = "object"
	case f.Type == TypeEnum:
		s = fmt.Sprintf("enum%v", f.EnumValues)
	default:
		s = f.Type.String()
	}
	if f.Optional {
		return s + "?"
	}
	return s + "!"
}
