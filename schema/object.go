package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownField is returned when a transform or configuration references a
// field name that does not exist on the schema. Objects built in loose mode
// ignore unknown names instead.
var ErrUnknownField = errors.New("unknown field")

// Object is an ordered mapping of field name to FieldSpec. Field order is
// insertion order and is preserved by every transform. Objects are immutable:
// Add and the transforms return new values, so a schema can be shared across
// derived operation contracts without defensive copying.
type Object struct {
	names  []string
	fields map[string]*FieldSpec
	loose  bool
}

// NewObject creates an empty object schema.
func NewObject() *Object {
	return &Object{
		names:  make([]string, 0),
		fields: make(map[string]*FieldSpec),
	}
}

// Add returns a copy of the object with the field appended. Adding a name
// that already exists replaces the spec in place, keeping the original
// position.
func (o *Object) Add(name string, spec *FieldSpec) *Object {
	c := o.copy()
	if _, exists := c.fields[name]; !exists {
		c.names = append(c.names, name)
	}
	c.fields[name] = spec
	return c
}

// Loose returns a copy of the object that silently ignores unknown field
// names in Omit, Pick, and filter configuration instead of rejecting them.
func (o *Object) Loose() *Object {
	c := o.copy()
	c.loose = true
	return c
}

// IsLoose reports whether unknown field references are ignored.
func (o *Object) IsLoose() bool { return o.loose }

// Get returns the spec for a field name.
func (o *Object) Get(name string) (*FieldSpec, bool) {
	spec, ok := o.fields[name]
	return spec, ok
}

// Has reports whether the object has a field with the given name.
func (o *Object) Has(name string) bool {
	_, ok := o.fields[name]
	return ok
}

// Names returns the field names in declaration order.
func (o *Object) Names() []string {
	names := make([]string, len(o.names))
	copy(names, o.names)
	return names
}

// Len returns the number of fields.
func (o *Object) Len() int { return len(o.names) }

// Omit returns a copy of the object without the named fields. Unknown names
// are an error unless the object is loose.
func (o *Object) Omit(names ...string) (*Object, error) {
	if err := o.checkKnown(names); err != nil {
		return nil, err
	}

	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}

	result := &Object{
		names:  make([]string, 0, len(o.names)),
		fields: make(map[string]*FieldSpec, len(o.fields)),
		loose:  o.loose,
	}
	for _, name := range o.names {
		if drop[name] {
			continue
		}
		result.names = append(result.names, name)
		result.fields[name] = o.fields[name]
	}
	return result, nil
}

// Pick returns a copy of the object containing only the named fields,
// preserving their original relative order. Unknown names are an error
// unless the object is loose.
func (o *Object) Pick(names ...string) (*Object, error) {
	if err := o.checkKnown(names); err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}

	result := &Object{
		names:  make([]string, 0, len(names)),
		fields: make(map[string]*FieldSpec, len(names)),
		loose:  o.loose,
	}
	for _, name := range o.names {
		if !keep[name] {
			continue
		}
		result.names = append(result.names, name)
		result.fields[name] = o.fields[name]
	}
	return result, nil
}

// Partial returns a copy of the object with every field marked optional.
func (o *Object) Partial() *Object {
	result := &Object{
		names:  make([]string, len(o.names)),
		fields: make(map[string]*FieldSpec, len(o.fields)),
		loose:  o.loose,
	}
	copy(result.names, o.names)
	for name, spec := range o.fields {
		result.fields[name] = spec.AsOptional()
	}
	return result
}

// Merge returns a copy of the object with all fields of other appended.
// A field name present in both objects is an error: merged schemas come from
// independent query dimensions, which must contribute disjoint keys.
func (o *Object) Merge(other *Object) (*Object, error) {
	result := o.copy()
	for _, name := range other.names {
		if _, exists := result.fields[name]; exists {
			return nil, fmt.Errorf("merge: duplicate field %q", name)
		}
		result.names = append(result.names, name)
		result.fields[name] = other.fields[name]
	}
	return result, nil
}

// checkKnown validates that all names exist on the object, unless loose.
func (o *Object) checkKnown(names []string) error {
	if o.loose {
		return nil
	}
	for _, name := range names {
		if _, ok := o.fields[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	return nil
}

// copy returns a new object sharing field specs with the receiver. Specs are
// immutable, so sharing is safe.
func (o *Object) copy() *Object {
	c := &Object{
		names:  make([]string, len(o.names)),
		fields: make(map[string]*FieldSpec, len(o.fields)),
		loose:  o.loose,
	}
	copy(c.names, o.names)
	for name, spec := range o.fields {
		c.fields[name] = spec
	}
	return c
}
