package query

import (
	"fmt"

	"github.com/conduit-lang/routegen/schema"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortingConfig configures the sorting dimension of a list query.
// AllowedFields is the fixed whitelist of sortable fields; every entry must
// exist on the entity schema.
type SortingConfig struct {
	AllowedFields    []string
	DefaultField     string
	DefaultDirection Direction
	AllowMultiple    bool
}

// validate checks the config against the entity schema. Unknown allowed
// fields are an error unless the entity is loose, in which case they are
// dropped.
func (c SortingConfig) validate(entity *schema.Object) ([]string, error) {
	if len(c.AllowedFields) == 0 {
		return nil, fmt.Errorf("sorting: allowed fields must not be empty")
	}

	allowed := make([]string, 0, len(c.AllowedFields))
	for _, field := range c.AllowedFields {
		if !entity.Has(field) {
			if entity.IsLoose() {
				continue
			}
			return nil, fmt.Errorf("sorting: %w: %s", schema.ErrUnknownField, field)
		}
		allowed = append(allowed, field)
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("sorting: no allowed fields exist on the entity")
	}

	if c.DefaultField != "" {
		found := false
		for _, field := range allowed {
			if field == c.DefaultField {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("sorting: default field %q is not in allowed fields", c.DefaultField)
		}
	}

	switch c.DefaultDirection {
	case "", Ascending, Descending:
	default:
		return nil, fmt.Errorf("sorting: invalid default direction %q", c.DefaultDirection)
	}

	return allowed, nil
}

// inputFields returns the query parameters this dimension contributes.
// Multiple sorting accepts an array of field names; single sorting a scalar.
// Either way the direction travels in a separate "order" parameter.
func (c SortingConfig) inputFields(allowed []string) *schema.Object {
	sortField := schema.Enum(allowed...).AsOptional()

	fields := schema.NewObject()
	if c.AllowMultiple {
		fields = fields.Add("sort", schema.ArrayOf(schema.Enum(allowed...)).AsOptional())
	} else {
		fields = fields.Add("sort", sortField)
	}
	return fields.Add("order", schema.Enum(string(Ascending), string(Descending)).AsOptional())
}
