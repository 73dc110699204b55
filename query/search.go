package query

import (
	"fmt"

	"github.com/conduit-lang/routegen/schema"
)

// SearchConfig configures the search dimension of a list query.
type SearchConfig struct {
	SearchableFields    []string
	MinQueryLength      int
	AllowFieldSelection bool
}

// validate checks the config against the entity schema.
func (c SearchConfig) validate(entity *schema.Object) ([]string, error) {
	if len(c.SearchableFields) == 0 {
		return nil, fmt.Errorf("search: searchable fields must not be empty")
	}
	if c.MinQueryLength < 0 {
		return nil, fmt.Errorf("search: min query length must not be negative")
	}

	fields := make([]string, 0, len(c.SearchableFields))
	for _, field := range c.SearchableFields {
		if !entity.Has(field) {
			if entity.IsLoose() {
				continue
			}
			return nil, fmt.Errorf("search: %w: %s", schema.ErrUnknownField, field)
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("search: no searchable fields exist on the entity")
	}

	return fields, nil
}

// inputFields returns the query parameters this dimension contributes:
// the search term "q" and, when field selection is allowed, a "fields"
// array restricted to the searchable set.
func (c SearchConfig) inputFields(fields []string) *schema.Object {
	q := schema.String()
	if c.MinQueryLength > 0 {
		q = q.MinLen(c.MinQueryLength)
	}

	result := schema.NewObject().Add("q", q)
	if c.AllowFieldSelection {
		result = result.Add("fields", schema.ArrayOf(schema.Enum(fields...)).AsOptional())
	}
	return result
}
