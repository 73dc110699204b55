// Package query provides the composable list-query dimensions — pagination,
// sorting, filtering, and search — and the composer that merges them into a
// single query input schema and a list output schema.
package query

import (
	"fmt"

	"github.com/conduit-lang/routegen/schema"
)

// Default pagination limits applied when a PaginationConfig leaves them zero.
const (
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1
)

// PaginationConfig configures the pagination dimension of a list query.
// At most one of the three inclusion flags is typically set; setting several
// exposes all of the corresponding parameters.
type PaginationConfig struct {
	DefaultLimit  int
	MaxLimit      int
	MinLimit      int
	IncludeOffset bool
	IncludeCursor bool
	IncludePage   bool
}

// withDefaults fills zero limits with the package defaults.
func (c PaginationConfig) withDefaults() PaginationConfig {
	if c.DefaultLimit == 0 {
		c.DefaultLimit = DefaultLimit
	}
	if c.MaxLimit == 0 {
		c.MaxLimit = MaxLimit
	}
	if c.MinLimit == 0 {
		c.MinLimit = MinLimit
	}
	return c
}

// Validate checks the limit invariant MinLimit <= DefaultLimit <= MaxLimit.
func (c PaginationConfig) Validate() error {
	if c.MinLimit < 1 {
		return fmt.Errorf("pagination: min limit must be at least 1, got %d", c.MinLimit)
	}
	if c.DefaultLimit < c.MinLimit {
		return fmt.Errorf("pagination: default limit %d is below min limit %d", c.DefaultLimit, c.MinLimit)
	}
	if c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("pagination: default limit %d exceeds max limit %d", c.DefaultLimit, c.MaxLimit)
	}
	return nil
}

// inputFields returns the query parameters this dimension contributes.
func (c PaginationConfig) inputFields() *schema.Object {
	fields := schema.NewObject().
		Add("limit", schema.Int().Min(float64(c.MinLimit)).Max(float64(c.MaxLimit)).AsOptional())

	if c.IncludeOffset {
		fields = fields.Add("offset", schema.Int().Min(0).AsOptional())
	}
	if c.IncludeCursor {
		fields = fields.Add("cursor", schema.String().AsOptional())
	}
	if c.IncludePage {
		fields = fields.Add("page", schema.Int().Min(1).AsOptional())
	}
	return fields
}

// metaFields returns the list-output metadata object this dimension
// contributes.
func (c PaginationConfig) metaFields() *schema.Object {
	meta := schema.NewObject().
		Add("total", schema.Int().Min(0)).
		Add("limit", schema.Int().Min(1))

	if c.IncludeOffset {
		meta = meta.Add("offset", schema.Int().Min(0).AsOptional())
	}
	if c.IncludeCursor {
		meta = meta.Add("cursor", schema.String().AsOptional())
	}
	if c.IncludePage {
		meta = meta.Add("page", schema.Int().Min(1).AsOptional())
	}

	return meta.Add("hasMore", schema.Bool())
}
