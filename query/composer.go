package query

import (
	"errors"
	"fmt"

	"github.com/conduit-lang/routegen/schema"
)

// ErrKeyCollision is returned when two dimensions claim the same top-level
// query parameter name.
var ErrKeyCollision = errors.New("query key collision")

// Config is the exportable record of up to four dimension configs. Absent
// dimensions contribute nothing. A Config built from one composer can seed
// composers for several operations (a REST list and its streaming variant,
// for example).
type Config struct {
	Pagination *PaginationConfig
	Sorting    *SortingConfig
	Filtering  *FilteringConfig
	Search     *SearchConfig
}

// IsZero reports whether no dimension is configured.
func (c Config) IsZero() bool {
	return c.Pagination == nil && c.Sorting == nil && c.Filtering == nil && c.Search == nil
}

// Composer merges zero to four query dimensions into one input schema and
// one list output schema. Composers are immutable: every With call returns a
// new value, so a base composer can be branched into divergent variants.
type Composer struct {
	entity     *schema.Object
	dimensions map[Kind]*Dimension
	err        error
}

// NewComposer creates a composer for the given entity schema.
func NewComposer(entity *schema.Object) *Composer {
	return &Composer{
		entity:     entity,
		dimensions: make(map[Kind]*Dimension),
	}
}

// FromConfig creates a composer with every dimension present in the config.
func FromConfig(entity *schema.Object, cfg Config) *Composer {
	c := NewComposer(entity)
	if cfg.Pagination != nil {
		c = c.WithPagination(*cfg.Pagination)
	}
	if cfg.Sorting != nil {
		c = c.WithSorting(*cfg.Sorting)
	}
	if cfg.Filtering != nil {
		c = c.WithFiltering(*cfg.Filtering)
	}
	if cfg.Search != nil {
		c = c.WithSearch(*cfg.Search)
	}
	return c
}

// With returns a composer with the dimension added. A later dimension of the
// same kind replaces the earlier one.
func (c *Composer) With(d *Dimension) *Composer {
	next := c.copy()
	next.dimensions[d.kind] = d
	return next
}

// WithPagination returns a composer with a pagination dimension built from
// the plain config.
func (c *Composer) WithPagination(cfg PaginationConfig) *Composer {
	d, err := Pagination(cfg)
	if err != nil {
		return c.withErr(err)
	}
	return c.With(d)
}

// WithSorting returns a composer with a sorting dimension built from the
// plain config.
func (c *Composer) WithSorting(cfg SortingConfig) *Composer {
	d, err := Sorting(c.entity, cfg)
	if err != nil {
		return c.withErr(err)
	}
	return c.With(d)
}

// WithFiltering returns a composer with a filtering dimension built from the
// plain config.
func (c *Composer) WithFiltering(cfg FilteringConfig) *Composer {
	d, err := Filtering(c.entity, cfg)
	if err != nil {
		return c.withErr(err)
	}
	return c.With(d)
}

// WithSearch returns a composer with a search dimension built from the plain
// config.
func (c *Composer) WithSearch(cfg SearchConfig) *Composer {
	d, err := Search(c.entity, cfg)
	if err != nil {
		return c.withErr(err)
	}
	return c.With(d)
}

// Err returns the first configuration error recorded by a With call.
func (c *Composer) Err() error { return c.err }

// HasDimensions reports whether any dimension is configured.
func (c *Composer) HasDimensions() bool { return len(c.dimensions) > 0 }

// Dimension returns the configured dimension of the given kind, if any.
func (c *Composer) Dimension(kind Kind) (*Dimension, bool) {
	d, ok := c.dimensions[kind]
	return d, ok
}

// Config exports the accumulated dimension configs for reuse.
func (c *Composer) Config() Config {
	var cfg Config
	if d, ok := c.dimensions[KindPagination]; ok {
		cfg.Pagination = d.pagination
	}
	if d, ok := c.dimensions[KindSorting]; ok {
		cfg.Sorting = d.sorting
	}
	if d, ok := c.dimensions[KindFiltering]; ok {
		cfg.Filtering = d.filtering
	}
	if d, ok := c.dimensions[KindSearch]; ok {
		cfg.Search = d.search
	}
	return cfg
}

// InputSchema produces the composed query input: a single object with one
// top-level "query" key containing the union of all active dimensions'
// parameters. Cross-dimension key collisions are a composition error.
// Returns nil when no dimension is configured.
func (c *Composer) InputSchema() (*schema.Object, error) {
	if c.err != nil {
		return nil, c.err
	}
	if len(c.dimensions) == 0 {
		return nil, nil
	}

	merged := schema.NewObject()
	claimed := make(map[string]Kind)
	for _, kind := range kindOrder {
		d, ok := c.dimensions[kind]
		if !ok {
			continue
		}
		for _, name := range d.fields.Names() {
			if owner, taken := claimed[name]; taken {
				return nil, fmt.Errorf("%w: %q claimed by both %s and %s",
					ErrKeyCollision, name, owner, kind)
			}
			claimed[name] = kind
		}
		var err error
		merged, err = merged.Merge(d.fields)
		if err != nil {
			return nil, err
		}
	}

	return schema.NewObject().Add("query", schema.ObjectOf(merged).AsOptional()), nil
}

// OutputSchema produces the composed list output: {data: []entity}, plus a
// meta object when a pagination dimension is configured.
func (c *Composer) OutputSchema(entity *schema.Object) (*schema.Object, error) {
	if c.err != nil {
		return nil, c.err
	}

	out := schema.NewObject().Add("data", schema.ArrayOf(schema.ObjectOf(entity)))
	if d, ok := c.dimensions[KindPagination]; ok && d.meta != nil {
		out = out.Add("meta", schema.ObjectOf(d.meta))
	}
	return out, nil
}

func (c *Composer) copy() *Composer {
	next := &Composer{
		entity:     c.entity,
		dimensions: make(map[Kind]*Dimension, len(c.dimensions)),
		err:        c.err,
	}
	for kind, d := range c.dimensions {
		next.dimensions[kind] = d
	}
	return next
}

func (c *Composer) withErr(err error) *Composer {
	next := c.copy()
	if next.err == nil {
		next.err = err
	}
	return next
}
