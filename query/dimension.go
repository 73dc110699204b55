package query

import "github.com/conduit-lang/routegen/schema"

// Kind identifies one of the four query dimensions.
type Kind int

const (
	KindPagination Kind = iota
	KindSorting
	KindFiltering
	KindSearch
)

// String returns the string representation of the dimension kind.
func (k Kind) String() string {
	switch k {
	case KindPagination:
		return "pagination"
	case KindSorting:
		return "sorting"
	case KindFiltering:
		return "filtering"
	case KindSearch:
		return "search"
	default:
		return "unknown"
	}
}

// kindOrder fixes the order in which dimensions contribute their fields to
// the composed query object.
var kindOrder = []Kind{KindPagination, KindSorting, KindFiltering, KindSearch}

// Dimension is a normalized query dimension descriptor. It carries both the
// input schema fragment the dimension contributes and the configuration
// payload the composer reads back out, so a prebuilt descriptor and a plain
// config lower into the same canonical form. Descriptors are immutable.
type Dimension struct {
	kind   Kind
	fields *schema.Object // contributed query parameters
	meta   *schema.Object // contributed list-output metadata (pagination only)

	pagination *PaginationConfig
	sorting    *SortingConfig
	filtering  *FilteringConfig
	search     *SearchConfig
}

// Kind returns the dimension kind.
func (d *Dimension) Kind() Kind { return d.kind }

// Fields returns the query parameters the dimension contributes.
func (d *Dimension) Fields() *schema.Object { return d.fields }

// Pagination normalizes a pagination config into a dimension descriptor.
func Pagination(cfg PaginationConfig) (*Dimension, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Dimension{
		kind:       KindPagination,
		fields:     cfg.inputFields(),
		meta:       cfg.metaFields(),
		pagination: &cfg,
	}, nil
}

// Sorting normalizes a sorting config into a dimension descriptor, resolving
// the allowed fields against the entity schema.
func Sorting(entity *schema.Object, cfg SortingConfig) (*Dimension, error) {
	allowed, err := cfg.validate(entity)
	if err != nil {
		return nil, err
	}
	return &Dimension{
		kind:    KindSorting,
		fields:  cfg.inputFields(allowed),
		sorting: &cfg,
	}, nil
}

// Filtering normalizes a filtering config into a dimension descriptor,
// resolving the configured fields against the entity schema.
func Filtering(entity *schema.Object, cfg FilteringConfig) (*Dimension, error) {
	fields, err := cfg.validate(entity)
	if err != nil {
		return nil, err
	}
	return &Dimension{
		kind:      KindFiltering,
		fields:    cfg.inputFields(entity, fields),
		filtering: &cfg,
	}, nil
}

// Search normalizes a search config into a dimension descriptor, resolving
// the searchable fields against the entity schema.
func Search(entity *schema.Object, cfg SearchConfig) (*Dimension, error) {
	fields, err := cfg.validate(entity)
	if err != nil {
		return nil, err
	}
	return &Dimension{
		kind:   KindSearch,
		fields: cfg.inputFields(fields),
		search: &cfg,
	}, nil
}
