// Package ops is the standard-operations façade: given an entity schema, an
// entity name, and a few conventions (identifier field, timestamp pair,
// soft-delete marker), it derives the full family of operation contracts —
// CRUD, list, batch, soft-delete, and streaming variants — without any
// input/output shape being hand-written. Every factory returns a
// contract.Builder so callers can refine the derived contract before
// finalizing it.
package ops

import (
	"fmt"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/schema"
)

// Conventional audit field names.
const (
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
	FieldDeletedAt = "deletedAt"
)

// DefaultMaxBatchSize bounds batch operation arrays when Options leaves
// MaxBatchSize unset.
const DefaultMaxBatchSize = 100

// Options configures entity introspection and operation conventions.
type Options struct {
	// IDField is the identifier field name. Defaults to "id".
	IDField string

	// HasTimestamps declares that the entity carries the createdAt/updatedAt
	// pair; both fields must exist on the schema.
	HasTimestamps bool

	// HasSoftDelete declares that the entity carries a deletedAt marker; the
	// field must exist on the schema. Soft-delete operations (SoftDelete,
	// Archive, Restore) require it.
	HasSoftDelete bool

	// MaxBatchSize bounds batch operation arrays. Zero means
	// DefaultMaxBatchSize; negative values are a configuration error.
	MaxBatchSize int

	// ExtraOmit names additional fields excluded from caller-writable
	// bodies, on top of the default omission set.
	ExtraOmit []string

	// BasePath prefixes every derived path. Empty means operations are
	// rooted at "/".
	BasePath string
}

// Operations derives operation contracts for one entity. Instances are
// immutable after construction and safe for concurrent use; each factory
// call produces a fresh builder.
type Operations struct {
	entity *schema.Object
	name   string
	opts   Options

	idSpec  *schema.FieldSpec
	omitted []string // default omission set, in deterministic order
}

// New constructs an Operations façade. Introspection happens once here: the
// identifier spec is resolved (falling back to a generic string when the
// schema has no identifier field) and the default omission set is computed
// from the options. Misconfigurations — unknown omission fields, declared
// timestamps or soft-delete markers missing from the schema, a non-positive
// batch bound — are construction errors.
func New(entity *schema.Object, name string, opts Options) (*Operations, error) {
	if entity == nil || entity.Len() == 0 {
		return nil, fmt.Errorf("ops: entity schema must not be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("ops: entity name must not be empty")
	}

	if opts.IDField == "" {
		opts.IDField = "id"
	}
	if opts.MaxBatchSize == 0 {
		opts.MaxBatchSize = DefaultMaxBatchSize
	}
	if opts.MaxBatchSize < 1 {
		return nil, fmt.Errorf("ops: max batch size must be at least 1, got %d", opts.MaxBatchSize)
	}
	if opts.BasePath != "" {
		if err := contract.ValidatePath(opts.BasePath); err != nil {
			return nil, fmt.Errorf("ops: base path: %w", err)
		}
	}

	idSpec, ok := entity.Get(opts.IDField)
	if !ok {
		// No identifier on the shape: treat it as an opaque string-like key.
		idSpec = schema.String()
	}

	omitted := make([]string, 0, 4+len(opts.ExtraOmit))
	if entity.Has(opts.IDField) {
		omitted = append(omitted, opts.IDField)
	}
	if opts.HasTimestamps {
		for _, field := range []string{FieldCreatedAt, FieldUpdatedAt} {
			if !entity.Has(field) {
				return nil, fmt.Errorf("ops: timestamps declared but entity has no %s field", field)
			}
			omitted = append(omitted, field)
		}
	}
	if opts.HasSoftDelete {
		if !entity.Has(FieldDeletedAt) {
			return nil, fmt.Errorf("ops: soft delete declared but entity has no %s field", FieldDeletedAt)
		}
		omitted = append(omitted, FieldDeletedAt)
	}
	for _, field := range opts.ExtraOmit {
		if !entity.Has(field) && !entity.IsLoose() {
			return nil, fmt.Errorf("ops: %w: %s", schema.ErrUnknownField, field)
		}
		if entity.Has(field) {
			omitted = append(omitted, field)
		}
	}

	return &Operations{
		entity:  entity,
		name:    name,
		opts:    opts,
		idSpec:  idSpec.AsRequired(),
		omitted: omitted,
	}, nil
}

// Entity returns the entity schema the façade derives from.
func (o *Operations) Entity() *schema.Object { return o.entity }

// Name returns the entity name.
func (o *Operations) Name() string { return o.name }

// DefaultOmissions returns the default omission set: the fields excluded
// from every caller-writable body.
func (o *Operations) DefaultOmissions() []string {
	omitted := make([]string, len(o.omitted))
	copy(omitted, o.omitted)
	return omitted
}

// MaxBatchSize returns the configured batch bound.
func (o *Operations) MaxBatchSize() int { return o.opts.MaxBatchSize }

// entitySpec returns the full entity as an object field spec.
func (o *Operations) entitySpec() *schema.FieldSpec {
	return schema.ObjectOf(o.entity)
}

// writableBody returns the entity schema minus the default omission set.
// Omission fields are verified present at construction, so the transform
// cannot fail.
func (o *Operations) writableBody() *schema.Object {
	body, err := o.entity.Omit(o.omitted...)
	if err != nil {
		// Unreachable: the omission set is validated in New.
		panic(err)
	}
	return body
}

// idParams returns the path-params schema carrying the identifier.
func (o *Operations) idParams() *schema.Object {
	return schema.NewObject().Add(o.opts.IDField, o.idSpec)
}

// path joins the base path with an operation suffix.
func (o *Operations) path(suffix string) string {
	base := o.opts.BasePath
	if base == "" {
		base = "/"
	}
	return contract.JoinPath(base, suffix)
}

// idPath returns the path template addressing a single record, with an
// optional extra suffix ("/exists", "/archive", ...).
func (o *Operations) idPath(suffix string) string {
	return o.path("/{" + o.opts.IDField + "}" + suffix)
}
