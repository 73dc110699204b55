package ops

import (
	"fmt"
	"net/http"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/schema"
)

// SoftDelete derives DELETE /{id}/soft marking the record deleted without
// removing it. Requires the soft-delete convention.
func (o *Operations) SoftDelete() *contract.Builder {
	builder := o.singleRecordOp(http.MethodDelete, "/soft", "Soft delete")
	if !o.opts.HasSoftDelete {
		return builder.Fail(fmt.Errorf("soft delete requires HasSoftDelete"))
	}

	output := schema.NewObject().
		Add("success", schema.Bool()).
		Add("deletedAt", schema.Timestamp())
	return builder.WithOutput(schema.ObjectOf(output))
}

// Archive derives POST /{id}/archive. Requires the soft-delete convention.
func (o *Operations) Archive() *contract.Builder {
	builder := o.singleRecordOp(http.MethodPost, "/archive", "Archive")
	if !o.opts.HasSoftDelete {
		return builder.Fail(fmt.Errorf("archive requires HasSoftDelete"))
	}

	output := schema.NewObject().
		Add("success", schema.Bool()).
		Add("archivedAt", schema.Timestamp())
	return builder.WithOutput(schema.ObjectOf(output))
}

// Restore derives POST /{id}/restore, returning the restored entity.
// Requires the soft-delete convention.
func (o *Operations) Restore() *contract.Builder {
	builder := o.singleRecordOp(http.MethodPost, "/restore", "Restore")
	if !o.opts.HasSoftDelete {
		return builder.Fail(fmt.Errorf("restore requires HasSoftDelete"))
	}
	return builder.WithOutput(o.entitySpec())
}

// Clone derives POST /{id}/clone with optional field overrides in the body.
func (o *Operations) Clone() *contract.Builder {
	body := schema.NewObject().
		Add("overrides", schema.ObjectOf(o.writableBody().Partial()).AsOptional())
	return o.singleRecordOp(http.MethodPost, "/clone", "Clone").
		Status(http.StatusCreated).
		Input(func(in *contract.InputBuilder) *contract.InputBuilder {
			return in.Body(body)
		}).
		WithOutput(o.entitySpec())
}

// History derives GET /{id}/history: a cursor-paged sequence of change
// records.
func (o *Operations) History() *contract.Builder {
	queryFields := schema.NewObject().
		Add("limit", schema.Int().Min(1).AsOptional()).
		Add("cursor", schema.String().AsOptional())

	change := schema.NewObject().
		Add("version", schema.Int().Min(1)).
		Add("changedAt", schema.Timestamp()).
		Add("changes", schema.JSON())
	output := schema.NewObject().
		Add("items", schema.ArrayOf(schema.ObjectOf(change))).
		Add("hasMore", schema.Bool()).
		Add("nextCursor", schema.String().AsOptional())

	return o.singleRecordOp(http.MethodGet, "/history", "Change history of").
		Input(func(in *contract.InputBuilder) *contract.InputBuilder {
			return in.Query(queryFields)
		}).
		WithOutput(schema.ObjectOf(output))
}

// Distinct derives GET /distinct/<field>, listing the distinct values of one
// entity field. Unknown fields are a configuration error.
func (o *Operations) Distinct(field string) *contract.Builder {
	builder := o.collectionOp(http.MethodGet, "/distinct/"+field, "Distinct "+field+" values of")

	if !o.entity.Has(field) {
		return builder.Fail(fmt.Errorf("distinct: %w: %s", schema.ErrUnknownField, field))
	}

	input := schema.NewObject().Add("limit", schema.Int().Min(1).AsOptional())
	output := schema.NewObject().
		Add("values", schema.ArrayOf(schema.Any())).
		Add("total", schema.Int().Min(0))
	return builder.
		WithInput(contract.Input{Query: input}).
		WithOutput(schema.ObjectOf(output))
}

// Aggregate derives GET /aggregate: one aggregate function applied to one
// entity field.
func (o *Operations) Aggregate() *contract.Builder {
	input := schema.NewObject().
		Add("field", schema.Enum(o.entity.Names()...)).
		Add("fn", schema.Enum("count", "sum", "avg", "min", "max"))
	output := schema.NewObject().
		Add("value", schema.Float()).
		Add("count", schema.Int().Min(0))
	return o.collectionOp(http.MethodGet, "/aggregate", "Aggregate").
		WithInput(contract.Input{Query: input}).
		WithOutput(schema.ObjectOf(output))
}

// HealthCheck derives GET /health for the entity's backing service.
func (o *Operations) HealthCheck() *contract.Builder {
	output := schema.NewObject().
		Add("status", schema.Enum("ok", "degraded", "down")).
		Add("timestamp", schema.Timestamp())
	return o.collectionOp(http.MethodGet, "/health", "Health of").
		WithOutput(schema.ObjectOf(output))
}

// Metrics derives GET /metrics with collection-level counters.
func (o *Operations) Metrics() *contract.Builder {
	output := schema.NewObject().
		Add("total", schema.Int().Min(0)).
		Add("deleted", schema.Int().Min(0).AsOptional()).
		Add("updatedAt", schema.Timestamp().AsOptional())
	return o.collectionOp(http.MethodGet, "/metrics", "Metrics of").
		WithOutput(schema.ObjectOf(output))
}
