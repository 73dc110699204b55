package ops

import (
	"net/http"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/schema"
)

// Batch operations share one bound: input arrays are constrained to
// [1, MaxBatchSize] inclusive. A bound violation is a structural validation
// failure of the whole batch; the failed/errors arrays in the outputs only
// reserve room for per-item reporting, which is a handler concern.

// BatchCreate derives POST /batch taking bounded caller-writable items and
// reporting created entities plus reserved per-index failures.
func (o *Operations) BatchCreate() *contract.Builder {
	item := schema.ObjectOf(o.writableBody())
	output := schema.NewObject().
		Add("created", schema.ArrayOf(o.entitySpec())).
		Add("failed", failureList())
	return o.batchOp(http.MethodPost, "/batch", "Batch create", "items", item).
		Status(http.StatusCreated).
		WithOutput(schema.ObjectOf(output))
}

// BatchDelete derives DELETE /batch taking bounded identifiers.
func (o *Operations) BatchDelete() *contract.Builder {
	output := schema.NewObject().
		Add("deleted", schema.Int().Min(0)).
		Add("failed", schema.ArrayOf(schema.String()).AsOptional())
	return o.batchOp(http.MethodDelete, "/batch", "Batch delete", "ids", o.idSpec).
		WithOutput(schema.ObjectOf(output))
}

// BatchRead derives POST /batch/read taking bounded identifiers and
// returning the found entities plus the identifiers that resolved to
// nothing.
func (o *Operations) BatchRead() *contract.Builder {
	output := schema.NewObject().
		Add("items", schema.ArrayOf(o.entitySpec())).
		Add("notFound", schema.ArrayOf(schema.String()).AsOptional())
	return o.batchOp(http.MethodPost, "/batch/read", "Batch read", "ids", o.idSpec).
		WithOutput(schema.ObjectOf(output))
}

// BatchUpdate derives PATCH /batch taking bounded full entities.
func (o *Operations) BatchUpdate() *contract.Builder {
	output := schema.NewObject().
		Add("items", schema.ArrayOf(o.entitySpec())).
		Add("errors", failureList())
	return o.batchOp(http.MethodPatch, "/batch", "Batch update", "items", o.entitySpec()).
		WithOutput(schema.ObjectOf(output))
}

// BatchUpsert derives PUT /batch/upsert taking bounded full entities and
// reporting which were created versus updated.
func (o *Operations) BatchUpsert() *contract.Builder {
	output := schema.NewObject().
		Add("created", schema.ArrayOf(o.entitySpec())).
		Add("updated", schema.ArrayOf(o.entitySpec())).
		Add("errors", failureList())
	return o.batchOp(http.MethodPut, "/batch/upsert", "Batch upsert", "items", o.entitySpec()).
		WithOutput(schema.ObjectOf(output))
}

// Import derives POST /import: like BatchCreate but sized for bulk loads —
// the bound is ten times the batch bound.
func (o *Operations) Import() *contract.Builder {
	item := schema.ObjectOf(o.writableBody())
	body := schema.NewObject().
		Add("items", boundedItems(item, o.opts.MaxBatchSize*10))
	output := schema.NewObject().
		Add("imported", schema.Int().Min(0)).
		Add("failed", failureList())
	return o.collectionOp(http.MethodPost, "/import", "Import").
		WithInput(contract.Input{Body: body}).
		WithOutput(schema.ObjectOf(output))
}
