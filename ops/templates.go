package ops

import (
	"fmt"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/schema"
)

// The factories in this package are instances of a small number of operation
// templates. Each template owns one structural convention — identifier
// addressing, bounded batch bodies, composed list queries, streaming chunk
// shapes — so the per-operation factories only supply method, path, and
// shape parameters.

// newOp seeds a builder with the shared conventions: path under the base
// path, entity tag, and a summary derived from the operation description.
func (o *Operations) newOp(method, path, summary string) *contract.Builder {
	return contract.NewBuilder(method, path).
		Tags(o.name).
		Summary(fmt.Sprintf("%s %s", summary, o.name))
}

// singleRecordOp is the template for operations addressing one record by
// identifier: the path carries the {id} placeholder and the input's params
// schema requires the identifier with its own field spec.
func (o *Operations) singleRecordOp(method, pathSuffix, summary string) *contract.Builder {
	return o.newOp(method, o.idPath(pathSuffix), summary).
		WithInput(contract.Input{Params: o.idParams()})
}

// collectionOp is the template for operations on the collection root or a
// fixed sub-path, with no identifier parameter.
func (o *Operations) collectionOp(method, pathSuffix, summary string) *contract.Builder {
	return o.newOp(method, o.path(pathSuffix), summary)
}

// batchOp is the template for bounded batch operations: the body is a single
// array field constrained to [1, MaxBatchSize] items.
func (o *Operations) batchOp(method, pathSuffix, summary, field string, item *schema.FieldSpec) *contract.Builder {
	items := schema.ArrayOf(item).Bounded(1, o.opts.MaxBatchSize)
	body := schema.NewObject().Add(field, items)
	return o.collectionOp(method, pathSuffix, summary).
		WithInput(contract.Input{Body: body})
}

// boundedItems returns an array spec of the given item shape constrained to
// [1, max].
func boundedItems(item *schema.FieldSpec, max int) *schema.FieldSpec {
	return schema.ArrayOf(item).Bounded(1, max)
}

// failureList is the shared shape of per-index failure reporting reserved in
// batch outputs. Populating it is a handler concern; the contract only
// reserves the room.
func failureList() *schema.FieldSpec {
	entry := schema.NewObject().
		Add("index", schema.Int().Min(0)).
		Add("error", schema.String())
	return schema.ArrayOf(schema.ObjectOf(entry)).AsOptional()
}

// successOutput is the shared {success, message?} acknowledgement shape.
func successOutput() *schema.Object {
	return schema.NewObject().
		Add("success", schema.Bool()).
		Add("message", schema.String().AsOptional())
}
