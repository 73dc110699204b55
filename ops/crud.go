package ops

import (
	"fmt"
	"net/http"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/query"
	"github.com/conduit-lang/routegen/schema"
)

// Read derives GET /{id} returning the full entity.
func (o *Operations) Read() *contract.Builder {
	return o.singleRecordOp(http.MethodGet, "", "Get").
		WithOutput(o.entitySpec())
}

// Create derives POST / with the caller-writable body (entity minus the
// default omission set) and the full entity as output.
func (o *Operations) Create() *contract.Builder {
	return o.collectionOp(http.MethodPost, "/", "Create").
		Status(http.StatusCreated).
		WithInput(contract.Input{Body: o.writableBody()}).
		WithOutput(o.entitySpec())
}

// Update derives PUT /{id} with the caller-writable body and the full entity
// as output. Callers needing a custom omission set refine the body through
// the builder's Input transform.
func (o *Operations) Update() *contract.Builder {
	return o.singleRecordOp(http.MethodPut, "", "Update").
		Input(func(in *contract.InputBuilder) *contract.InputBuilder {
			return in.Body(o.writableBody())
		}).
		WithOutput(o.entitySpec())
}

// Patch derives PATCH /{id} whose body is the caller-writable shape with
// every field optional, so an empty object is a valid patch.
func (o *Operations) Patch() *contract.Builder {
	return o.singleRecordOp(http.MethodPatch, "", "Partially update").
		Input(func(in *contract.InputBuilder) *contract.InputBuilder {
			return in.Body(o.writableBody().Partial())
		}).
		WithOutput(o.entitySpec())
}

// Delete derives DELETE /{id} with a {success, message?} acknowledgement.
func (o *Operations) Delete() *contract.Builder {
	return o.singleRecordOp(http.MethodDelete, "", "Delete").
		WithOutput(schema.ObjectOf(successOutput()))
}

// List derives GET /. Called bare, the output is exactly {data: []entity}
// with no query input. Called with a config, the input gains the composed
// {query?} object and the output whatever metadata the active dimensions
// contribute.
func (o *Operations) List(cfg ...query.Config) *contract.Builder {
	builder := o.collectionOp(http.MethodGet, "/", "List")

	composer := query.NewComposer(o.entity)
	if len(cfg) > 0 {
		composer = query.FromConfig(o.entity, cfg[0])
	}
	return o.applyListQuery(builder, composer)
}

// Count derives GET /count with an optional filter query and a {count}
// output.
func (o *Operations) Count(cfg ...query.FilteringConfig) *contract.Builder {
	builder := o.collectionOp(http.MethodGet, "/count", "Count")

	if len(cfg) > 0 {
		composer := query.NewComposer(o.entity).WithFiltering(cfg[0])
		input, err := composer.InputSchema()
		if err != nil {
			return builder.Fail(err)
		}
		builder = builder.WithInput(contract.Input{Query: input})
	}

	output := schema.NewObject().Add("count", schema.Int().Min(0))
	return builder.WithOutput(schema.ObjectOf(output))
}

// Search derives GET /search with a composed search-plus-pagination query
// and a {data, meta} output.
func (o *Operations) Search(cfg query.SearchConfig) *contract.Builder {
	builder := o.collectionOp(http.MethodGet, "/search", "Search")
	composer := query.NewComposer(o.entity).
		WithSearch(cfg).
		WithPagination(query.PaginationConfig{IncludeOffset: true})
	return o.applyListQuery(builder, composer)
}

// Check derives GET /check/<field>: the query requires exactly the named
// field with its original constraints, the output is exactly {exists}.
// Unknown fields are a configuration error.
func (o *Operations) Check(field string) *contract.Builder {
	builder := o.collectionOp(http.MethodGet, "/check/"+field, "Check "+field+" for")

	spec, ok := o.entity.Get(field)
	if !ok {
		return builder.Fail(fmt.Errorf("check: %w: %s", schema.ErrUnknownField, field))
	}

	input := schema.NewObject().Add(field, spec.AsRequired())
	output := schema.NewObject().Add("exists", schema.Bool())
	return builder.
		WithInput(contract.Input{Query: input}).
		WithOutput(schema.ObjectOf(output))
}

// Exists derives GET /{id}/exists with an {exists} output.
func (o *Operations) Exists() *contract.Builder {
	output := schema.NewObject().Add("exists", schema.Bool())
	return o.singleRecordOp(http.MethodGet, "/exists", "Check existence of").
		WithOutput(schema.ObjectOf(output))
}

// Upsert derives PUT /upsert taking the full entity and reporting whether
// the record was created.
func (o *Operations) Upsert() *contract.Builder {
	output := schema.NewObject().
		Add("item", o.entitySpec()).
		Add("created", schema.Bool())
	return o.collectionOp(http.MethodPut, "/upsert", "Create or update").
		WithInput(contract.Input{Body: o.entity}).
		WithOutput(schema.ObjectOf(output))
}

// Validate derives POST /validate: the caller-writable body checked for
// structural validity only, answered with {valid, errors?}.
func (o *Operations) Validate() *contract.Builder {
	errEntry := schema.NewObject().
		Add("field", schema.String()).
		Add("message", schema.String())
	output := schema.NewObject().
		Add("valid", schema.Bool()).
		Add("errors", schema.ArrayOf(schema.ObjectOf(errEntry)).AsOptional())
	return o.collectionOp(http.MethodPost, "/validate", "Validate").
		WithInput(contract.Input{Body: o.writableBody()}).
		WithOutput(schema.ObjectOf(output))
}

// applyListQuery wires a composer's input and output schemas into a builder.
func (o *Operations) applyListQuery(builder *contract.Builder, composer *query.Composer) *contract.Builder {
	input, err := composer.InputSchema()
	if err != nil {
		return builder.Fail(err)
	}
	output, err := composer.OutputSchema(o.entity)
	if err != nil {
		return builder.Fail(err)
	}

	if input != nil {
		builder = builder.WithInput(contract.Input{Query: input})
	}
	return builder.WithOutput(schema.ObjectOf(output))
}
