package ops

import (
	"net/http"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/query"
	"github.com/conduit-lang/routegen/schema"
)

// Streaming factories mirror their unary siblings: same input shape, same
// chunk shape, but the contract declares its output an unbounded sequence.
// The engine never executes a stream; cancellation and flushing belong to
// the transport that binds the contract.

// StreamingRead derives GET /{id}/streaming: the read input, answered with a
// server stream of entity chunks.
func (o *Operations) StreamingRead() *contract.Builder {
	return o.singleRecordOp(http.MethodGet, "/streaming", "Stream").
		Mode(contract.ModeServerStream).
		WithOutput(o.entitySpec())
}

// StreamingList derives GET /streaming: the list input, answered with a
// server stream of entity chunks.
func (o *Operations) StreamingList(cfg ...query.Config) *contract.Builder {
	builder := o.collectionOp(http.MethodGet, "/streaming", "Stream all").
		Mode(contract.ModeServerStream)

	if len(cfg) > 0 {
		composer := query.FromConfig(o.entity, cfg[0])
		input, err := composer.InputSchema()
		if err != nil {
			return builder.Fail(err)
		}
		if input != nil {
			builder = builder.WithInput(contract.Input{Query: input})
		}
	}
	return builder.WithOutput(o.entitySpec())
}

// StreamingSearch derives GET /search/streaming: the search input, answered
// with a server stream of entity chunks.
func (o *Operations) StreamingSearch(cfg query.SearchConfig) *contract.Builder {
	builder := o.collectionOp(http.MethodGet, "/search/streaming", "Stream search of").
		Mode(contract.ModeServerStream)

	composer := query.NewComposer(o.entity).
		WithSearch(cfg).
		WithPagination(query.PaginationConfig{IncludeOffset: true})
	input, err := composer.InputSchema()
	if err != nil {
		return builder.Fail(err)
	}
	return builder.
		WithInput(contract.Input{Query: input}).
		WithOutput(o.entitySpec())
}

// Export derives GET /export: an optionally bounded server stream of entity
// chunks in the requested encoding.
func (o *Operations) Export() *contract.Builder {
	input := schema.NewObject().
		Add("format", schema.Enum("json", "csv", "ndjson").AsOptional()).
		Add("limit", schema.Int().Min(1).AsOptional())
	return o.collectionOp(http.MethodGet, "/export", "Export").
		Mode(contract.ModeServerStream).
		WithInput(contract.Input{Query: input}).
		WithOutput(o.entitySpec())
}

// StreamedInput derives POST /stream: a client stream of caller-writable
// chunks acknowledged with a received count.
func (o *Operations) StreamedInput() *contract.Builder {
	output := schema.NewObject().Add("received", schema.Int().Min(0))
	return o.collectionOp(http.MethodPost, "/stream", "Stream into").
		Mode(contract.ModeClientStream).
		WithInput(contract.Input{Body: o.writableBody()}).
		WithOutput(schema.ObjectOf(output))
}

// Websocket derives GET /ws: a bidirectional envelope exchange. Both
// directions carry {type, payload} envelopes; the payload is free-form and
// interpreted by the handler bound to the contract.
func (o *Operations) Websocket() *contract.Builder {
	envelope := schema.NewObject().
		Add("type", schema.Enum("create", "update", "delete", "read", "event")).
		Add("payload", schema.JSON().AsOptional())
	return o.collectionOp(http.MethodGet, "/ws", "Open a websocket for").
		Mode(contract.ModeBidirectional).
		WithInput(contract.Input{Body: envelope}).
		WithOutput(schema.ObjectOf(envelope))
}
