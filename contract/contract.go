// Package contract defines the route contract artifact — method, path
// template, input/output shapes, and metadata — and the immutable builder
// used to assemble one. A contract is a purely structural definition: it is
// handed to a transport layer for binding and to documentation tooling for
// introspection, and never executes anything itself.
package contract

import (
	"github.com/conduit-lang/routegen/schema"
)

// Mode declares the shape of an operation's data flow. Streaming modes only
// describe the contract; the emission and cancellation protocol belongs to
// the transport that binds it.
type Mode int

const (
	// ModeUnary is a single request, single response operation.
	ModeUnary Mode = iota
	// ModeServerStream is a single request answered by an unbounded,
	// cancellable sequence of chunks.
	ModeServerStream
	// ModeClientStream is an unbounded sequence of request chunks answered
	// by a single response.
	ModeClientStream
	// ModeBidirectional is an unbounded sequence of chunks in both
	// directions.
	ModeBidirectional
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeUnary:
		return "unary"
	case ModeServerStream:
		return "server_stream"
	case ModeClientStream:
		return "client_stream"
	case ModeBidirectional:
		return "bidirectional"
	default:
		return "unknown"
	}
}

// Input is an operation's input shape, split by parameter source. Any subset
// of the sub-schemas may be nil.
type Input struct {
	Params  *schema.Object
	Query   *schema.Object
	Body    *schema.Object
	Headers *schema.Object
}

// IsZero reports whether no sub-schema is present.
func (in Input) IsZero() bool {
	return in.Params == nil && in.Query == nil && in.Body == nil && in.Headers == nil
}

// Metadata carries the descriptive metadata of a contract.
type Metadata struct {
	Summary     string
	Description string
	Tags        []string
}

// Contract is a finalized, immutable RPC operation definition. Status is the
// conventional success status a transport should answer with.
type Contract struct {
	Method   string
	Path     string
	Status   int
	Mode     Mode
	Input    Input
	Output   *schema.FieldSpec
	Metadata Metadata
}

// PathParams returns the placeholder names declared in the contract's path
// template, in left-to-right order.
func (c *Contract) PathParams() []string {
	return PathParams(c.Path)
}
