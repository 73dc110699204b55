package contract

import (
	"fmt"
	"net/http"

	"github.com/conduit-lang/routegen/schema"
)

// validMethods is the set of methods a contract may declare.
var validMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Builder assembles a Contract. Builders are immutable values: every mutator
// returns a new builder, so a partially configured builder can be branched
// into divergent contracts. Configuration errors accumulate and surface from
// Build; the first error wins.
type Builder struct {
	method string
	path   string
	status int
	mode   Mode
	input  Input
	output *schema.FieldSpec
	meta   Metadata
	err    error
}

// NewBuilder creates a builder for the given method and path template.
func NewBuilder(method, path string) *Builder {
	return &Builder{method: method, path: path}
}

// Method returns a builder with the method replaced.
func (b *Builder) Method(method string) *Builder {
	c := b.clone()
	c.method = method
	return c
}

// Path returns a builder with the path template replaced.
func (b *Builder) Path(path string) *Builder {
	c := b.clone()
	c.path = path
	return c
}

// Status returns a builder with the success status replaced.
func (b *Builder) Status(status int) *Builder {
	c := b.clone()
	c.status = status
	return c
}

// Mode returns a builder with the data-flow mode replaced.
func (b *Builder) Mode(mode Mode) *Builder {
	c := b.clone()
	c.mode = mode
	return c
}

// Summary returns a builder with the summary set.
func (b *Builder) Summary(summary string) *Builder {
	c := b.clone()
	c.meta.Summary = summary
	return c
}

// Description returns a builder with the description set.
func (b *Builder) Description(description string) *Builder {
	c := b.clone()
	c.meta.Description = description
	return c
}

// Tags returns a builder with the tags replaced.
func (b *Builder) Tags(tags ...string) *Builder {
	c := b.clone()
	c.meta.Tags = make([]string, len(tags))
	copy(c.meta.Tags, tags)
	return c
}

// WithInput returns a builder with the whole input shape replaced.
func (b *Builder) WithInput(input Input) *Builder {
	c := b.clone()
	c.input = input
	return c
}

// WithOutput returns a builder with the output shape replaced.
func (b *Builder) WithOutput(output *schema.FieldSpec) *Builder {
	c := b.clone()
	c.output = output
	return c
}

// Input returns a builder with the transform applied to the input shape.
// The callback receives an input sub-builder seeded with the current shape;
// errors recorded by the sub-builder surface from Build.
func (b *Builder) Input(fn func(in *InputBuilder) *InputBuilder) *Builder {
	c := b.clone()
	result := fn(&InputBuilder{input: c.input})
	if result.err != nil && c.err == nil {
		c.err = result.err
	}
	c.input = result.input
	return c
}

// Output returns a builder with the transform applied to the output shape.
func (b *Builder) Output(fn func(out *schema.FieldSpec) *schema.FieldSpec) *Builder {
	c := b.clone()
	c.output = fn(c.output)
	return c
}

// Fail returns a builder carrying the given configuration error. Used by
// operation factories to defer errors to Build.
func (b *Builder) Fail(err error) *Builder {
	c := b.clone()
	if c.err == nil {
		c.err = err
	}
	return c
}

// Err returns the first configuration error recorded so far.
func (b *Builder) Err() error { return b.err }

// Build finalizes the contract. The builder itself is unchanged and can be
// reused.
func (b *Builder) Build() (*Contract, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !validMethods[b.method] {
		return nil, fmt.Errorf("invalid method %q", b.method)
	}
	if err := ValidatePath(b.path); err != nil {
		return nil, err
	}

	status := b.status
	if status == 0 {
		status = http.StatusOK
	}

	tags := make([]string, len(b.meta.Tags))
	copy(tags, b.meta.Tags)

	return &Contract{
		Method: b.method,
		Path:   b.path,
		Status: status,
		Mode:   b.mode,
		Input:  b.input,
		Output: b.output,
		Metadata: Metadata{
			Summary:     b.meta.Summary,
			Description: b.meta.Description,
			Tags:        tags,
		},
	}, nil
}

// MustBuild finalizes the contract and panics on configuration errors. For
// static route tables assembled at program start.
func (b *Builder) MustBuild() *Contract {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

func (b *Builder) clone() *Builder {
	c := *b
	return &c
}
