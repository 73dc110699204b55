package contract

import (
	"fmt"

	"github.com/conduit-lang/routegen/schema"
)

// InputBuilder is the sub-builder handed to Builder.Input transforms. Like
// the route builder it is immutable; every method returns a new value.
type InputBuilder struct {
	input Input
	err   error
}

// Params returns an input builder with the path-params schema replaced.
func (ib *InputBuilder) Params(params *schema.Object) *InputBuilder {
	c := ib.clone()
	c.input.Params = params
	return c
}

// Query returns an input builder with the query schema replaced.
func (ib *InputBuilder) Query(query *schema.Object) *InputBuilder {
	c := ib.clone()
	c.input.Query = query
	return c
}

// Body returns an input builder with the body schema replaced.
func (ib *InputBuilder) Body(body *schema.Object) *InputBuilder {
	c := ib.clone()
	c.input.Body = body
	return c
}

// Headers returns an input builder with the headers schema replaced.
func (ib *InputBuilder) Headers(headers *schema.Object) *InputBuilder {
	c := ib.clone()
	c.input.Headers = headers
	return c
}

// OmitFromBody returns an input builder whose body omits the named fields.
func (ib *InputBuilder) OmitFromBody(names ...string) *InputBuilder {
	c := ib.clone()
	if c.input.Body == nil {
		return c.fail(fmt.Errorf("omit from body: no body schema present"))
	}
	body, err := c.input.Body.Omit(names...)
	if err != nil {
		return c.fail(err)
	}
	c.input.Body = body
	return c
}

// PickBody returns an input builder whose body keeps only the named fields.
func (ib *InputBuilder) PickBody(names ...string) *InputBuilder {
	c := ib.clone()
	if c.input.Body == nil {
		return c.fail(fmt.Errorf("pick body: no body schema present"))
	}
	body, err := c.input.Body.Pick(names...)
	if err != nil {
		return c.fail(err)
	}
	c.input.Body = body
	return c
}

// PartialBody returns an input builder whose body fields are all optional.
func (ib *InputBuilder) PartialBody() *InputBuilder {
	c := ib.clone()
	if c.input.Body == nil {
		return c.fail(fmt.Errorf("partial body: no body schema present"))
	}
	c.input.Body = c.input.Body.Partial()
	return c
}

// AddHeader returns an input builder with one header field appended.
func (ib *InputBuilder) AddHeader(name string, spec *schema.FieldSpec) *InputBuilder {
	c := ib.clone()
	if c.input.Headers == nil {
		c.input.Headers = schema.NewObject()
	}
	c.input.Headers = c.input.Headers.Add(name, spec)
	return c
}

func (ib *InputBuilder) clone() *InputBuilder {
	c := *ib
	return &c
}

func (ib *InputBuilder) fail(err error) *InputBuilder {
	if ib.err == nil {
		ib.err = err
	}
	return ib
}
