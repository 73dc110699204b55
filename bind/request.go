package bind

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/schema"
)

// Request carries a contract's decoded, validated input.
type Request struct {
	Params map[string]interface{}
	Query  map[string]interface{}
	Body   map[string]interface{}
	Raw    *http.Request
}

// Context returns the request context. Streaming handlers watch it for
// caller cancellation.
func (r *Request) Context() context.Context {
	return r.Raw.Context()
}

// newRequest decodes path params, query params, and the JSON body according
// to the contract's input schemas and validates each part.
func newRequest(c *contract.Contract, r *http.Request) (*Request, error) {
	req := &Request{Raw: r}

	if c.Input.Params != nil {
		params := make(map[string]interface{})
		for _, name := range c.Input.Params.Names() {
			spec, _ := c.Input.Params.Get(name)
			raw := chi.URLParam(r, name)
			if raw == "" {
				continue
			}
			params[name] = coerce(raw, spec)
		}
		if err := c.Input.Params.Validate(params); err != nil {
			return nil, err
		}
		req.Params = params
	}

	if c.Input.Query != nil {
		query, err := decodeQuery(c.Input.Query, r)
		if err != nil {
			return nil, err
		}
		req.Query = query
	}

	if c.Input.Body != nil && c.Mode != contract.ModeClientStream {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		if err := c.Input.Body.Validate(body); err != nil {
			return nil, err
		}
		req.Body = body
	}

	return req, nil
}

// decodeQuery decodes URL query parameters against the query schema. List
// contracts wrap their parameters in a single "query" object; the flat URL
// parameters are validated against the inner object and re-nested.
func decodeQuery(spec *schema.Object, r *http.Request) (map[string]interface{}, error) {
	inner := spec
	wrapped := false
	if spec.Len() == 1 && spec.Has("query") {
		if querySpec, _ := spec.Get("query"); querySpec.IsObject() {
			inner = querySpec.Fields
			wrapped = true
		}
	}

	values := make(map[string]interface{})
	for _, name := range inner.Names() {
		fieldSpec, _ := inner.Get(name)
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		if fieldSpec.IsArray() {
			parts := strings.Split(raw, ",")
			items := make([]interface{}, 0, len(parts))
			for _, part := range parts {
				items = append(items, coerce(strings.TrimSpace(part), fieldSpec.Elem))
			}
			values[name] = items
			continue
		}
		values[name] = coerce(raw, fieldSpec)
	}

	if err := inner.Validate(values); err != nil {
		return nil, err
	}

	if wrapped {
		return map[string]interface{}{"query": values}, nil
	}
	return values, nil
}

// coerce converts a raw string parameter into the representation the field
// spec validates. Unparseable values pass through as strings so validation
// reports the type mismatch.
func coerce(raw string, spec *schema.FieldSpec) interface{} {
	switch spec.Type {
	case schema.TypeInt, schema.TypeFloat:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	case schema.TypeBool:
		if b, err := strconv.ParseBool(raw); err == nil {
			return b
		}
	}
	return raw
}
