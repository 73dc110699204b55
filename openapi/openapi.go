// Package openapi renders route contracts as an OpenAPI 3 document, for API
// documentation and client generation. The mapping is structural: path
// templates map 1:1 to path items, the input sub-schemas to parameters and
// request bodies, and streaming contracts to ndjson responses.
package openapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/schema"
)

// Info describes the generated API.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Document is an OpenAPI 3 document.
type Document struct {
	OpenAPI string                           `json:"openapi" yaml:"openapi"`
	Info    Info                             `json:"info" yaml:"info"`
	Paths   map[string]map[string]*Operation `json:"paths" yaml:"paths"`
}

// Operation is one method entry under a path item.
type Operation struct {
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string             `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses" yaml:"responses"`
}

// Parameter is a path, query, or header parameter.
type Parameter struct {
	Name     string                 `json:"name" yaml:"name"`
	In       string                 `json:"in" yaml:"in"`
	Required bool                   `json:"required,omitempty" yaml:"required,omitempty"`
	Schema   map[string]interface{} `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody is a JSON request body.
type RequestBody struct {
	Required bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content  map[string]MediaType `json:"content" yaml:"content"`
}

// Response is a response entry.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType carries a media type's schema.
type MediaType struct {
	Schema map[string]interface{} `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Generate builds an OpenAPI document from the given contracts.
func Generate(info Info, contracts ...*contract.Contract) (*Document, error) {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    info,
		Paths:   make(map[string]map[string]*Operation),
	}

	for _, c := range contracts {
		op, err := buildOperation(c)
		if err != nil {
			return nil, fmt.Errorf("openapi: %s %s: %w", c.Method, c.Path, err)
		}

		item, ok := doc.Paths[c.Path]
		if !ok {
			item = make(map[string]*Operation)
			doc.Paths[c.Path] = item
		}
		method := strings.ToLower(c.Method)
		if _, exists := item[method]; exists {
			return nil, fmt.Errorf("openapi: duplicate operation %s %s", c.Method, c.Path)
		}
		item[method] = op
	}

	return doc, nil
}

// JSON renders the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

func buildOperation(c *contract.Contract) (*Operation, error) {
	op := &Operation{
		Summary:     c.Metadata.Summary,
		Description: c.Metadata.Description,
		Tags:        c.Metadata.Tags,
		Responses:   make(map[string]*Response),
	}

	op.Parameters = append(op.Parameters, objectParams(c.Input.Params, "path")...)
	op.Parameters = append(op.Parameters, queryParams(c.Input.Query)...)
	op.Parameters = append(op.Parameters, objectParams(c.Input.Headers, "header")...)

	if c.Input.Body != nil && c.Mode != contract.ModeBidirectional {
		contentType := "application/json"
		if c.Mode == contract.ModeClientStream {
			contentType = "application/x-ndjson"
		}
		op.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				contentType: {Schema: objectSchema(c.Input.Body)},
			},
		}
	}

	response := &Response{Description: "Success"}
	if c.Output != nil {
		contentType := "application/json"
		if c.Mode == contract.ModeServerStream {
			contentType = "application/x-ndjson"
		}
		response.Content = map[string]MediaType{
			contentType: {Schema: fieldSchema(c.Output)},
		}
	}
	op.Responses[strconv.Itoa(c.Status)] = response

	return op, nil
}

// objectParams flattens an object schema into parameters of one source.
func objectParams(obj *schema.Object, in string) []*Parameter {
	if obj == nil {
		return nil
	}
	params := make([]*Parameter, 0, obj.Len())
	for _, name := range obj.Names() {
		spec, _ := obj.Get(name)
		params = append(params, &Parameter{
			Name:     name,
			In:       in,
			Required: !spec.Optional,
			Schema:   fieldSchema(spec),
		})
	}
	return params
}

// queryParams flattens a query schema. A composed list query wraps its
// parameters in one "query" object; the wrapper is unwrapped so every
// parameter documents as an ordinary query parameter.
func queryParams(obj *schema.Object) []*Parameter {
	if obj == nil {
		return nil
	}
	if obj.Len() == 1 && obj.Has("query") {
		if spec, _ := obj.Get("query"); spec.IsObject() {
			return objectParams(spec.Fields, "query")
		}
	}
	return objectParams(obj, "query")
}

// fieldSchema converts a field spec into an OpenAPI schema fragment.
func fieldSchema(spec *schema.FieldSpec) map[string]interface{} {
	out := make(map[string]interface{})

	switch {
	case spec.IsArray():
		out["type"] = "array"
		out["items"] = fieldSchema(spec.Elem)
		if spec.MinItems != nil {
			out["minItems"] = *spec.MinItems
		}
		if spec.MaxItems != nil {
			out["maxItems"] = *spec.MaxItems
		}
		return out

	case spec.IsObject():
		return objectSchema(spec.Fields)
	}

	switch spec.Type {
	case schema.TypeString, schema.TypeText:
		out["type"] = "string"
	case schema.TypeInt:
		out["type"] = "integer"
	case schema.TypeFloat:
		out["type"] = "number"
	case schema.TypeBool:
		out["type"] = "boolean"
	case schema.TypeTimestamp:
		out["type"] = "string"
		out["format"] = "date-time"
	case schema.TypeDate:
		out["type"] = "string"
		out["format"] = "date"
	case schema.TypeUUID:
		out["type"] = "string"
		out["format"] = "uuid"
	case schema.TypeEmail:
		out["type"] = "string"
		out["format"] = "email"
	case schema.TypeURL:
		out["type"] = "string"
		out["format"] = "uri"
	case schema.TypeEnum:
		out["type"] = "string"
		values := make([]interface{}, len(spec.EnumValues))
		for i, v := range spec.EnumValues {
			values[i] = v
		}
		out["enum"] = values
	case schema.TypeJSON, schema.TypeAny:
		// No type constraint.
	}

	if spec.MinValue != nil {
		out["minimum"] = *spec.MinValue
	}
	if spec.MaxValue != nil {
		out["maximum"] = *spec.MaxValue
	}
	if spec.MinLength != nil {
		out["minLength"] = *spec.MinLength
	}
	if spec.MaxLength != nil {
		out["maxLength"] = *spec.MaxLength
	}
	if spec.Pattern != nil {
		out["pattern"] = spec.Pattern.String()
	}

	return out
}

// objectSchema converts an object schema into an OpenAPI object fragment.
func objectSchema(obj *schema.Object) map[string]interface{} {
	properties := make(map[string]interface{}, obj.Len())
	required := make([]string, 0)
	for _, name := range obj.Names() {
		spec, _ := obj.Get(name)
		properties[name] = fieldSchema(spec)
		if !spec.Optional {
			required = append(required, name)
		}
	}

	out := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}
