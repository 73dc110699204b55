package query

import (
	"fmt"
	"sort"

	"github.com/conduit-lang/routegen/schema"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEq   Operator = "eq"
	OpNeq  Operator = "neq"
	OpGt   Operator = "gt"
	OpGte  Operator = "gte"
	OpLt   Operator = "lt"
	OpLte  Operator = "lte"
	OpLike Operator = "like"
	OpIn   Operator = "in"
)

// validOperators is the full operator set, in the order filter parameters
// are emitted for each field.
var validOperators = []Operator{OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte, OpLike, OpIn}

// FilteringConfig configures the filtering dimension of a list query: a
// mapping of entity field name to its allowed operator set. Field names not
// present on the entity schema are rejected; a loose entity schema drops
// them silently instead.
type FilteringConfig struct {
	Fields map[string][]Operator
}

// validate resolves the configured fields against the entity schema,
// returning the surviving field names in deterministic order.
func (c FilteringConfig) validate(entity *schema.Object) ([]string, error) {
	if len(c.Fields) == 0 {
		return nil, fmt.Errorf("filtering: fields must not be empty")
	}

	fields := make([]string, 0, len(c.Fields))
	for field, ops := range c.Fields {
		if !entity.Has(field) {
			if entity.IsLoose() {
				continue
			}
			return nil, fmt.Errorf("filtering: %w: %s", schema.ErrUnknownField, field)
		}
		if len(ops) == 0 {
			return nil, fmt.Errorf("filtering: field %s has no operators", field)
		}
		for _, op := range ops {
			if !isValidOperator(op) {
				return nil, fmt.Errorf("filtering: field %s has unknown operator %q", field, op)
			}
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("filtering: no configured fields exist on the entity")
	}

	sort.Strings(fields)
	return fields, nil
}

// inputFields returns the query parameters this dimension contributes. The
// eq operator claims the bare field name; every other operator claims
// "<field>_<op>". A like parameter is always a string, an in parameter an
// array of the field's own type; the remaining operators reuse the field's
// type with constraints intact.
func (c FilteringConfig) inputFields(entity *schema.Object, fields []string) *schema.Object {
	result := schema.NewObject()
	for _, field := range fields {
		spec, _ := entity.Get(field)
		for _, op := range validOperators {
			if !hasOperator(c.Fields[field], op) {
				continue
			}
			result = result.Add(filterKey(field, op), filterSpec(spec, op))
		}
	}
	return result
}

// filterKey returns the query parameter name claimed by a field/operator
// pair.
func filterKey(field string, op Operator) string {
	if op == OpEq {
		return field
	}
	return field + "_" + string(op)
}

// filterSpec derives the parameter spec for a field/operator pair.
func filterSpec(field *schema.FieldSpec, op Operator) *schema.FieldSpec {
	switch op {
	case OpLike:
		return schema.String().AsOptional()
	case OpIn:
		return schema.ArrayOf(field.AsRequired()).AsOptional()
	default:
		return field.AsOptional()
	}
}

func isValidOperator(op Operator) bool {
	for _, valid := range validOperators {
		if op == valid {
			return true
		}
	}
	return false
}

func hasOperator(ops []Operator, op Operator) bool {
	for _, candidate := range ops {
		if candidate == op {
			return true
		}
	}
	return false
}
