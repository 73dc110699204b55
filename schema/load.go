package schema

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EntityFile is the YAML representation of an entity definition. Fields are
// declared as a list so the schema keeps its declaration order.
type EntityFile struct {
	Name   string      `yaml:"name"`
	Fields []FieldFile `yaml:"fields"`
}

// FieldFile is the YAML representation of a single field.
type FieldFile struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Optional bool     `yaml:"optional"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
	MinLen   *int     `yaml:"min_len"`
	MaxLen   *int     `yaml:"max_len"`
	Pattern  string   `yaml:"pattern"`
	Values   []string `yaml:"values"`
}

// LoadEntity reads a YAML entity definition and returns the entity name and
// its object schema.
func LoadEntity(r io.Reader) (string, *Object, error) {
	var file EntityFile
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&file); err != nil {
		return "", nil, fmt.Errorf("failed to parse entity definition: %w", err)
	}

	if file.Name == "" {
		return "", nil, fmt.Errorf("entity definition missing name")
	}
	if len(file.Fields) == 0 {
		return "", nil, fmt.Errorf("entity %s has no fields", file.Name)
	}

	object := NewObject()
	for _, field := range file.Fields {
		spec, err := buildFieldSpec(field)
		if err != nil {
			return "", nil, fmt.Errorf("entity %s field %s: %w", file.Name, field.Name, err)
		}
		if object.Has(field.Name) {
			return "", nil, fmt.Errorf("entity %s: duplicate field %s", file.Name, field.Name)
		}
		object = object.Add(field.Name, spec)
	}

	return file.Name, object, nil
}

// LoadEntityFile reads a YAML entity definition from disk.
func LoadEntityFile(path string) (string, *Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open entity definition: %w", err)
	}
	defer f.Close()
	return LoadEntity(f)
}

func buildFieldSpec(field FieldFile) (*FieldSpec, error) {
	if field.Name == "" {
		return nil, fmt.Errorf("field missing name")
	}

	primitive, err := ParsePrimitiveType(field.Type)
	if err != nil {
		return nil, err
	}

	spec := &FieldSpec{Type: primitive, Optional: field.Optional}

	if primitive == TypeEnum {
		if len(field.Values) == 0 {
			return nil, fmt.Errorf("enum field requires values")
		}
		spec.EnumValues = field.Values
	}

	spec.MinValue = field.Min
	spec.MaxValue = field.Max
	spec.MinLength = field.MinLen
	spec.MaxLength = field.MaxLen

	if field.Pattern != "" {
		pattern, err := regexp.Compile(field.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		spec.Pattern = pattern
	}

	return spec, nil
}
