package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// emailPattern is intentionally permissive; it rejects obvious junk without
// attempting full RFC 5322 conformance.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks a decoded record against the object schema. It verifies
// required-field presence, per-field types and constraints, and rejects keys
// not present on the schema (unless the object is loose). Returns a
// *ValidationErrors on failure.
func (o *Object) Validate(record map[string]interface{}) error {
	errs := NewValidationErrors()
	o.validateInto("", record, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate checks a single decoded value against the field spec.
func (f *FieldSpec) Validate(value interface{}) error {
	errs := NewValidationErrors()
	f.validateInto("value", value, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (o *Object) validateInto(path string, record map[string]interface{}, errs *ValidationErrors) {
	for _, name := range o.names {
		spec := o.fields[name]
		fieldPath := joinPath(path, name)

		value, exists := record[name]
		if !exists || value == nil {
			if !spec.Optional {
				errs.Add(fieldPath, "is required")
			}
			continue
		}

		spec.validateInto(fieldPath, value, errs)
	}

	if o.loose {
		return
	}
	for key := range record {
		if _, ok := o.fields[key]; !ok {
			errs.Add(joinPath(path, key), "is not a known field")
		}
	}
}

func (f *FieldSpec) validateInto(path string, value interface{}, errs *ValidationErrors) {
	switch {
	case f.IsArray():
		f.validateArray(path, value, errs)
	case f.IsObject():
		record, ok := value.(map[string]interface{})
		if !ok {
			errs.Add(path, "must be an object")
			return
		}
		f.Fields.validateInto(path, record, errs)
	default:
		f.validatePrimitive(path, value, errs)
	}
}

func (f *FieldSpec) validateArray(path string, value interface{}, errs *ValidationErrors) {
	items, ok := value.([]interface{})
	if !ok {
		errs.Add(path, "must be an array")
		return
	}

	if f.MinItems != nil && len(items) < *f.MinItems {
		errs.Add(path, fmt.Sprintf("must contain at least %d items", *f.MinItems))
	}
	if f.MaxItems != nil && len(items) > *f.MaxItems {
		errs.Add(path, fmt.Sprintf("must contain at most %d items", *f.MaxItems))
	}

	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		if item == nil {
			if !f.Elem.Optional {
				errs.Add(itemPath, "is required")
			}
			continue
		}
		f.Elem.validateInto(itemPath, item, errs)
	}
}

func (f *FieldSpec) validatePrimitive(path string, value interface{}, errs *ValidationErrors) {
	switch f.Type {
	case TypeString, TypeText:
		s, ok := value.(string)
		if !ok {
			errs.Add(path, "must be a string")
			return
		}
		f.checkTextConstraints(path, s, errs)

	case TypeInt:
		n, ok := asFloat(value)
		if !ok || n != float64(int64(n)) {
			errs.Add(path, "must be an integer")
			return
		}
		f.checkNumericConstraints(path, n, errs)

	case TypeFloat:
		n, ok := asFloat(value)
		if !ok {
			errs.Add(path, "must be a number")
			return
		}
		f.checkNumericConstraints(path, n, errs)

	case TypeBool:
		if _, ok := value.(bool); !ok {
			errs.Add(path, "must be a boolean")
		}

	case TypeTimestamp:
		if !isTimestamp(value) {
			errs.Add(path, "must be an RFC 3339 timestamp")
		}

	case TypeDate:
		if !isDate(value) {
			errs.Add(path, "must be a date in YYYY-MM-DD format")
		}

	case TypeUUID:
		s, ok := value.(string)
		if !ok {
			errs.Add(path, "must be a string")
			return
		}
		if _, err := uuid.Parse(s); err != nil {
			errs.Add(path, "must be a valid UUID")
		}

	case TypeEmail:
		s, ok := value.(string)
		if !ok {
			errs.Add(path, "must be a string")
			return
		}
		if !emailPattern.MatchString(s) {
			errs.Add(path, "must be a valid email address")
			return
		}
		f.checkTextConstraints(path, s, errs)

	case TypeURL:
		s, ok := value.(string)
		if !ok {
			errs.Add(path, "must be a string")
			return
		}
		if u, err := url.ParseRequestURI(s); err != nil || u.Scheme == "" {
			errs.Add(path, "must be a valid URL")
		}

	case TypeEnum:
		s, ok := value.(string)
		if !ok {
			errs.Add(path, "must be a string")
			return
		}
		for _, allowed := range f.EnumValues {
			if s == allowed {
				return
			}
		}
		errs.Add(path, fmt.Sprintf("must be one of %v", f.EnumValues))

	case TypeJSON, TypeAny:
		// Accepts any value.
	}
}

func (f *FieldSpec) checkTextConstraints(path, s string, errs *ValidationErrors) {
	if f.MinLength != nil && len(s) < *f.MinLength {
		errs.Add(path, fmt.Sprintf("must be at least %d characters", *f.MinLength))
	}
	if f.MaxLength != nil && len(s) > *f.MaxLength {
		errs.Add(path, fmt.Sprintf("must be at most %d characters", *f.MaxLength))
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		errs.Add(path, fmt.Sprintf("must match pattern %s", f.Pattern.String()))
	}
}

func (f *FieldSpec) checkNumericConstraints(path string, n float64, errs *ValidationErrors) {
	if f.MinValue != nil && n < *f.MinValue {
		errs.Add(path, fmt.Sprintf("must be at least %v", *f.MinValue))
	}
	if f.MaxValue != nil && n > *f.MaxValue {
		errs.Add(path, fmt.Sprintf("must be at most %v", *f.MaxValue))
	}
}

// asFloat normalizes the numeric representations produced by JSON decoding
// and by in-process callers.
func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func isTimestamp(value interface{}) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case string:
		_, err := time.Parse(time.RFC3339, v)
		return err == nil
	default:
		return false
	}
}

func isDate(value interface{}) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case string:
		_, err := time.Parse("2006-01-02", v)
		return err == nil
	default:
		return false
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
