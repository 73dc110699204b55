package schema

import (
	"regexp"
	"strings"
	"testing"
)

func TestValidate_ValidRecord(t *testing.T) {
	obj := userSchema()

	err := obj.Validate(map[string]interface{}{
		"id":    "550e8400-e29b-41d4-a716-446655440000",
		"name":  "Darin",
		"email": "darin@example.com",
		"age":   0,
	})
	if err != nil {
		t.Errorf("expected valid record, got %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	obj := NewObject().
		Add("name", String()).
		Add("bio", Text().AsOptional())

	err := obj.Validate(map[string]interface{}{})
	verrs, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if _, present := verrs.Fields["name"]; !present {
		t.Error("expected error on name")
	}
	if _, present := verrs.Fields["bio"]; present {
		t.Error("optional field should not be required")
	}
}

func TestValidate_NilCountsAsAbsent(t *testing.T) {
	obj := NewObject().Add("name", String())

	err := obj.Validate(map[string]interface{}{"name": nil})
	if err == nil {
		t.Error("expected nil value to fail required check")
	}
}

func TestValidate_UnknownKeyRejected(t *testing.T) {
	obj := NewObject().Add("name", String())

	err := obj.Validate(map[string]interface{}{
		"name":     "x",
		"nickname": "y",
	})
	verrs, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	msgs := verrs.Fields["nickname"]
	if len(msgs) != 1 || !strings.Contains(msgs[0], "not a known field") {
		t.Errorf("expected unknown-field error, got %v", msgs)
	}
}

func TestValidate_LooseAcceptsUnknownKeys(t *testing.T) {
	obj := NewObject().Add("name", String()).Loose()

	err := obj.Validate(map[string]interface{}{
		"name":     "x",
		"nickname": "y",
	})
	if err != nil {
		t.Errorf("loose schema rejected unknown key: %v", err)
	}
}

func TestValidate_PrimitiveTypes(t *testing.T) {
	tests := []struct {
		name  string
		spec  *FieldSpec
		value interface{}
		valid bool
	}{
		{"string ok", String(), "hello", true},
		{"string wrong type", String(), 42, false},
		{"int ok", Int(), 42, true},
		{"int from json float", Int(), float64(42), true},
		{"int fractional", Int(), 42.5, false},
		{"int wrong type", Int(), "42", false},
		{"float ok", Float(), 3.14, true},
		{"bool ok", Bool(), true, true},
		{"bool wrong type", Bool(), "true", false},
		{"uuid ok", UUID(), "550e8400-e29b-41d4-a716-446655440000", true},
		{"uuid malformed", UUID(), "not-a-uuid", false},
		{"email ok", Email(), "a@b.co", true},
		{"email missing at", Email(), "a.b.co", false},
		{"url ok", URL(), "https://example.com/x", true},
		{"url no scheme", URL(), "example.com", false},
		{"timestamp ok", Timestamp(), "2026-08-31T12:00:00Z", true},
		{"timestamp junk", Timestamp(), "yesterday", false},
		{"date ok", Date(), "2026-08-31", true},
		{"date wrong shape", Date(), "31/08/2026", false},
		{"enum ok", Enum("active", "archived"), "active", true},
		{"enum unknown value", Enum("active", "archived"), "deleted", false},
		{"json accepts anything", JSON(), map[string]interface{}{"k": 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(tt.value)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_Constraints(t *testing.T) {
	tests := []struct {
		name  string
		spec  *FieldSpec
		value interface{}
		valid bool
	}{
		{"min ok", Int().Min(0), 0, true},
		{"min violated", Int().Min(0), -1, false},
		{"max ok", Int().Max(100), 100, true},
		{"max violated", Int().Max(100), 101, false},
		{"min len ok", String().MinLen(3), "abc", true},
		{"min len violated", String().MinLen(3), "ab", false},
		{"max len violated", String().MaxLen(3), "abcd", false},
		{"pattern ok", String().Matching(regexp.MustCompile(`^[a-z]+$`)), "abc", true},
		{"pattern violated", String().Matching(regexp.MustCompile(`^[a-z]+$`)), "Abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(tt.value)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_ArrayBoundsAndElements(t *testing.T) {
	spec := ArrayOf(Int().Min(0)).Bounded(1, 3)

	if err := spec.Validate([]interface{}{1, 2}); err != nil {
		t.Errorf("expected valid array, got %v", err)
	}
	if err := spec.Validate([]interface{}{}); err == nil {
		t.Error("expected empty array to violate min items")
	}
	if err := spec.Validate([]interface{}{1, 2, 3, 4}); err == nil {
		t.Error("expected oversized array to violate max items")
	}
	if err := spec.Validate("nope"); err == nil {
		t.Error("expected non-array to be rejected")
	}

	err := spec.Validate([]interface{}{1, -1})
	verrs, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if _, present := verrs.Fields["value[1]"]; !present {
		t.Errorf("expected indexed element path, got %v", verrs.Fields)
	}
}

func TestValidate_NestedObjectPaths(t *testing.T) {
	address := NewObject().
		Add("city", String()).
		Add("zip", String().Matching(regexp.MustCompile(`^\d{5}$`)))
	obj := NewObject().
		Add("name", String()).
		Add("address", ObjectOf(address))

	err := obj.Validate(map[string]interface{}{
		"name": "x",
		"address": map[string]interface{}{
			"city": "Portland",
			"zip":  "nope",
		},
	})
	verrs, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if _, present := verrs.Fields["address.zip"]; !present {
		t.Errorf("expected dotted path address.zip, got %v", verrs.Fields)
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	obj := userSchema()

	err := obj.Validate(map[string]interface{}{
		"id":    "nope",
		"email": "nope",
		"age":   -1,
	})
	verrs, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if verrs.Count() < 4 {
		t.Errorf("expected at least 4 errors (id, name, email, age), got %d: %v", verrs.Count(), verrs.Fields)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := NewValidationErrors()
	errs.Add("name", "is required")
	errs.Add("name", "must be at least 3 characters")

	msg := errs.Error()
	if !strings.Contains(msg, "name") {
		t.Errorf("expected field name in message, got %q", msg)
	}
}
