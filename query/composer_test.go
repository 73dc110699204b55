package query

import (
	"errors"
	"strings"
	"testing"

	"github.com/conduit-lang/routegen/schema"
)

func userEntity() *schema.Object {
	return schema.NewObject().
		Add("id", schema.UUID()).
		Add("name", schema.String()).
		Add("email", schema.Email()).
		Add("age", schema.Int().Min(0))
}

func queryObject(t *testing.T, input *schema.Object) *schema.Object {
	t.Helper()
	spec, ok := input.Get("query")
	if !ok {
		t.Fatal("expected a top-level query key")
	}
	if !spec.Optional {
		t.Error("expected query wrapper to be optional")
	}
	if spec.Fields == nil {
		t.Fatal("expected query wrapper to be an object")
	}
	return spec.Fields
}

func TestComposer_Empty(t *testing.T) {
	c := NewComposer(userEntity())

	input, err := c.InputSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input != nil {
		t.Errorf("expected nil input schema for empty composer, got %v", input.Names())
	}

	out, err := c.OutputSchema(userEntity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Has("meta") {
		t.Error("expected no meta without pagination")
	}
	if !out.Has("data") {
		t.Error("expected data field")
	}
}

func TestComposer_PaginationOnly(t *testing.T) {
	c := NewComposer(userEntity()).
		WithPagination(PaginationConfig{DefaultLimit: 20, MaxLimit: 100, IncludeOffset: true})

	input, err := c.InputSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := queryObject(t, input)
	if !q.Has("limit") || !q.Has("offset") {
		t.Errorf("expected limit and offset, got %v", q.Names())
	}
	if q.Has("cursor") || q.Has("page") {
		t.Errorf("unexpected cursor or page parameters: %v", q.Names())
	}

	// Limit parameter carries the configured bounds.
	if err := q.Validate(map[string]interface{}{"limit": 50}); err != nil {
		t.Errorf("limit 50 should be accepted: %v", err)
	}
	if err := q.Validate(map[string]interface{}{"limit": 200}); err == nil {
		t.Error("limit 200 should exceed the max limit")
	}
	if err := q.Validate(map[string]interface{}{}); err != nil {
		t.Errorf("all pagination parameters are optional: %v", err)
	}
}

func TestComposer_PaginationMeta(t *testing.T) {
	c := NewComposer(userEntity()).
		WithPagination(PaginationConfig{IncludeCursor: true})

	out, err := c.OutputSchema(userEntity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta, ok := out.Get("meta")
	if !ok || meta.Fields == nil {
		t.Fatal("expected meta object with pagination configured")
	}
	for _, field := range []string{"total", "limit", "cursor", "hasMore"} {
		if !meta.Fields.Has(field) {
			t.Errorf("expected meta field %s, got %v", field, meta.Fields.Names())
		}
	}
}

func TestComposer_AllFourDimensions(t *testing.T) {
	c := NewComposer(userEntity()).
		WithPagination(PaginationConfig{}).
		WithSorting(SortingConfig{AllowedFields: []string{"name", "age"}}).
		WithFiltering(FilteringConfig{Fields: map[string][]Operator{
			"age":  {OpEq, OpGte, OpLte},
			"name": {OpLike},
		}}).
		WithSearch(SearchConfig{SearchableFields: []string{"name", "email"}, MinQueryLength: 2})

	input, err := c.InputSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := queryObject(t, input)
	expected := []string{"limit", "sort", "order", "age", "age_gte", "age_lte", "name_like", "q"}
	for _, name := range expected {
		if !q.Has(name) {
			t.Errorf("expected parameter %s, got %v", name, q.Names())
		}
	}

	// Dimensions contribute in fixed order: pagination, sorting, filtering,
	// search.
	names := q.Names()
	if names[0] != "limit" || names[len(names)-1] != "q" {
		t.Errorf("unexpected parameter order: %v", names)
	}
}

func TestComposer_FilterParameterTypes(t *testing.T) {
	c := NewComposer(userEntity()).
		WithFiltering(FilteringConfig{Fields: map[string][]Operator{
			"age": {OpEq, OpIn},
		}})

	input, err := c.InputSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := queryObject(t, input)

	// eq claims the bare field name and keeps the field's constraints.
	if err := q.Validate(map[string]interface{}{"age": -1}); err == nil {
		t.Error("expected eq filter to keep the min constraint")
	}
	if err := q.Validate(map[string]interface{}{"age": 30}); err != nil {
		t.Errorf("eq filter rejected a valid value: %v", err)
	}

	// in takes an array of the field's own type.
	if err := q.Validate(map[string]interface{}{"age_in": []interface{}{20, 30}}); err != nil {
		t.Errorf("in filter rejected a valid array: %v", err)
	}
	if err := q.Validate(map[string]interface{}{"age_in": 20}); err == nil {
		t.Error("in filter should require an array")
	}
}

func TestComposer_SearchParameters(t *testing.T) {
	c := NewComposer(userEntity()).
		WithSearch(SearchConfig{
			SearchableFields:    []string{"name", "email"},
			MinQueryLength:      3,
			AllowFieldSelection: true,
		})

	input, err := c.InputSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := queryObject(t, input)

	if err := q.Validate(map[string]interface{}{"q": "dar"}); err != nil {
		t.Errorf("expected 3-char query to pass: %v", err)
	}
	if err := q.Validate(map[string]interface{}{"q": "da"}); err == nil {
		t.Error("expected short query to violate min length")
	}
	if err := q.Validate(map[string]interface{}{"q": "dar", "fields": []interface{}{"name"}}); err != nil {
		t.Errorf("field selection rejected a searchable field: %v", err)
	}
	if err := q.Validate(map[string]interface{}{"q": "dar", "fields": []interface{}{"age"}}); err == nil {
		t.Error("field selection should reject non-searchable fields")
	}
}

func TestComposer_KeyCollision(t *testing.T) {
	// A filter on a field named "limit" collides with pagination's limit
	// parameter.
	entity := schema.NewObject().Add("limit", schema.Int())

	c := NewComposer(entity).
		WithPagination(PaginationConfig{}).
		WithFiltering(FilteringConfig{Fields: map[string][]Operator{"limit": {OpEq}}})

	_, err := c.InputSchema()
	if !errors.Is(err, ErrKeyCollision) {
		t.Errorf("expected ErrKeyCollision, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "limit") {
		t.Errorf("expected the colliding key in the message, got %v", err)
	}
}

func TestComposer_Immutability(t *testing.T) {
	base := NewComposer(userEntity()).WithPagination(PaginationConfig{})

	sorted := base.WithSorting(SortingConfig{AllowedFields: []string{"name"}})
	searched := base.WithSearch(SearchConfig{SearchableFields: []string{"email"}})

	if _, ok := base.Dimension(KindSorting); ok {
		t.Error("branching mutated the base composer")
	}
	if _, ok := sorted.Dimension(KindSearch); ok {
		t.Error("sibling branch leaked into sorted variant")
	}
	if _, ok := searched.Dimension(KindSorting); ok {
		t.Error("sibling branch leaked into searched variant")
	}
}

func TestComposer_ErrSticks(t *testing.T) {
	c := NewComposer(userEntity()).
		WithSorting(SortingConfig{AllowedFields: []string{"nope"}})

	if c.Err() == nil {
		t.Fatal("expected a configuration error")
	}

	// Later valid calls do not clear the recorded error.
	c = c.WithPagination(PaginationConfig{})
	if c.Err() == nil {
		t.Error("expected the error to persist")
	}
	if _, err := c.InputSchema(); err == nil {
		t.Error("expected InputSchema to surface the error")
	}
}

func TestComposer_ConfigRoundTrip(t *testing.T) {
	cfg := Config{
		Pagination: &PaginationConfig{DefaultLimit: 10, MaxLimit: 50},
		Sorting:    &SortingConfig{AllowedFields: []string{"name"}},
	}

	c := FromConfig(userEntity(), cfg)
	if c.Err() != nil {
		t.Fatalf("unexpected error: %v", c.Err())
	}

	exported := c.Config()
	if exported.Pagination == nil || exported.Sorting == nil {
		t.Fatal("expected both configured dimensions to export")
	}
	if exported.Filtering != nil || exported.Search != nil {
		t.Error("expected absent dimensions to stay nil")
	}
	if exported.Pagination.MaxLimit != 50 {
		t.Errorf("expected max limit 50, got %d", exported.Pagination.MaxLimit)
	}

	// A reseeded composer produces the same parameter set.
	reseeded := FromConfig(userEntity(), exported)
	a, err := c.InputSchema()
	if err != nil {
		t.Fatal(err)
	}
	b, err := reseeded.InputSchema()
	if err != nil {
		t.Fatal(err)
	}
	aq, bq := queryObject(t, a), queryObject(t, b)
	if len(aq.Names()) != len(bq.Names()) {
		t.Errorf("round trip changed parameters: %v vs %v", aq.Names(), bq.Names())
	}
}

func TestConfig_IsZero(t *testing.T) {
	if !(Config{}).IsZero() {
		t.Error("empty config should be zero")
	}
	if (Config{Pagination: &PaginationConfig{}}).IsZero() {
		t.Error("config with a dimension should not be zero")
	}
}
