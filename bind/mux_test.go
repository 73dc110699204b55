package bind

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/routegen/ops"
	"github.com/conduit-lang/routegen/query"
	"github.com/conduit-lang/routegen/schema"
)

func userEntity() *schema.Object {
	return schema.NewObject().
		Add("id", schema.UUID()).
		Add("name", schema.String().MinLen(1)).
		Add("age", schema.Int().Min(0))
}

func userOps(t *testing.T) *ops.Operations {
	t.Helper()
	o, err := ops.New(userEntity(), "user", ops.Options{BasePath: "/users"})
	require.NoError(t, err)
	return o
}

const validID = "550e8400-e29b-41d4-a716-446655440000"

func TestMux_Read(t *testing.T) {
	o := userOps(t)
	c, err := o.Read().Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	var gotID interface{}
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		gotID = r.Params["id"]
		return map[string]interface{}{
			"id": r.Params["id"], "name": "Darin", "age": 30,
		}, nil
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+validID, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, validID, gotID)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Darin", body["name"])
}

func TestMux_Read_InvalidParam(t *testing.T) {
	c, err := userOps(t).Read().Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	called := false
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		called = true
		return nil, nil
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called, "handler must not run on invalid input")

	var body struct {
		Error  string              `json:"error"`
		Fields map[string][]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_failed", body.Error)
	assert.Contains(t, body.Fields, "id")
}

func TestMux_Create(t *testing.T) {
	c, err := userOps(t).Create().Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		assert.Equal(t, "Darin", r.Body["name"])
		return map[string]interface{}{"id": validID}, nil
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Darin","age":30}`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code, "create answers with the contract's status")
}

func TestMux_Create_RejectsServerManagedFields(t *testing.T) {
	c, err := userOps(t).Create().Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		return nil, nil
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"id":"`+validID+`","name":"Darin","age":30}`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMux_Create_MalformedJSON(t *testing.T) {
	c, err := userOps(t).Create().Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		return nil, nil
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"name":`))
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMux_List_QueryDecoding(t *testing.T) {
	c, err := userOps(t).List(query.Config{
		Pagination: &query.PaginationConfig{MaxLimit: 100},
		Sorting:    &query.SortingConfig{AllowedFields: []string{"name", "age"}, AllowMultiple: true},
	}).Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	var got map[string]interface{}
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		got = r.Query
		return map[string]interface{}{"data": []interface{}{}}, nil
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/users?limit=50&sort=name,age&order=desc", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Flat URL parameters arrive re-nested under the query wrapper, with
	// numbers coerced and comma-separated arrays split.
	inner, ok := got["query"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(50), inner["limit"])
	assert.Equal(t, []interface{}{"name", "age"}, inner["sort"])
	assert.Equal(t, "desc", inner["order"])
}

func TestMux_List_LimitTooLarge(t *testing.T) {
	c, err := userOps(t).List(query.Config{
		Pagination: &query.PaginationConfig{MaxLimit: 100},
	}).Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		return map[string]interface{}{"data": []interface{}{}}, nil
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users?limit=200", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMux_HandlerError(t *testing.T) {
	c, err := userOps(t).Delete().Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	require.NoError(t, mux.Handle(c, func(r *Request) (interface{}, error) {
		return nil, assert.AnError
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/"+validID, nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMux_Handle_RejectsStreamingModes(t *testing.T) {
	o := userOps(t)

	streaming, err := o.StreamingList().Build()
	require.NoError(t, err)
	socket, err := o.Websocket().Build()
	require.NoError(t, err)

	mux := NewMux(nil)
	assert.Error(t, mux.Handle(streaming, func(r *Request) (interface{}, error) { return nil, nil }))
	assert.Error(t, mux.Handle(socket, func(r *Request) (interface{}, error) { return nil, nil }))
}

func TestMux_NotFound(t *testing.T) {
	mux := NewMux(nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
