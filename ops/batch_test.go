package ops

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writableItem() map[string]interface{} {
	return map[string]interface{}{
		"name":  "Darin",
		"email": "darin@example.com",
		"age":   30,
	}
}

func TestBatchCreate(t *testing.T) {
	c, err := userOps(t).BatchCreate().Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, c.Method)
	assert.Equal(t, "/batch", c.Path)
	assert.Equal(t, http.StatusCreated, c.Status)

	body := c.Input.Body
	assert.NoError(t, body.Validate(map[string]interface{}{
		"items": []interface{}{writableItem()},
	}))
	assert.Error(t, body.Validate(map[string]interface{}{
		"items": []interface{}{},
	}), "empty batch must fail")

	// Items are the caller-writable shape, not the full entity.
	withID := writableItem()
	withID["id"] = "550e8400-e29b-41d4-a716-446655440000"
	assert.Error(t, body.Validate(map[string]interface{}{
		"items": []interface{}{withID},
	}))
}

func TestBatchDelete_Bounds(t *testing.T) {
	o, err := New(userEntity(), "user", Options{MaxBatchSize: 2})
	require.NoError(t, err)

	c, err := o.BatchDelete().Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, c.Method)
	assert.Equal(t, "/batch", c.Path)

	id := "550e8400-e29b-41d4-a716-446655440000"
	body := c.Input.Body

	assert.NoError(t, body.Validate(map[string]interface{}{
		"ids": []interface{}{id},
	}))
	assert.NoError(t, body.Validate(map[string]interface{}{
		"ids": []interface{}{id, id},
	}))
	assert.Error(t, body.Validate(map[string]interface{}{
		"ids": []interface{}{},
	}), "zero ids must fail")
	assert.Error(t, body.Validate(map[string]interface{}{
		"ids": []interface{}{id, id, id},
	}), "three ids exceed the bound")

	// Identifiers reuse the entity's id spec.
	assert.Error(t, body.Validate(map[string]interface{}{
		"ids": []interface{}{"not-a-uuid"},
	}))
}

func TestBatchRead(t *testing.T) {
	c, err := userOps(t).BatchRead().Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, c.Method)
	assert.Equal(t, "/batch/read", c.Path)
	assert.True(t, c.Input.Body.Has("ids"))
	assert.True(t, c.Output.Fields.Has("items"))
	assert.True(t, c.Output.Fields.Has("notFound"))
}

func TestBatchUpdate_TakesFullEntities(t *testing.T) {
	c, err := userOps(t).BatchUpdate().Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, c.Method)
	assert.NoError(t, c.Input.Body.Validate(map[string]interface{}{
		"items": []interface{}{validUser()},
	}))
	// Unlike BatchCreate, items carry their identifiers.
	assert.Error(t, c.Input.Body.Validate(map[string]interface{}{
		"items": []interface{}{writableItem()},
	}))
}

func TestBatchUpsert(t *testing.T) {
	c, err := userOps(t).BatchUpsert().Build()
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, c.Method)
	assert.Equal(t, "/batch/upsert", c.Path)
	assert.True(t, c.Output.Fields.Has("created"))
	assert.True(t, c.Output.Fields.Has("updated"))
}

func TestImport_TenTimesBatchBound(t *testing.T) {
	o, err := New(userEntity(), "user", Options{MaxBatchSize: 2})
	require.NoError(t, err)

	c, err := o.Import().Build()
	require.NoError(t, err)
	assert.Equal(t, "/import", c.Path)

	items := make([]interface{}, 0, 21)
	for i := 0; i < 20; i++ {
		items = append(items, writableItem())
	}
	assert.NoError(t, c.Input.Body.Validate(map[string]interface{}{"items": items}))

	items = append(items, writableItem())
	assert.Error(t, c.Input.Body.Validate(map[string]interface{}{"items": items}),
		"21 items exceed ten times the batch bound")
}

func TestBatchOutputsReserveFailureReporting(t *testing.T) {
	c, err := userOps(t).BatchCreate().Build()
	require.NoError(t, err)

	assert.NoError(t, c.Output.Fields.Validate(map[string]interface{}{
		"created": []interface{}{},
		"failed": []interface{}{
			map[string]interface{}{"index": 0, "error": "duplicate email"},
		},
	}))
	// The failure list is optional.
	assert.NoError(t, c.Output.Fields.Validate(map[string]interface{}{
		"created": []interface{}{validUser()},
	}))
}
