package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaykit/httpd/internal/httpproto"
)

func newApiHandler(t *testing.T) (*ApiHandler, string) {
	t.Helper()
	dataPath := t.TempDir()
	h, err := NewApiFactory()([]string{"/api", "data_path", dataPath})
	require.NoError(t, err)
	return h.(*ApiHandler), dataPath
}

func TestApiHandler_Create(t *testing.T) {
	t.Run("Should create an entity and return its id", func(t *testing.T) {
		h, _ := newApiHandler(t)

		resp := h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{"name":"boot"}`)})

		require.Equal(t, 201, resp.StatusCode)
		var got map[string]int
		require.NoError(t, json.Unmarshal(resp.Body, &got))
		assert.Equal(t, 0, got["id"])
	})

	t.Run("Should allocate monotonically increasing ids", func(t *testing.T) {
		h, _ := newApiHandler(t)

		h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{}`)})
		resp := h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{}`)})

		var got map[string]int
		require.NoError(t, json.Unmarshal(resp.Body, &got))
		assert.Equal(t, 1, got["id"])
	})
}

func TestApiHandler_Retrieve(t *testing.T) {
	t.Run("Should retrieve a previously created entity", func(t *testing.T) {
		h, _ := newApiHandler(t)
		h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{"name":"boot"}`)})

		resp := h.Handle(&httpproto.Request{Method: "GET", Path: "/api/Shoes/0"})

		require.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, `{"name":"boot"}`, string(resp.Body))
	})

	t.Run("Should 404 for a missing id", func(t *testing.T) {
		h, _ := newApiHandler(t)

		resp := h.Handle(&httpproto.Request{Method: "GET", Path: "/api/Shoes/99"})

		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestApiHandler_List(t *testing.T) {
	t.Run("Should list all ids for an entity", func(t *testing.T) {
		h, _ := newApiHandler(t)
		h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{}`)})
		h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{}`)})

		resp := h.Handle(&httpproto.Request{Method: "GET", Path: "/api/Shoes"})

		require.Equal(t, 200, resp.StatusCode)
		var got map[string][]int
		require.NoError(t, json.Unmarshal(resp.Body, &got))
		assert.Equal(t, []int{0, 1}, got["id"])
	})

	t.Run("Should 404 for an entity with no stored items", func(t *testing.T) {
		h, _ := newApiHandler(t)

		resp := h.Handle(&httpproto.Request{Method: "GET", Path: "/api/Unknown"})

		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestApiHandler_Update(t *testing.T) {
	t.Run("Should update an existing entity", func(t *testing.T) {
		h, _ := newApiHandler(t)
		h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{"name":"boot"}`)})

		resp := h.Handle(&httpproto.Request{Method: "PUT", Path: "/api/Shoes/0", Body: []byte(`{"name":"sandal"}`)})

		require.Equal(t, 200, resp.StatusCode)
		get := h.Handle(&httpproto.Request{Method: "GET", Path: "/api/Shoes/0"})
		assert.JSONEq(t, `{"name":"sandal"}`, string(get.Body))
	})

	t.Run("Should reject invalid JSON on update", func(t *testing.T) {
		h, _ := newApiHandler(t)
		h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{}`)})

		resp := h.Handle(&httpproto.Request{Method: "PUT", Path: "/api/Shoes/0", Body: []byte(`not json`)})

		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestApiHandler_Delete(t *testing.T) {
	t.Run("Should delete an existing entity", func(t *testing.T) {
		h, _ := newApiHandler(t)
		h.Handle(&httpproto.Request{Method: "POST", Path: "/api/Shoes", Body: []byte(`{}`)})

		resp := h.Handle(&httpproto.Request{Method: "DELETE", Path: "/api/Shoes/0"})

		require.Equal(t, 200, resp.StatusCode)
		get := h.Handle(&httpproto.Request{Method: "GET", Path: "/api/Shoes/0"})
		assert.Equal(t, 404, get.StatusCode)
	})

	t.Run("Should 404 deleting a missing entity", func(t *testing.T) {
		h, _ := newApiHandler(t)

		resp := h.Handle(&httpproto.Request{Method: "DELETE", Path: "/api/Shoes/99"})

		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestApiHandler_PathParsing(t *testing.T) {
	t.Run("Should 404 a path outside the mount prefix", func(t *testing.T) {
		h, _ := newApiHandler(t)

		resp := h.Handle(&httpproto.Request{Method: "GET", Path: "/other/Shoes"})

		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Should 400 an unhandled method/id combination", func(t *testing.T) {
		h, _ := newApiHandler(t)

		resp := h.Handle(&httpproto.Request{Method: "PUT", Path: "/api/Shoes"})

		assert.Equal(t, 400, resp.StatusCode)
	})
}
