package httperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Response(t *testing.T) {
	t.Run("Should render a bad request error as a 400 text response", func(t *testing.T) {
		resp := BadRequest("bad input").Response()

		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, []byte("bad input"), resp.Body)
	})

	t.Run("Should render a bad JSON error as a 400 text response", func(t *testing.T) {
		resp := BadJSON("not json").Response()

		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Should render an unauthorized error as a 401 text response", func(t *testing.T) {
		resp := Unauthorized("missing session").Response()

		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Should render a not-found error as a 404 text response", func(t *testing.T) {
		resp := NotFound("no such entity").Response()

		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Should render a method-not-allowed error as a 405 with a fixed body", func(t *testing.T) {
		resp := MethodNotAllowed("GET").Response()

		assert.Equal(t, 405, resp.StatusCode)
		assert.Equal(t, []byte("Method Not Allowed"), resp.Body)
	})

	t.Run("Should render an internal error as a 500 text response", func(t *testing.T) {
		resp := Internal("write failed").Response()

		assert.Equal(t, 500, resp.StatusCode)
	})

	t.Run("Should satisfy the error interface with its message", func(t *testing.T) {
		err := Internal("write failed")

		assert.EqualError(t, err, "write failed")
	})
}
