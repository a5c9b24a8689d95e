package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorAdapter(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", ValidationError("missing path").Build(), http.StatusBadRequest, "validation"},
		{"not found", NewError(CategoryNotFound, "no such sample").Build(), http.StatusNotFound, "not_found"},
		{"sample", SampleError("symbol not found").Build(), http.StatusUnprocessableEntity, "sample"},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/sample", nil)

			adapter.WriteErrorResponse(rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body HTTPErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}
