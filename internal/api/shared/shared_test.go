package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background(), "")
	generated := GetTraceID(ctx)
	assert.Len(t, generated, 36)

	ctx = SetTraceID(context.Background(), "given-id")
	assert.Equal(t, "given-id", GetTraceID(ctx))

	assert.Empty(t, GetTraceID(context.Background()))
}

func TestAccountID(t *testing.T) {
	_, ok := GetAccountID(context.Background())
	assert.False(t, ok)

	id, ok := GetAccountID(SetAccountID(context.Background(), 12))
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	_, ok = GetAccountID(SetAccountID(context.Background(), 0))
	assert.False(t, ok)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"ana"}`, false},
		{"unknown field", `{"name":"ana","admin":true}`, true},
		{"trailing data", `{"name":"ana"}{"name":"bia"}`, true},
		{"malformed", `{"name":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(httptest.NewRecorder(), r, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ana", p.Name)
		})
	}

	assert.Error(t, ValidateRequest(payload{}))
	assert.NoError(t, ValidateRequest(payload{Name: "x"}))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
	r = r.WithContext(SetTraceID(r.Context(), "trace-1"))
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("dial postgres://app:pw@db failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.NotContains(t, w.Body.String(), "postgres://")
}
