package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/reino/financas-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorResponse checks the status code and that the error body
// contains expectedErrorMsgPart and a trace ID.
func AssertErrorResponse(
	t *testing.T,
	w *httptest.ResponseRecorder,
	expectedStatus int,
	expectedErrorMsgPart string,
) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp),
		"Failed to unmarshal error response: %s", w.Body.String())

	assert.Contains(t, errResp.Error, expectedErrorMsgPart)
	assert.NotEmpty(t, errResp.TraceID, "error response should carry a trace ID")
}
