package testutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/storefront-client/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest builds a request with a JSON-encoded body and optional path
// parameters, matching what the mux would set for method patterns.
func NewJSONRequest(t *testing.T, method, target string, payload any, pathParams map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req
}

// DecodeAPIResponse unmarshals the recorded body into the standard envelope.
func DecodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) *response.APIResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	return &resp
}
