package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPRequest represents a test HTTP request
type HTTPRequest struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
}

// HTTPResponse wraps the HTTP response for testing
type HTTPResponse struct {
	*httptest.ResponseRecorder
	t *testing.T
}

// DoRequest performs an HTTP request against the test server
func DoRequest(t *testing.T, e *echo.Echo, req HTTPRequest) *HTTPResponse {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		jsonBody, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(jsonBody)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, body)
	httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httpReq)

	return &HTTPResponse{ResponseRecorder: rec, t: t}
}

// AssertStatus asserts the response status code
func (r *HTTPResponse) AssertStatus(expected int) *HTTPResponse {
	assert.Equal(r.t, expected, r.Code, "unexpected status code, body: %s", r.Body.String())
	return r
}

// AssertJSONPath asserts a specific path in the JSON response
func (r *HTTPResponse) AssertJSONPath(path string, expected any) *HTTPResponse {
	value := getJSONPath(r.GetJSON(), path)
	assert.Equal(r.t, expected, value, "JSON path %s mismatch", path)
	return r
}

// AssertJSONError asserts the response contains an error with expected code
func (r *HTTPResponse) AssertJSONError(code string) *HTTPResponse {
	errorObj, ok := r.GetJSON()["error"].(map[string]any)
	require.True(r.t, ok, "response does not contain error object: %s", r.Body.String())
	assert.Equal(r.t, code, errorObj["code"], "error code mismatch")
	return r
}

// GetJSON parses the response body as JSON
func (r *HTTPResponse) GetJSON() map[string]any {
	var result map[string]any
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &result))
	return result
}

// GetJSONData returns the "data" object from the response
func (r *HTTPResponse) GetJSONData() map[string]any {
	data, _ := r.GetJSON()["data"].(map[string]any)
	return data
}

// GetJSONList returns the "data" array from the response
func (r *HTTPResponse) GetJSONList() []map[string]any {
	items, _ := r.GetJSON()["data"].([]any)
	list := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			list = append(list, m)
		}
	}
	return list
}

// getJSONPath gets a value from nested JSON using dot notation (e.g., "data.path")
func getJSONPath(data map[string]any, path string) any {
	var current any = data
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = m[key]
	}
	return current
}
