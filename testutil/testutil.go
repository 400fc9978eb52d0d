// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/jeung1234/community/cliparse"
	"github.com/jeung1234/community/db"
)

// SetupTestDB opens a fresh SQLite store with the full schema in the
// test's temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.StoreSQLite, filepath.Join(t.TempDir(), "community.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a configuration pointing at backendURL with a
// SQLite store in the test's temp dir.
func GetTestConfig(t *testing.T, backendURL string) cliparse.Config {
	t.Helper()

	return cliparse.Config{
		BackendURL: backendURL,
		StoreType:  cliparse.StoreSQLite,
		StoreURL:   filepath.Join(t.TempDir(), "community.db"),
	}
}

func NewID() string {
	return uuid.NewString()
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
