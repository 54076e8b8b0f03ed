package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheck struct{ err error }

func (s stubCheck) Ping(context.Context) error        { return s.err }
func (s stubCheck) HealthCheck(context.Context) error { return s.err }

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		db     stubCheck
		zeebe  stubCheck
		code   int
		status string
	}{
		{"all up", stubCheck{}, stubCheck{}, http.StatusOK, "ready"},
		{"postgres down", stubCheck{err: errors.New("dial tcp: refused")}, stubCheck{}, http.StatusServiceUnavailable, "not ready"},
		{"zeebe down", stubCheck{}, stubCheck{err: errors.New("unavailable")}, http.StatusServiceUnavailable, "not ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newMux(tt.db, tt.zeebe).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.code, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body["status"])
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	mux := newMux(stubCheck{}, stubCheck{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
