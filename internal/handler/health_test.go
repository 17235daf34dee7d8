package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/handler"
)

func TestGetHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.NewHealthHandler().Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body handler.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestGetHealth_NoServicesNeeded(t *testing.T) {
	// The full router answers liveness even when no service is wired.
	rec := httptest.NewRecorder()
	handler.NewServer(nil, nil, nil, nil).Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetHealth_WrongMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	handler.NewHealthHandler().Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
