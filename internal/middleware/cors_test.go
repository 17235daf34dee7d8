package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/itinerary/internal/middleware"
)

const planner = "http://localhost:5173"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		origin      string
		reqMethod   string
		reqHeaders  string
		wantAllowed bool
	}{
		{name: "simple get from planner", method: http.MethodGet, origin: planner, wantAllowed: true},
		{name: "unknown origin", method: http.MethodGet, origin: "http://evil.example.com"},
		{
			// Fetch sends requested header names lowercased; rs/cors compares them that way.
			name: "preflight activity edit", method: http.MethodOptions, origin: planner,
			reqMethod: http.MethodPut, reqHeaders: "content-type,x-request-id", wantAllowed: true,
		},
		{
			name: "preflight unsupported method", method: http.MethodOptions, origin: planner,
			reqMethod: http.MethodPatch,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.NewCORSHandler([]string{planner})(okHandler)

			req := httptest.NewRequest(tc.method, "/trips/x/days/y/activities/z", nil)
			req.Header.Set("Origin", tc.origin)
			if tc.reqMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tc.reqMethod)
			}
			if tc.reqHeaders != "" {
				req.Header.Set("Access-Control-Request-Headers", tc.reqHeaders)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tc.wantAllowed {
				assert.Equal(t, planner, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestCORSHandler_ExposesRequestID(t *testing.T) {
	h := middleware.NewCORSHandler([]string{planner})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	req.Header.Set("Origin", planner)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
}
