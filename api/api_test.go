package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/api"
	"github.com/pkordes/itinerary/internal/handler"
)

// TestOpenAPI_DocumentsEveryRoute walks the live router and checks that the
// embedded document lists each path with its method.
func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	doc := string(api.OpenAPI)
	routes, ok := handler.NewServer(nil, nil, nil, nil).Routes().(chi.Routes)
	require.True(t, ok, "Routes should return a chi router")

	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route != "/" {
			route = strings.TrimSuffix(route, "/")
		}
		section := pathSection(doc, route)
		if assert.NotEmpty(t, section, "path %s missing from openapi.yaml", route) {
			assert.Contains(t, section, "    "+strings.ToLower(method)+":", "%s %s missing", method, route)
		}
		return nil
	})
	require.NoError(t, err)
}

// pathSection returns the YAML block under "  <route>:" up to the next path.
func pathSection(doc, route string) string {
	marker := "\n  " + route + ":\n"
	i := strings.Index(doc, marker)
	if i < 0 {
		return ""
	}
	rest := doc[i+len(marker):]
	if j := strings.Index(rest, "\n  /"); j >= 0 {
		rest = rest[:j]
	}
	if j := strings.Index(rest, "\ncomponents:"); j >= 0 {
		rest = rest[:j]
	}
	return rest
}
