package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/itinerary/internal/domain"
)

// pathUUID binds the named chi path parameter as a UUID. On failure it
// writes a 422 and returns false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid "+name+": "+err.Error()))
		return uuid.Nil, false
	}
	return id, true
}

// pathUUIDs binds several path parameters in order, stopping at the first
// failure.
func pathUUIDs(w http.ResponseWriter, r *http.Request, names ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, len(names))
	for i, name := range names {
		id, ok := pathUUID(w, r, name)
		if !ok {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

// pagination binds ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func pagination(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid page: "+err.Error()))
		return domain.PaginationParams{}, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid limit: "+err.Error()))
		return domain.PaginationParams{}, false
	}
	return domain.NewPaginationParams(page, limit), true
}
