package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary/internal/domain"
)

// Lodging is the JSON representation of a lodging record.
type Lodging struct {
	ID        openapi_types.UUID `json:"id"`
	TripID    openapi_types.UUID `json:"trip_id"`
	Name      string             `json:"name"`
	CheckIn   openapi_types.Date `json:"check_in"`
	CheckOut  openapi_types.Date `json:"check_out"`
	Status    string             `json:"status"`
	Location  Location           `json:"location"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// LodgingRequest is the body of POST and PUT on lodgings. Status defaults
// to "pending".
type LodgingRequest struct {
	Name     string              `json:"name"`
	CheckIn  *openapi_types.Date `json:"check_in"`
	CheckOut *openapi_types.Date `json:"check_out"`
	Status   string              `json:"status"`
	Location *Location           `json:"location"`
}

// ListLodgings handles GET /trips/{tripId}/lodgings.
func (s *Server) ListLodgings(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	records, err := s.lodgings.ListByTrip(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip")
		return
	}
	out := make([]Lodging, len(records))
	for i, l := range records {
		out[i] = lodgingToResponse(l)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateLodging handles POST /trips/{tripId}/lodgings.
func (s *Server) CreateLodging(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	l, ok := decodeLodging(w, r)
	if !ok {
		return
	}
	l.TripID = tripID

	created, err := s.lodgings.Create(r.Context(), l)
	if err != nil {
		writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, lodgingToResponse(created))
}

// UpdateLodging handles PUT /trips/{tripId}/lodgings/{lodgingId}.
func (s *Server) UpdateLodging(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "lodgingId")
	if !ok {
		return
	}
	l, ok := decodeLodging(w, r)
	if !ok {
		return
	}
	l.TripID, l.ID = ids[0], ids[1]

	updated, err := s.lodgings.Update(r.Context(), l)
	if err != nil {
		writeError(w, r, err, "lodging")
		return
	}
	writeJSON(w, http.StatusOK, lodgingToResponse(updated))
}

// DeleteLodging handles DELETE /trips/{tripId}/lodgings/{lodgingId}.
func (s *Server) DeleteLodging(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "lodgingId")
	if !ok {
		return
	}
	if err := s.lodgings.Delete(r.Context(), ids[0], ids[1]); err != nil {
		writeError(w, r, err, "lodging")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func decodeLodging(w http.ResponseWriter, r *http.Request) (domain.Lodging, bool) {
	var body LodgingRequest
	if !decodeJSON(w, r, &body) {
		return domain.Lodging{}, false
	}
	if body.CheckIn == nil || body.CheckOut == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("check_in and check_out are required"))
		return domain.Lodging{}, false
	}
	l := domain.Lodging{
		Name:     body.Name,
		CheckIn:  body.CheckIn.Time,
		CheckOut: body.CheckOut.Time,
		Status:   domain.LodgingStatus(body.Status),
	}
	if body.Location != nil {
		l.Place = requestToLocation(*body.Location)
	}
	return l, true
}

func lodgingToResponse(l domain.Lodging) Lodging {
	return Lodging{
		ID:        l.ID,
		TripID:    l.TripID,
		Name:      l.Name,
		CheckIn:   openapi_types.Date{Time: l.CheckIn},
		CheckOut:  openapi_types.Date{Time: l.CheckOut},
		Status:    string(l.Status),
		Location:  locationToResponse(l.Place),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
