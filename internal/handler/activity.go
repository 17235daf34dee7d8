package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/service"
)

// Location is the JSON form of domain.Location. Lat and Lng travel together.
type Location struct {
	PlaceRef string   `json:"place_ref,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Name     string   `json:"name,omitempty"`
}

// Activity is the JSON representation of an activity. Time is a display
// string such as "9:00 AM", empty when unscheduled.
type Activity struct {
	ID              openapi_types.UUID    `json:"id"`
	DayID           openapi_types.UUID    `json:"day_id"`
	Name            string                `json:"name"`
	Category        string                `json:"category,omitempty"`
	Time            string                `json:"time"`
	DurationMinutes *int                  `json:"duration_minutes,omitempty"`
	IsFixedTime     bool                  `json:"is_fixed_time"`
	Location        Location              `json:"location"`
	Notes           string                `json:"notes,omitempty"`
	TravelToNext    *domain.TravelSegment `json:"travel_to_next,omitempty"`
}

// ActivityRequest is the body of POST .../activities and PUT .../activities/{activityId}.
// A missing or unparseable time leaves the activity unscheduled.
type ActivityRequest struct {
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Time            *string   `json:"time"`
	DurationMinutes *int      `json:"duration_minutes"`
	IsFixedTime     bool      `json:"is_fixed_time"`
	Location        *Location `json:"location"`
	Notes           string    `json:"notes"`
}

// ReorderRequest is the body of POST .../reorder.
type ReorderRequest struct {
	Index *int `json:"index"`
}

// DragRequest is the body of POST .../drag. Position is in grid units from
// the top of the day, as returned by the layout endpoint.
type DragRequest struct {
	Position *float64 `json:"position"`
}

// MoveRequest is the body of POST .../move.
type MoveRequest struct {
	TargetDayID *openapi_types.UUID `json:"target_day_id"`
}

// MoveResponse carries both days touched by a cross-day move.
type MoveResponse struct {
	Source Day `json:"source"`
	Target Day `json:"target"`
}

// AddActivity handles POST /trips/{tripId}/days/{dayId}/activities.
// It responds with the whole day after the edit.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId")
	if !ok {
		return
	}
	var body ActivityRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	day, err := s.itinerary.AddActivity(r.Context(), ids[0], ids[1], requestToInput(body))
	if err != nil {
		writeError(w, r, err, "day")
		return
	}
	writeJSON(w, http.StatusCreated, dayToResponse(day))
}

// UpdateActivity handles PUT /trips/{tripId}/days/{dayId}/activities/{activityId}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId", "activityId")
	if !ok {
		return
	}
	var body ActivityRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	day, err := s.itinerary.UpdateActivity(r.Context(), ids[0], ids[1], ids[2], requestToInput(body))
	if err != nil {
		writeError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, dayToResponse(day))
}

// DeleteActivity handles DELETE /trips/{tripId}/days/{dayId}/activities/{activityId}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId", "activityId")
	if !ok {
		return
	}
	day, err := s.itinerary.DeleteActivity(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		writeError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, dayToResponse(day))
}

// ReorderActivity handles POST .../activities/{activityId}/reorder.
func (s *Server) ReorderActivity(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId", "activityId")
	if !ok {
		return
	}
	var body ReorderRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Index == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("index is required"))
		return
	}
	day, err := s.itinerary.ReorderActivity(r.Context(), ids[0], ids[1], ids[2], *body.Index)
	if err != nil {
		writeError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, dayToResponse(day))
}

// DragActivity handles POST .../activities/{activityId}/drag.
func (s *Server) DragActivity(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId", "activityId")
	if !ok {
		return
	}
	var body DragRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.Position == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("position is required"))
		return
	}
	day, err := s.itinerary.DragActivity(r.Context(), ids[0], ids[1], ids[2], *body.Position)
	if err != nil {
		writeError(w, r, err, "activity")
		return
	}
	writeJSON(w, http.StatusOK, dayToResponse(day))
}

// MoveActivity handles POST .../activities/{activityId}/move.
func (s *Server) MoveActivity(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId", "activityId")
	if !ok {
		return
	}
	var body MoveRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.TargetDayID == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("target_day_id is required"))
		return
	}
	src, dst, err := s.itinerary.MoveActivity(r.Context(), ids[0], ids[1], ids[2], *body.TargetDayID)
	if err != nil {
		writeError(w, r, err, "activity or day")
		return
	}
	writeJSON(w, http.StatusOK, MoveResponse{Source: dayToResponse(src), Target: dayToResponse(dst)})
}

// --- mapping helpers --------------------------------------------------------

func requestToInput(body ActivityRequest) service.ActivityInput {
	in := service.ActivityInput{
		Name:        body.Name,
		Category:    body.Category,
		Time:        domain.Unscheduled,
		IsFixedTime: body.IsFixedTime,
		Notes:       body.Notes,
	}
	if body.Time != nil {
		in.Time = domain.ParseClock(*body.Time)
	}
	if body.DurationMinutes != nil {
		in.Duration = *body.DurationMinutes
	}
	if body.Location != nil {
		in.Place = requestToLocation(*body.Location)
	}
	return in
}

func requestToLocation(l Location) domain.Location {
	loc := domain.Location{PlaceRef: l.PlaceRef, Name: l.Name}
	if l.Lat != nil && l.Lng != nil {
		loc.Coords = &domain.LatLng{Lat: *l.Lat, Lng: *l.Lng}
	}
	return loc
}

func locationToResponse(loc domain.Location) Location {
	resp := Location{PlaceRef: loc.PlaceRef, Name: loc.Name}
	if loc.Coords != nil {
		lat, lng := loc.Coords.Lat, loc.Coords.Lng
		resp.Lat, resp.Lng = &lat, &lng
	}
	return resp
}

func activityToResponse(a domain.Activity) Activity {
	resp := Activity{
		ID:           a.ID,
		DayID:        a.DayID,
		Name:         a.Name,
		Category:     a.Category,
		Time:         a.Time.String(),
		IsFixedTime:  a.IsFixedTime,
		Location:     locationToResponse(a.Place),
		Notes:        a.Notes,
		TravelToNext: a.TravelToNext,
	}
	if a.Duration > 0 {
		d := a.Duration
		resp.DurationMinutes = &d
	}
	return resp
}
