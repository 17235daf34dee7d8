package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/lodging"
	"github.com/pkordes/itinerary/internal/service"
	"github.com/pkordes/itinerary/internal/timeline"
)

// Day is the JSON representation of a day with its ordered activities.
type Day struct {
	ID                openapi_types.UUID    `json:"id"`
	TripID            openapi_types.UUID    `json:"trip_id"`
	Date              openapi_types.Date    `json:"date"`
	Title             string                `json:"title"`
	Activities        []Activity            `json:"activities"`
	TravelFromLodging *domain.TravelSegment `json:"travel_from_lodging,omitempty"`
}

// Conflicts lists overlapping activities of a day.
type Conflicts struct {
	ActivityIDs []openapi_types.UUID `json:"activity_ids"`
	Pairs       []timeline.Pair      `json:"pairs"`
}

// NightLodging is the lodging matched to one night. Ambiguous is set when
// more than one active booking covers it.
type NightLodging struct {
	Date      openapi_types.Date `json:"date"`
	Matches   []Lodging          `json:"matches"`
	Ambiguous bool               `json:"ambiguous"`
}

// DayDetail is the body of GET /trips/{tripId}/days/{dayId}.
type DayDetail struct {
	Day
	Conflicts Conflicts    `json:"conflicts"`
	Lodging   NightLodging `json:"lodging"`
}

// Slot is the grid placement of one activity. Top and Height are omitted
// for unscheduled activities.
type Slot struct {
	ActivityID openapi_types.UUID `json:"activity_id"`
	Scheduled  bool               `json:"scheduled"`
	Top        *float64           `json:"top,omitempty"`
	Height     *float64           `json:"height,omitempty"`
}

// DayLayout is the body of GET /trips/{tripId}/days/{dayId}/layout.
type DayLayout struct {
	PixelsPerHour float64 `json:"pixels_per_hour"`
	TotalHeight   float64 `json:"total_height"`
	Slots         []Slot  `json:"slots"`
}

// Gap is a run of nights without lodging, half-open [start, end).
type Gap struct {
	Start  openapi_types.Date `json:"start"`
	End    openapi_types.Date `json:"end"`
	Nights int                `json:"nights"`
}

// CoverageResponse is the body of GET /trips/{tripId}/coverage.
type CoverageResponse struct {
	Gaps   []Gap          `json:"gaps"`
	Nights []NightLodging `json:"nights"`
}

// ListDays handles GET /trips/{tripId}/days.
func (s *Server) ListDays(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	days, err := s.itinerary.ListDays(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip")
		return
	}
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = dayToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetDay handles GET /trips/{tripId}/days/{dayId}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId")
	if !ok {
		return
	}
	view, err := s.itinerary.GetDay(r.Context(), ids[0], ids[1])
	if err != nil {
		writeError(w, r, err, "day")
		return
	}

	conflicts := Conflicts{ActivityIDs: view.Conflicts.IDs(), Pairs: view.Conflicts.Pairs}
	if conflicts.ActivityIDs == nil {
		conflicts.ActivityIDs = []openapi_types.UUID{}
	}
	if conflicts.Pairs == nil {
		conflicts.Pairs = []timeline.Pair{}
	}
	writeJSON(w, http.StatusOK, DayDetail{
		Day:       dayToResponse(view.Day),
		Conflicts: conflicts,
		Lodging:   matchToResponse(view.Lodging),
	})
}

// GetLayout handles GET /trips/{tripId}/days/{dayId}/layout.
func (s *Server) GetLayout(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId")
	if !ok {
		return
	}
	layout, err := s.itinerary.Layout(r.Context(), ids[0], ids[1])
	if err != nil {
		writeError(w, r, err, "day")
		return
	}
	writeJSON(w, http.StatusOK, layoutToResponse(layout))
}

// EnrichDay handles POST /trips/{tripId}/days/{dayId}/enrich. Enrichment runs
// in the background, so the response is 202 with no body.
func (s *Server) EnrichDay(w http.ResponseWriter, r *http.Request) {
	ids, ok := pathUUIDs(w, r, "tripId", "dayId")
	if !ok {
		return
	}
	if err := s.itinerary.Enrich(r.Context(), ids[0], ids[1]); err != nil {
		writeError(w, r, err, "day")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GetCoverage handles GET /trips/{tripId}/coverage.
func (s *Server) GetCoverage(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	cov, err := s.itinerary.Coverage(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip")
		return
	}

	resp := CoverageResponse{
		Gaps:   make([]Gap, len(cov.Gaps)),
		Nights: make([]NightLodging, len(cov.Nights)),
	}
	for i, g := range cov.Gaps {
		resp.Gaps[i] = Gap{
			Start:  openapi_types.Date{Time: g.Start},
			End:    openapi_types.Date{Time: g.End},
			Nights: g.Nights(),
		}
	}
	for i, m := range cov.Nights {
		resp.Nights[i] = matchToResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- mapping helpers --------------------------------------------------------

func dayToResponse(d domain.Day) Day {
	resp := Day{
		ID:                d.ID,
		TripID:            d.TripID,
		Date:              openapi_types.Date{Time: d.Date},
		Title:             d.Title,
		Activities:        make([]Activity, len(d.Activities)),
		TravelFromLodging: d.TravelFromLodging,
	}
	for i, a := range d.Activities {
		resp.Activities[i] = activityToResponse(a)
	}
	return resp
}

func matchToResponse(m lodging.Match) NightLodging {
	resp := NightLodging{
		Date:      openapi_types.Date{Time: m.Date},
		Matches:   make([]Lodging, len(m.Lodgings)),
		Ambiguous: m.Ambiguous(),
	}
	for i, l := range m.Lodgings {
		resp.Matches[i] = lodgingToResponse(l)
	}
	return resp
}

func layoutToResponse(l service.Layout) DayLayout {
	resp := DayLayout{
		PixelsPerHour: l.PixelsPerHour,
		TotalHeight:   l.TotalHeight,
		Slots:         make([]Slot, len(l.Slots)),
	}
	for i, sl := range l.Slots {
		slot := Slot{ActivityID: sl.ActivityID, Scheduled: sl.Scheduled}
		if sl.Scheduled {
			top, height := sl.Bounds.Top, sl.Bounds.Height
			slot.Top, slot.Height = &top, &height
		}
		resp.Slots[i] = slot
	}
	return resp
}
