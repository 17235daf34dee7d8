package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/itinerary/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_name", "date", "day_title", "position", "name", "category",
	"start", "end", "duration_minutes", "fixed", "location", "notes",
	"travel_method", "travel_distance", "travel_duration", "lodging",
}

// ExportRow is one row of the JSON export.
type ExportRow struct {
	TripName        string                `json:"trip_name"`
	Date            openapi_types.Date    `json:"date"`
	DayTitle        string                `json:"day_title"`
	Position        int                   `json:"position,omitempty"`
	Name            string                `json:"name,omitempty"`
	Category        string                `json:"category,omitempty"`
	Start           string                `json:"start,omitempty"`
	End             string                `json:"end,omitempty"`
	DurationMinutes int                   `json:"duration_minutes,omitempty"`
	IsFixedTime     bool                  `json:"is_fixed_time,omitempty"`
	Location        string                `json:"location,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	TravelToNext    *domain.TravelSegment `json:"travel_to_next,omitempty"`
	Lodging         string                `json:"lodging,omitempty"`
}

// GetExport handles GET /trips/{tripId}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return
	}
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("invalid format: "+err.Error()))
		return
	}
	wantCSV := false
	if format != nil {
		switch *format {
		case "csv":
			wantCSV = true
		case "json":
		default:
			writeJSON(w, http.StatusUnprocessableEntity, requestBody(`format must be "csv" or "json"`))
			return
		}
	}

	rows, err := s.export.Export(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err, "trip")
		return
	}

	if wantCSV {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, len(rows))
	for i, row := range rows {
		out[i] = exportRowToResponse(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV. The whole body is built first so a failure
// can still become a 500 rather than a truncated file.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(exportRowToCSVRecord(row))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		writeJSON(w, http.StatusInternalServerError,
			ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func exportRowToResponse(r domain.ExportRow) ExportRow {
	return ExportRow{
		TripName:        r.TripName,
		Date:            openapi_types.Date{Time: r.Date},
		DayTitle:        r.DayTitle,
		Position:        r.Position,
		Name:            r.Name,
		Category:        r.Category,
		Start:           r.Start.String(),
		End:             r.End.String(),
		DurationMinutes: r.Duration,
		IsFixedTime:     r.IsFixedTime,
		Location:        r.Location,
		Notes:           r.Notes,
		TravelToNext:    r.TravelToNext,
		Lodging:         r.Lodging,
	}
}

// exportRowToCSVRecord flattens a row. Empty days leave the activity
// columns blank.
func exportRowToCSVRecord(r domain.ExportRow) []string {
	var position, duration, fixed string
	if r.Position > 0 {
		position = strconv.Itoa(r.Position)
		duration = strconv.Itoa(r.Duration)
		fixed = strconv.FormatBool(r.IsFixedTime)
	}
	var method, distance, travelTime string
	if seg := r.TravelToNext; seg != nil && seg.Method != domain.TravelNone {
		method, distance, travelTime = string(seg.Method), seg.Distance, seg.Duration
	}
	return []string{
		r.TripName,
		r.Date.Format("2006-01-02"),
		r.DayTitle,
		position,
		r.Name,
		r.Category,
		r.Start.String(),
		r.End.String(),
		duration,
		fixed,
		r.Location,
		r.Notes,
		method,
		distance,
		travelTime,
		r.Lodging,
	}
}
