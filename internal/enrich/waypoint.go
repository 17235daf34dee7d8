// Package enrich attaches travel segments between consecutive stops of a day.
//
// Enrichment runs after an edit has already been applied and shown. It takes
// a snapshot of the day, asks a Router for each leg, and produces a Patch.
// The Patch is merged into whatever the day looks like when it resolves,
// matching legs by activity identity and silently dropping legs whose
// endpoints no longer sit next to each other.
package enrich

import "github.com/pkordes/itinerary/internal/domain"

// WaypointKind says which descriptor a Waypoint carries.
type WaypointKind string

const (
	WaypointPlace  WaypointKind = "place"
	WaypointCoords WaypointKind = "coords"
	WaypointText   WaypointKind = "text"
)

// Waypoint is a single location descriptor sent to the router.
type Waypoint struct {
	Kind     WaypointKind
	PlaceRef string
	Coords   domain.LatLng
	Text     string
}

// WaypointFor picks the most precise descriptor in loc: a place reference,
// then coordinates, then free text. ok is false if loc has none.
func WaypointFor(loc domain.Location) (w Waypoint, ok bool) {
	switch {
	case loc.PlaceRef != "":
		return Waypoint{Kind: WaypointPlace, PlaceRef: loc.PlaceRef}, true
	case loc.Coords != nil:
		return Waypoint{Kind: WaypointCoords, Coords: *loc.Coords}, true
	case loc.Name != "":
		return Waypoint{Kind: WaypointText, Text: loc.Name}, true
	}
	return Waypoint{}, false
}
