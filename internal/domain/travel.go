package domain

// TravelMethod is the mode of a travel segment.
type TravelMethod string

// Travel methods understood by the routing collaborator. TravelNone marks an
// activity after which no segment applies, such as the last stop of a day.
const (
	TravelWalking   TravelMethod = "walking"
	TravelDriving   TravelMethod = "driving"
	TravelTransit   TravelMethod = "transit"
	TravelBicycling TravelMethod = "bicycling"
	TravelNone      TravelMethod = "none"
)

// Valid reports whether m is one of the known methods.
func (m TravelMethod) Valid() bool {
	switch m {
	case TravelWalking, TravelDriving, TravelTransit, TravelBicycling, TravelNone:
		return true
	}
	return false
}

// TravelSegment is derived data: how to get from one stop to the next.
// Distance and Duration are display strings as returned by the routing
// provider (e.g. "1.2 km", "15 mins").
type TravelSegment struct {
	Method   TravelMethod `json:"method"`
	Distance string       `json:"distance,omitempty"`
	Duration string       `json:"duration,omitempty"`
}

// NoTravel is the segment attached to the last activity of a day.
func NoTravel() *TravelSegment {
	return &TravelSegment{Method: TravelNone}
}
