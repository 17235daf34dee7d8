// Package routing is the HTTP client for the external places/routing
// service that estimates travel between two stops.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/enrich"
)

// DefaultTimeout bounds a single routing request.
const DefaultTimeout = 5 * time.Second

// ErrUnavailable is returned for any non-success answer from the routing
// service: timeouts, rate limits, server errors, or an unusable body.
var ErrUnavailable = errors.New("routing service unavailable")

// Client calls the routing service over HTTP. It implements enrich.Router.
type Client struct {
	http *resty.Client
}

var _ enrich.Router = (*Client)(nil)

// NewClient creates a Client rooted at baseURL. A non-positive timeout
// uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{http: c}
}

type waypoint struct {
	PlaceID string   `json:"placeId,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Query   string   `json:"query,omitempty"`
}

type routeRequest struct {
	Origin      waypoint `json:"origin"`
	Destination waypoint `json:"destination"`
	Mode        string   `json:"mode"`
}

type routeResponse struct {
	Method   string `json:"method"`
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

func toWire(w enrich.Waypoint) waypoint {
	switch w.Kind {
	case enrich.WaypointPlace:
		return waypoint{PlaceID: w.PlaceRef}
	case enrich.WaypointCoords:
		lat, lng := w.Coords.Lat, w.Coords.Lng
		return waypoint{Lat: &lat, Lng: &lng}
	default:
		return waypoint{Query: w.Text}
	}
}

// Route asks the service for a travel estimate from one waypoint to the next.
// A method the service reports that is not one we know falls back to mode.
func (c *Client) Route(ctx context.Context, from, to enrich.Waypoint, mode domain.TravelMethod) (domain.TravelSegment, error) {
	body := routeRequest{Origin: toWire(from), Destination: toWire(to), Mode: string(mode)}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&body).
		Post("/v1/route")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.TravelSegment{}, fmt.Errorf("routing.Client.Route: %w", ctxErr)
		}
		return domain.TravelSegment{}, fmt.Errorf("routing.Client.Route: %w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return domain.TravelSegment{}, fmt.Errorf("routing.Client.Route: %w: status %d", ErrUnavailable, resp.StatusCode())
	}

	var rr routeResponse
	if err := json.Unmarshal(resp.Body(), &rr); err != nil {
		return domain.TravelSegment{}, fmt.Errorf("routing.Client.Route: %w: decode: %v", ErrUnavailable, err)
	}

	method := domain.TravelMethod(rr.Method)
	if !method.Valid() {
		method = mode
	}
	return domain.TravelSegment{Method: method, Distance: rr.Distance, Duration: rr.Duration}, nil
}
