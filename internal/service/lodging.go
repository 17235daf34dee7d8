package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/repo"
)

// LodgingService implements business logic for Lodging operations.
// Lodgings are independent of days: coverage is computed on read.
type LodgingService struct {
	trips    repo.TripRepo
	lodgings repo.LodgingRepo
}

// NewLodgingService constructs a LodgingService backed by the provided repos.
func NewLodgingService(trips repo.TripRepo, lodgings repo.LodgingRepo) *LodgingService {
	return &LodgingService{trips: trips, lodgings: lodgings}
}

// Create validates the lodging, verifies the parent trip exists, then persists.
// An empty status defaults to pending.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *LodgingService) Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	if _, err := s.trips.GetByID(ctx, l.TripID); err != nil {
		return domain.Lodging{}, fmt.Errorf("service.LodgingService.Create: %w", err)
	}
	l = normaliseLodging(l)
	if err := validateLodging(l); err != nil {
		return domain.Lodging{}, err
	}
	result, err := s.lodgings.Create(ctx, l)
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("service.LodgingService.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns all lodgings of a trip, including cancelled ones.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *LodgingService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LodgingService.ListByTrip: %w", err)
	}
	lodgings, err := s.lodgings.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LodgingService.ListByTrip: %w", err)
	}
	if lodgings == nil {
		return []domain.Lodging{}, nil
	}
	return lodgings, nil
}

// Update validates and persists changes to an existing lodging.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// lodging does not exist under the given trip.
func (s *LodgingService) Update(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	l = normaliseLodging(l)
	if err := validateLodging(l); err != nil {
		return domain.Lodging{}, err
	}
	result, err := s.lodgings.Update(ctx, l)
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("service.LodgingService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a lodging, scoped to the given trip.
// Returns domain.ErrNotFound if it does not exist under that trip.
func (s *LodgingService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.lodgings.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.LodgingService.Delete: %w", err)
	}
	return nil
}

func normaliseLodging(l domain.Lodging) domain.Lodging {
	l.Name = strings.TrimSpace(l.Name)
	if l.Status == "" {
		l.Status = domain.LodgingPending
	}
	l.CheckIn = domain.DateOnly(l.CheckIn)
	l.CheckOut = domain.DateOnly(l.CheckOut)
	return l
}

// validateLodging enforces business rules common to both Create and Update.
//   - Name must be non-empty.
//   - Status must be a known value.
//   - CheckOut must be after CheckIn; a stay covers at least one night.
func validateLodging(l domain.Lodging) error {
	if l.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !l.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, l.Status)
	}
	if !l.CheckOut.After(l.CheckIn) {
		return fmt.Errorf("%w: check_out must be after check_in", domain.ErrValidation)
	}
	return nil
}
