package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary/internal/domain"
)

// LodgingRepo defines the persistence operations for Lodgings.
// All write and single-read operations are scoped by tripID to enforce ownership.
type LodgingRepo interface {
	// Create inserts a new lodging and returns the persisted record.
	Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error)

	// GetByID retrieves a lodging scoped to the given tripID.
	// Returns domain.ErrNotFound if it does not exist under that trip.
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Lodging, error)

	// ListByTrip returns all lodgings for a trip ordered by check-in.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error)

	// Update overwrites the mutable fields of a lodging, scoped to its trip.
	// Returns domain.ErrNotFound if it does not exist under that trip.
	Update(ctx context.Context, l domain.Lodging) (domain.Lodging, error)

	// Delete removes a lodging, scoped to the given tripID.
	// Returns domain.ErrNotFound if it does not exist under that trip.
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// pgLodgingRepo is the Postgres implementation of LodgingRepo.
type pgLodgingRepo struct {
	db db
}

// NewLodgingRepo constructs a LodgingRepo backed by the provided db connection.
func NewLodgingRepo(db db) LodgingRepo {
	return &pgLodgingRepo{db: db}
}

const lodgingColumns = `
	id, trip_id, name, check_in, check_out, status,
	place_ref, lat, lng, location_name, created_at, updated_at`

func lodgingArgs(l domain.Lodging) pgx.NamedArgs {
	lat, lng := coordArgs(l.Place)
	return pgx.NamedArgs{
		"id":            l.ID,
		"trip_id":       l.TripID,
		"name":          l.Name,
		"check_in":      domain.DateOnly(l.CheckIn),
		"check_out":     domain.DateOnly(l.CheckOut),
		"status":        string(l.Status),
		"place_ref":     l.Place.PlaceRef,
		"lat":           lat,
		"lng":           lng,
		"location_name": l.Place.Name,
	}
}

func (r *pgLodgingRepo) Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	const q = `
		INSERT INTO lodgings (trip_id, name, check_in, check_out, status, place_ref, lat, lng, location_name)
		VALUES (@trip_id, @name, @check_in, @check_out, @status, @place_ref, @lat, @lng, @location_name)
		RETURNING ` + lodgingColumns

	result, err := scanLodging(r.db.QueryRow(ctx, q, lodgingArgs(l)))
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("repo.LodgingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLodgingRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Lodging, error) {
	const q = `SELECT ` + lodgingColumns + ` FROM lodgings WHERE id = @id AND trip_id = @trip_id`

	result, err := scanLodging(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("repo.LodgingRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgLodgingRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error) {
	const q = `
		SELECT ` + lodgingColumns + `
		FROM lodgings
		WHERE trip_id = @trip_id
		ORDER BY check_in, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.LodgingRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	lodgings := []domain.Lodging{}
	for rows.Next() {
		l, err := scanLodging(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LodgingRepo.ListByTrip: scan: %w", err)
		}
		lodgings = append(lodgings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LodgingRepo.ListByTrip: rows: %w", err)
	}
	return lodgings, nil
}

func (r *pgLodgingRepo) Update(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	const q = `
		UPDATE lodgings
		SET name          = @name,
		    check_in      = @check_in,
		    check_out     = @check_out,
		    status        = @status,
		    place_ref     = @place_ref,
		    lat           = @lat,
		    lng           = @lng,
		    location_name = @location_name,
		    updated_at    = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + lodgingColumns

	result, err := scanLodging(r.db.QueryRow(ctx, q, lodgingArgs(l)))
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("repo.LodgingRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgLodgingRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM lodgings WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.LodgingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LodgingRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanLodging(s scanner) (domain.Lodging, error) {
	var (
		l        domain.Lodging
		id       pgtype.UUID
		tripID   pgtype.UUID
		checkIn  pgtype.Date
		checkOut pgtype.Date
		status   string
		lat, lng pgtype.Float8
	)
	err := s.Scan(&id, &tripID, &l.Name, &checkIn, &checkOut, &status,
		&l.Place.PlaceRef, &lat, &lng, &l.Place.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Lodging{}, domain.ErrNotFound
		}
		return domain.Lodging{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	l.CheckIn = checkIn.Time
	l.CheckOut = checkOut.Time
	l.Status = domain.LodgingStatus(status)
	l.Place.Coords = coordsFrom(lat, lng)
	return l, nil
}
