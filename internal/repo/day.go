package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/itinerary/internal/domain"
)

// DayRepo defines the persistence operations for Days and their activities.
// Activities are never written one at a time: a day's ordered list is the
// unit of change and is rewritten as a whole inside Mutate.
type DayRepo interface {
	// ListByTrip returns every day of a trip with its activities, by date.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)

	// GetByID retrieves a single day with its activities, scoped to tripID.
	// Returns domain.ErrNotFound if the day does not exist under that trip.
	GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.Day, error)

	// Mutate locks the given days, loads them in the order of dayIDs, passes
	// them to fn and persists whatever fn returns, all in one transaction.
	// Returns domain.ErrNotFound (without calling fn) if any id is unknown.
	// An error from fn rolls back and is returned as is.
	Mutate(ctx context.Context, dayIDs []uuid.UUID, fn MutateFunc) ([]domain.Day, error)
}

// MutateFunc receives locked days and returns their new state. It must
// return the same days, in the same order, with any changes applied.
type MutateFunc func(days []domain.Day) ([]domain.Day, error)

// pgDayRepo is the Postgres implementation of DayRepo.
type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

const dayColumns = `id, trip_id, date, title, travel_from_lodging`

const activityColumns = `
	id, day_id, name, category, time_minutes, duration_minutes, is_fixed_time,
	place_ref, lat, lng, location_name, notes, travel_to_next, created_at, updated_at`

// ListByTrip returns all days of a trip ordered by date.
func (r *pgDayRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE trip_id = @trip_id ORDER BY date`

	days, err := queryDays(ctx, r.db, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	if err := loadActivities(ctx, r.db, days); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	return days, nil
}

// GetByID retrieves one day of a trip.
func (r *pgDayRepo) GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = @id AND trip_id = @trip_id`

	days, err := queryDays(ctx, r.db, q, pgx.NamedArgs{"id": dayID, "trip_id": tripID})
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.GetByID: %w", err)
	}
	if len(days) == 0 {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err := loadActivities(ctx, r.db, days); err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.GetByID: %w", err)
	}
	return days[0], nil
}

// Mutate runs fn over locked days and rewrites their activity lists.
func (r *pgDayRepo) Mutate(ctx context.Context, dayIDs []uuid.UUID, fn MutateFunc) ([]domain.Day, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.Mutate: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock in id order so two mutations touching the same pair of days
	// cannot deadlock.
	locked := slices.Clone(dayIDs)
	slices.SortFunc(locked, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	locked = slices.Compact(locked)

	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = ANY(@ids) ORDER BY id FOR UPDATE`
	found, err := queryDays(ctx, tx, q, pgx.NamedArgs{"ids": locked})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.Mutate: lock: %w", err)
	}
	if len(found) != len(locked) {
		return nil, fmt.Errorf("repo.DayRepo.Mutate: %w", domain.ErrNotFound)
	}
	if err := loadActivities(ctx, tx, found); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.Mutate: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Day, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}
	days := make([]domain.Day, len(dayIDs))
	for i, id := range dayIDs {
		days[i] = byID[id]
	}

	updated, err := fn(days)
	if err != nil {
		return nil, err
	}
	if err := writeDays(ctx, tx, updated); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.Mutate: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.Mutate: commit: %w", err)
	}
	return updated, nil
}

// writeDays replaces the stored activity lists of days. All old rows are
// removed before any insert so an activity can change day within one call.
func writeDays(ctx context.Context, tx pgx.Tx, days []domain.Day) error {
	ids := make([]uuid.UUID, len(days))
	for i, d := range days {
		ids[i] = d.ID
	}
	if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE day_id = ANY(@ids)`, pgx.NamedArgs{"ids": ids}); err != nil {
		return fmt.Errorf("clear activities: %w", err)
	}

	const updateDay = `UPDATE days SET travel_from_lodging = @travel WHERE id = @id`
	const insertActivity = `
		INSERT INTO activities (
			id, day_id, position, name, category, time_minutes, duration_minutes, is_fixed_time,
			place_ref, lat, lng, location_name, notes, travel_to_next, created_at, updated_at)
		VALUES (
			@id, @day_id, @position, @name, @category, @time_minutes, @duration_minutes, @is_fixed_time,
			@place_ref, @lat, @lng, @location_name, @notes, @travel_to_next,
			COALESCE(@created_at, now()), now())`

	batch := &pgx.Batch{}
	for _, d := range days {
		travel, err := encodeSegment(d.TravelFromLodging)
		if err != nil {
			return err
		}
		batch.Queue(updateDay, pgx.NamedArgs{"id": d.ID, "travel": travel})

		for i, a := range d.Activities {
			args, err := activityArgs(d.ID, i, a)
			if err != nil {
				return err
			}
			batch.Queue(insertActivity, args)
		}
	}

	br := tx.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("write activities: %w", err)
		}
	}
	return br.Close()
}

func activityArgs(dayID uuid.UUID, position int, a domain.Activity) (pgx.NamedArgs, error) {
	travel, err := encodeSegment(a.TravelToNext)
	if err != nil {
		return nil, err
	}
	var timeMinutes, duration *int
	if a.Time.IsScheduled() {
		m := int(a.Time)
		timeMinutes = &m
	}
	if a.Duration > 0 {
		d := a.Duration
		duration = &d
	}
	var createdAt any
	if !a.CreatedAt.IsZero() {
		createdAt = a.CreatedAt
	}
	lat, lng := coordArgs(a.Place)

	return pgx.NamedArgs{
		"id":               a.ID,
		"day_id":           dayID,
		"position":         position,
		"name":             a.Name,
		"category":         a.Category,
		"time_minutes":     timeMinutes,
		"duration_minutes": duration,
		"is_fixed_time":    a.IsFixedTime,
		"place_ref":        a.Place.PlaceRef,
		"lat":              lat,
		"lng":              lng,
		"location_name":    a.Place.Name,
		"notes":            a.Notes,
		"travel_to_next":   travel,
		"created_at":       createdAt,
	}, nil
}

func queryDays(ctx context.Context, q db, sql string, args pgx.NamedArgs) ([]domain.Day, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []domain.Day{}
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return days, nil
}

// loadActivities fills the Activities of each day in place, in position order.
func loadActivities(ctx context.Context, q db, days []domain.Day) error {
	if len(days) == 0 {
		return nil
	}
	index := make(map[uuid.UUID]int, len(days))
	ids := make([]uuid.UUID, len(days))
	for i, d := range days {
		index[d.ID] = i
		ids[i] = d.ID
		days[i].Activities = []domain.Activity{}
	}

	const sql = `SELECT ` + activityColumns + ` FROM activities WHERE day_id = ANY(@ids) ORDER BY day_id, position`
	rows, err := q.Query(ctx, sql, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return fmt.Errorf("load activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return fmt.Errorf("scan activity: %w", err)
		}
		i := index[a.DayID]
		days[i].Activities = append(days[i].Activities, a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load activities: rows: %w", err)
	}
	return nil
}

func scanDay(s scanner) (domain.Day, error) {
	var (
		d      domain.Day
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
		travel []byte
	)
	if err := s.Scan(&id, &tripID, &date, &d.Title, &travel); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Day{}, domain.ErrNotFound
		}
		return domain.Day{}, err
	}
	seg, err := decodeSegment(travel)
	if err != nil {
		return domain.Day{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	d.Date = date.Time
	d.TravelFromLodging = seg
	return d, nil
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a        domain.Activity
		id       pgtype.UUID
		dayID    pgtype.UUID
		minutes  pgtype.Int4
		duration pgtype.Int4
		lat, lng pgtype.Float8
		travel   []byte
	)
	err := s.Scan(&id, &dayID, &a.Name, &a.Category, &minutes, &duration, &a.IsFixedTime,
		&a.Place.PlaceRef, &lat, &lng, &a.Place.Name, &a.Notes, &travel, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Activity{}, err
	}
	seg, err := decodeSegment(travel)
	if err != nil {
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.DayID = uuid.UUID(dayID.Bytes)
	a.Time = domain.Unscheduled
	if minutes.Valid {
		a.Time = domain.Clock(minutes.Int32)
	}
	if duration.Valid {
		a.Duration = int(duration.Int32)
	}
	a.Place.Coords = coordsFrom(lat, lng)
	a.TravelToNext = seg
	return a, nil
}

// encodeSegment returns the JSONB value for a segment, nil for NULL.
func encodeSegment(seg *domain.TravelSegment) ([]byte, error) {
	if seg == nil {
		return nil, nil
	}
	b, err := json.Marshal(seg)
	if err != nil {
		return nil, fmt.Errorf("encode travel segment: %w", err)
	}
	return b, nil
}

func decodeSegment(b []byte) (*domain.TravelSegment, error) {
	if b == nil {
		return nil, nil
	}
	var seg domain.TravelSegment
	if err := json.Unmarshal(b, &seg); err != nil {
		return nil, fmt.Errorf("decode travel segment: %w", err)
	}
	return &seg, nil
}

func coordArgs(loc domain.Location) (lat, lng *float64) {
	if loc.Coords == nil {
		return nil, nil
	}
	la, ln := loc.Coords.Lat, loc.Coords.Lng
	return &la, &ln
}

func coordsFrom(lat, lng pgtype.Float8) *domain.LatLng {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &domain.LatLng{Lat: lat.Float64, Lng: lng.Float64}
}
