package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wandernote/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
// Ownership runs activity → destination → trip → user.
type ActivityRepo interface {
	// Create appends an activity to the end of its destination's day.
	// Returns domain.ErrNotFound if the destination is not under one of the user's trips.
	Create(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error)

	// ListByDestination returns a destination's activities in day order.
	ListByDestination(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error)

	// ListByTrip returns the activities of every destination of a trip.
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Activity, error)

	// Update overwrites the mutable fields of an activity.
	Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)

	// Delete removes an activity.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `a.id, a.destination_id, a.date, a.name, to_char(a.time, 'HH24:MI'),
	a.location, a.notes, a.latitude, a.longitude, a.order_index, a.created_at, a.updated_at`

// activityOrder sorts activities the way a day is read: by date, then clock
// time with untimed entries last, then insertion order.
const activityOrder = `ORDER BY a.date ASC, a.time ASC NULLS LAST, a.order_index ASC, a.created_at ASC`

func (r *pgActivityRepo) Create(ctx context.Context, userID uuid.UUID, act domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities AS a
		       (destination_id, date, name, time, location, notes, latitude, longitude, order_index)
		SELECT d.id, @date::date, @name::text, @time::time, @location::text, @notes::text,
		       @latitude::float8, @longitude::float8,
		       COALESCE((SELECT max(x.order_index) + 1 FROM activities x
		                 WHERE x.destination_id = d.id AND x.date = @date::date), 0)
		FROM destinations d
		JOIN trips t ON t.id = d.trip_id
		WHERE d.id = @destination_id AND t.user_id = @user_id
		RETURNING ` + activityColumns

	args := activityArgs(act)
	args["destination_id"] = act.DestinationID
	args["user_id"] = userID

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities a
		JOIN destinations d ON d.id = a.destination_id
		JOIN trips t ON t.id = d.trip_id
		WHERE a.id = @id AND t.user_id = @user_id`

	result, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByDestination(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities a
		JOIN destinations d ON d.id = a.destination_id
		JOIN trips t ON t.id = d.trip_id
		WHERE a.destination_id = @destination_id AND t.user_id = @user_id
		` + activityOrder

	acts, err := r.list(ctx, q, pgx.NamedArgs{"destination_id": destinationID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByDestination: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities a
		JOIN destinations d ON d.id = a.destination_id
		JOIN trips t ON t.id = d.trip_id
		WHERE d.trip_id = @trip_id AND t.user_id = @user_id
		` + activityOrder

	acts, err := r.list(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTrip: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Activity, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	acts := []domain.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		acts = append(acts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, userID uuid.UUID, act domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities AS a
		SET date       = @date::date,
		    name       = @name,
		    time       = @time::time,
		    location   = @location,
		    notes      = @notes,
		    latitude   = @latitude,
		    longitude  = @longitude,
		    updated_at = now()
		FROM destinations d
		JOIN trips t ON t.id = d.trip_id
		WHERE a.id = @id AND d.id = a.destination_id AND t.user_id = @user_id
		RETURNING ` + activityColumns

	args := activityArgs(act)
	args["id"] = act.ID
	args["user_id"] = userID

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `
		DELETE FROM activities AS a
		USING destinations d, trips t
		WHERE a.id = @id AND d.id = a.destination_id AND t.id = d.trip_id AND t.user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// activityArgs holds the columns shared by insert and update.
func activityArgs(a domain.Activity) pgx.NamedArgs {
	var clock *string
	if a.Time != nil {
		s := a.Time.String()
		clock = &s
	}
	return pgx.NamedArgs{
		"date":      a.Date,
		"name":      a.Name,
		"time":      clock,
		"location":  a.Location,
		"notes":     a.Notes,
		"latitude":  a.Latitude,
		"longitude": a.Longitude,
	}
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		destID pgtype.UUID
		date   pgtype.Date
		clock  *string
	)

	err := s.Scan(&id, &destID, &date, &a.Name, &clock, &a.Location, &a.Notes,
		&a.Latitude, &a.Longitude, &a.OrderIndex, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Activity{}, notFound(err)
	}

	a.ID = uuid.UUID(id.Bytes)
	a.DestinationID = uuid.UUID(destID.Bytes)
	a.Date = date.Time
	if clock != nil {
		ct, err := domain.ParseClockTime(*clock)
		if err != nil {
			return domain.Activity{}, err
		}
		a.Time = &ct
	}
	return a, nil
}
