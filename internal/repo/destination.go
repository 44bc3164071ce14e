package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wandernote/internal/domain"
)

// DestinationRepo defines the persistence operations for Destinations.
// Every operation is scoped to the user owning the parent trip.
type DestinationRepo interface {
	// Create appends a destination to the end of its trip's order.
	// Returns domain.ErrNotFound if the user owns no trip with d.TripID.
	Create(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error)

	// GetByID retrieves a single destination.
	// Returns domain.ErrNotFound if it does not exist under one of the user's trips.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)

	// ListByTrip returns a trip's destinations ordered by order_index.
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error)

	// Update overwrites the mutable fields of a destination.
	// Returns domain.ErrNotFound if it does not exist under one of the user's trips.
	Update(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error)

	// Delete removes a destination and its activities.
	// Returns domain.ErrNotFound if it does not exist under one of the user's trips.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `d.id, d.trip_id, d.city, d.country, d.start_date, d.end_date,
	d.latitude, d.longitude, d.order_index, d.created_at, d.updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, userID uuid.UUID, dest domain.Destination) (domain.Destination, error) {
	// The SELECT yields no row when the trip belongs to someone else, so the
	// insert is skipped and RETURNING produces pgx.ErrNoRows.
	const q = `
		INSERT INTO destinations AS d
		       (trip_id, city, country, start_date, end_date, latitude, longitude, order_index)
		SELECT t.id, @city::text, @country::text, @start_date::date, @end_date::date,
		       @latitude::float8, @longitude::float8,
		       COALESCE((SELECT max(x.order_index) + 1 FROM destinations x WHERE x.trip_id = t.id), 0)
		FROM trips t
		WHERE t.id = @trip_id AND t.user_id = @user_id
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"trip_id":    dest.TripID,
		"user_id":    userID,
		"city":       dest.City,
		"country":    dest.Country,
		"start_date": dest.StartDate,
		"end_date":   dest.EndDate,
		"latitude":   dest.Latitude,
		"longitude":  dest.Longitude,
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		JOIN trips t ON t.id = d.trip_id
		WHERE d.id = @id AND t.user_id = @user_id`

	result, err := scanDestination(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations d
		JOIN trips t ON t.id = d.trip_id
		WHERE d.trip_id = @trip_id AND t.user_id = @user_id
		ORDER BY d.order_index ASC, d.created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByTrip: rows: %w", err)
	}
	return dests, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, userID uuid.UUID, dest domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations AS d
		SET city       = @city,
		    country    = @country,
		    start_date = @start_date,
		    end_date   = @end_date,
		    latitude   = @latitude,
		    longitude  = @longitude,
		    updated_at = now()
		FROM trips t
		WHERE d.id = @id AND t.id = d.trip_id AND t.user_id = @user_id
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":         dest.ID,
		"user_id":    userID,
		"city":       dest.City,
		"country":    dest.Country,
		"start_date": dest.StartDate,
		"end_date":   dest.EndDate,
		"latitude":   dest.Latitude,
		"longitude":  dest.Longitude,
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `
		DELETE FROM destinations AS d
		USING trips t
		WHERE d.id = @id AND t.id = d.trip_id AND t.user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d         domain.Destination
		id        pgtype.UUID
		tripID    pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &d.City, &d.Country, &startDate, &endDate,
		&d.Latitude, &d.Longitude, &d.OrderIndex, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Destination{}, notFound(err)
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	d.StartDate = optionalDate(startDate)
	d.EndDate = optionalDate(endDate)
	return d, nil
}

// optionalDate converts a nullable DATE column into a *time.Time.
func optionalDate(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
