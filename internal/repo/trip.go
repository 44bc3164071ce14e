// Package repo contains all database access logic for the WanderNote API.
// Each resource has its own file with an interface and a Postgres implementation.
// Every query is scoped to the authenticated user through the owning trip's
// user_id, so another user's rows behave exactly like missing rows.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip owned by trip.UserID and returns the persisted
	// record (with DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by userID.
	// Returns domain.ErrNotFound if no such trip exists for that user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// List returns one page of the user's trips ordered by start_date ascending,
	// together with the total number of trips the user has.
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if the user owns no such trip.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, through cascading foreign keys, everything
	// attached to it. Returns domain.ErrNotFound if the user owns no such trip.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, name, start_date, end_date, budget::float8, budget_currency, created_at, updated_at`

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, name, start_date, end_date, budget, budget_currency)
		VALUES (@user_id, @name, @start_date, @end_date, @budget, @budget_currency)
		RETURNING ` + tripColumns + `, 0`

	args := pgx.NamedArgs{
		"user_id":         trip.UserID,
		"name":            trip.Name,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
		"budget":          trip.Budget, // nil becomes NULL
		"budget_currency": string(trip.BudgetCurrency),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, scoped to its owner.
func (r *pgTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `,
		       (SELECT count(*) FROM destinations d WHERE d.trip_id = trips.id)
		FROM trips
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns a page of the user's trips, earliest start first.
// The total is read from a window function so one round trip serves both.
func (r *pgTripRepo) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error) {
	const q = `
		SELECT ` + tripColumns + `,
		       (SELECT count(*) FROM destinations d WHERE d.trip_id = trips.id),
		       count(*) OVER ()
		FROM trips
		WHERE user_id = @user_id
		ORDER BY start_date ASC, created_at ASC
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"user_id": userID, "limit": p.Limit, "offset": p.Offset()}
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	total := 0
	for rows.Next() {
		t, err := scanTrip(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	// An offset past the end returns no rows and so no window total.
	if len(trips) == 0 && p.Offset() > 0 {
		const countQ = `SELECT count(*) FROM trips WHERE user_id = @user_id`
		if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: count: %w", err)
		}
	}

	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name            = @name,
		    start_date      = @start_date,
		    end_date        = @end_date,
		    budget          = @budget,
		    budget_currency = @budget_currency,
		    updated_at      = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + tripColumns + `,
		          (SELECT count(*) FROM destinations d WHERE d.trip_id = trips.id)`

	args := pgx.NamedArgs{
		"id":              trip.ID,
		"user_id":         trip.UserID,
		"name":            trip.Name,
		"start_date":      trip.StartDate,
		"end_date":        trip.EndDate,
		"budget":          trip.Budget,
		"budget_currency": string(trip.BudgetCurrency),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key, scoped to its owner.
func (r *pgTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip. Queries select
// tripColumns followed by the destination count; extra receives any columns
// that follow those.
func scanTrip(s scanner, extra ...any) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		userID    pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		code      string
		count     int64
	)

	dest := []any{&id, &userID, &t.Name, &startDate, &endDate, &t.Budget, &code, &t.CreatedAt, &t.UpdatedAt, &count}
	dest = append(dest, extra...)
	if err := s.Scan(dest...); err != nil {
		return domain.Trip{}, notFound(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.BudgetCurrency = currency.Code(code)
	t.DestinationCount = int(count)
	return t, nil
}

// notFound translates pgx.ErrNoRows into domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}
