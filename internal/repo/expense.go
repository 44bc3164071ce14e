package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	// Create inserts an expense under one of the user's trips.
	// Returns domain.ErrNotFound if the user owns no trip with e.TripID.
	Create(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error)

	// ListByTrip returns a trip's expenses, newest date first, narrowed by f.
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error)

	// Update overwrites the mutable fields of an expense.
	Update(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)

	// Delete removes an expense.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `e.id, e.trip_id, e.category, e.description, e.amount::float8, e.currency,
	e.date, e.paid_by, e.notes, e.created_at, e.updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, userID uuid.UUID, exp domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses AS e
		       (trip_id, category, description, amount, currency, date, paid_by, notes)
		SELECT t.id, @category::text, @description::text, @amount::numeric, @currency::text,
		       @date::date, @paid_by::text, @notes::text
		FROM trips t
		WHERE t.id = @trip_id AND t.user_id = @user_id
		RETURNING ` + expenseColumns

	args := expenseArgs(exp)
	args["trip_id"] = exp.TripID
	args["user_id"] = userID

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN trips t ON t.id = e.trip_id
		WHERE e.id = @id AND t.user_id = @user_id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error) {
	// A NULL category argument disables the filter.
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN trips t ON t.id = e.trip_id
		WHERE e.trip_id = @trip_id AND t.user_id = @user_id
		  AND (@category::text IS NULL OR e.category = @category::text)
		ORDER BY e.date DESC, e.created_at DESC`

	var category *string
	if f.Category != nil {
		c := string(*f.Category)
		category = &c
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID, "user_id": userID, "category": category})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTrip: rows: %w", err)
	}
	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, userID uuid.UUID, exp domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses AS e
		SET category    = @category,
		    description = @description,
		    amount      = @amount,
		    currency    = @currency,
		    date        = @date,
		    paid_by     = @paid_by,
		    notes       = @notes,
		    updated_at  = now()
		FROM trips t
		WHERE e.id = @id AND t.id = e.trip_id AND t.user_id = @user_id
		RETURNING ` + expenseColumns

	args := expenseArgs(exp)
	args["id"] = exp.ID
	args["user_id"] = userID

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `
		DELETE FROM expenses AS e
		USING trips t
		WHERE e.id = @id AND t.id = e.trip_id AND t.user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func expenseArgs(e domain.Expense) pgx.NamedArgs {
	return pgx.NamedArgs{
		"category":    string(e.Category),
		"description": e.Description,
		"amount":      e.Amount,
		"currency":    string(e.Currency),
		"date":        e.Date,
		"paid_by":     e.PaidBy,
		"notes":       e.Notes,
	}
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e        domain.Expense
		id       pgtype.UUID
		tripID   pgtype.UUID
		category string
		code     string
		date     pgtype.Date
	)

	err := s.Scan(&id, &tripID, &category, &e.Description, &e.Amount, &code,
		&date, &e.PaidBy, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return domain.Expense{}, notFound(err)
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Category = domain.ParseCategory(category)
	e.Currency = currency.Code(code)
	e.Date = date.Time
	return e, nil
}
