package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/repo"
)

// ExpenseService implements business logic for Expense operations.
type ExpenseService struct {
	repo  repo.ExpenseRepo
	trips repo.TripRepo
	rates *currency.Table
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(r repo.ExpenseRepo, trips repo.TripRepo, rates *currency.Table) *ExpenseService {
	return &ExpenseService{repo: r, trips: trips, rates: rates}
}

// Create validates and persists a new expense.
func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	if err := s.normalize(&e); err != nil {
		return domain.Expense{}, err
	}
	return s.repo.Create(ctx, userID, e)
}

// GetByID returns a single expense.
func (s *ExpenseService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// ListByTrip returns a trip's expenses, newest first.
// Returns domain.ErrNotFound when the trip is not the user's.
func (s *ExpenseService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.repo.ListByTrip(ctx, userID, tripID, f)
}

// Update validates and updates an expense.
func (s *ExpenseService) Update(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	if err := s.normalize(&e); err != nil {
		return domain.Expense{}, err
	}
	return s.repo.Update(ctx, userID, e)
}

// Delete removes an expense.
func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *ExpenseService) normalize(e *domain.Expense) error {
	e.Description = strings.TrimSpace(e.Description)
	if e.Description == "" {
		return validationError("description is required")
	}
	if !validAmount(e.Amount) {
		return validationError("amount must be between 0 and %.2f", maxAmount)
	}
	if e.Date.IsZero() {
		return validationError("date is required")
	}
	e.Date = domain.CalendarDate(e.Date)
	e.Category = domain.ParseCategory(string(e.Category))

	if e.Currency == "" {
		e.Currency = currency.USD
	}
	if !s.rates.IsSupported(e.Currency) {
		return validationError("unsupported currency %q", e.Currency)
	}
	e.PaidBy = strings.TrimSpace(e.PaidBy)
	return nil
}
