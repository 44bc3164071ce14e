package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/budget"
	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/repo"
)

// BudgetService computes a trip's spending against its budget.
type BudgetService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
	rates    *currency.Table
}

// NewBudgetService constructs a BudgetService.
func NewBudgetService(trips repo.TripRepo, expenses repo.ExpenseRepo, rates *currency.Table) *BudgetService {
	return &BudgetService{trips: trips, expenses: expenses, rates: rates}
}

// Summary loads the trip and all of its expenses and aggregates them in the
// trip's budget currency.
func (s *BudgetService) Summary(ctx context.Context, userID, tripID uuid.UUID) (budget.Summary, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return budget.Summary{}, err
	}
	expenses, err := s.expenses.ListByTrip(ctx, userID, tripID, domain.ExpenseFilter{})
	if err != nil {
		return budget.Summary{}, err
	}
	return budget.Summarize(trip, expenses, s.rates), nil
}
