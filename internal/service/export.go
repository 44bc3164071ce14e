package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/repo"
)

// ExportService assembles a flat export of a trip's expenses.
type ExportService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
	rates    *currency.Table
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, expenses repo.ExpenseRepo, rates *currency.Table) *ExportService {
	return &ExportService{trips: trips, expenses: expenses, rates: rates}
}

// Expenses returns one ExpenseExportRow per expense of the trip, newest
// first, each with its amount converted into the trip's budget currency.
func (s *ExportService) Expenses(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExpenseExportRow, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByTrip(ctx, userID, tripID, domain.ExpenseFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ExpenseExportRow, 0, len(expenses))
	for _, e := range expenses {
		converted, _ := s.rates.ConvertFallback(e.Amount, e.Currency, trip.BudgetCurrency)
		rows = append(rows, domain.ExpenseExportRow{
			TripName:       trip.Name,
			Date:           domain.DateKey(e.Date),
			Category:       e.Category,
			Description:    e.Description,
			Amount:         e.Amount,
			Currency:       string(e.Currency),
			BudgetCurrency: string(trip.BudgetCurrency),
			Converted:      converted,
			PaidBy:         e.PaidBy,
			Notes:          e.Notes,
		})
	}
	return rows, nil
}
