package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/service"
)

func TestBudgetService_Summary(t *testing.T) {
	tripID := uuid.New()
	budget := 1000.0
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: tripID, Budget: &budget, BudgetCurrency: currency.USD}, nil
		},
	}
	expenses := &mockExpenseRepo{
		listByTrip: func(_ context.Context, _, _ uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error) {
			assert.Nil(t, f.Category, "summary covers every category")
			return []domain.Expense{
				{Category: domain.CategoryFood, Amount: 50, Currency: currency.USD},
				{Category: domain.CategoryTransport, Amount: 100, Currency: currency.EUR},
			}, nil
		},
	}
	svc := service.NewBudgetService(trips, expenses, currency.Default())

	sum, err := svc.Summary(context.Background(), uuid.New(), tripID)

	require.NoError(t, err)
	assert.InDelta(t, 158.0, sum.TotalSpent, 1e-9)
	require.NotNil(t, sum.Remaining)
	assert.InDelta(t, 842.0, *sum.Remaining, 1e-9)
	require.NotNil(t, sum.PercentUsed)
	assert.InDelta(t, 15.8, *sum.PercentUsed, 1e-9)
}

func TestBudgetService_Summary_ForeignTrip(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewBudgetService(trips, &mockExpenseRepo{}, currency.Default())

	_, err := svc.Summary(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
