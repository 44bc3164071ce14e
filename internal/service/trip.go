// Package service contains the business logic for the WanderNote API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo            repo.TripRepo
	rates           *currency.Table
	defaultCurrency currency.Code
}

// NewTripService constructs a TripService backed by the provided TripRepo.
// Trips created without a budget currency get defaultCurrency.
func NewTripService(r repo.TripRepo, rates *currency.Table, defaultCurrency currency.Code) *TripService {
	return &TripService{repo: r, rates: rates, defaultCurrency: defaultCurrency}
}

// Create validates and persists a new trip.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := s.normalize(&trip); err != nil {
		return domain.Trip{}, err
	}
	return s.repo.Create(ctx, trip)
}

// GetByID returns a single trip owned by userID.
func (s *TripService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List returns one page of the user's trips and the user's total trip count.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return s.repo.List(ctx, userID, p)
}

// Update validates and updates an existing trip.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := s.normalize(&trip); err != nil {
		return domain.Trip{}, err
	}
	return s.repo.Update(ctx, trip)
}

// Delete removes a trip and everything attached to it.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// normalize trims and defaults trip fields in place, then validates them.
func (s *TripService) normalize(trip *domain.Trip) error {
	trip.Name = strings.TrimSpace(trip.Name)
	if trip.Name == "" {
		return validationError("name is required")
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return validationError("start_date and end_date are required")
	}
	trip.StartDate = domain.CalendarDate(trip.StartDate)
	trip.EndDate = domain.CalendarDate(trip.EndDate)
	if trip.EndDate.Before(trip.StartDate) {
		return validationError("end_date must be on or after start_date")
	}
	if trip.DurationDays() > maxTripDays {
		return validationError("a trip may span at most %d days", maxTripDays)
	}
	if trip.Budget != nil && !validAmount(*trip.Budget) {
		return validationError("budget must be between 0 and %.2f", maxAmount)
	}

	if trip.BudgetCurrency == "" {
		trip.BudgetCurrency = s.defaultCurrency
	}
	if !s.rates.IsSupported(trip.BudgetCurrency) {
		return validationError("unsupported budget_currency %q", trip.BudgetCurrency)
	}
	return nil
}

// validationError builds an error that wraps domain.ErrValidation so the
// handler layer maps it to 422.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}

const (
	// maxTripDays bounds the itinerary, which holds one entry per day.
	maxTripDays = 731
	// maxAmount is the largest value a NUMERIC(14,2) column stores.
	maxAmount = 999_999_999_999.99
)

func validAmount(v float64) bool {
	return v >= 0 && v <= maxAmount && !math.IsNaN(v)
}
