// Package handler implements the HTTP handlers for the WanderNote API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies. NewRouter mounts them on a chi router.
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/budget"
	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/itinerary"
	"github.com/pkordes/wandernote/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// DestinationServicer defines the operations the destination handlers depend on.
type DestinationServicer interface {
	Create(ctx context.Context, userID uuid.UUID, d domain.Destination, at *service.Coordinates) (domain.Destination, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error)
	Update(ctx context.Context, userID uuid.UUID, d domain.Destination, at *service.Coordinates) (domain.Destination, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ActivityServicer defines the operations the activity handlers depend on.
type ActivityServicer interface {
	Create(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	ListByDestination(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ExpenseServicer defines the operations the expense handlers depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error)
	Update(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// NoteServicer defines the operations the note handlers depend on.
type NoteServicer interface {
	Create(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Note, error)
	List(ctx context.Context, userID, tripID uuid.UUID, filter domain.NoteFilter) (service.NoteList, error)
	Update(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// BudgetServicer computes a trip's budget summary.
type BudgetServicer interface {
	Summary(ctx context.Context, userID, tripID uuid.UUID) (budget.Summary, error)
}

// ItineraryServicer lays out a trip's day plan.
type ItineraryServicer interface {
	Plan(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, itinerary.Plan, error)
}

// ExportServicer produces the flat expense export.
type ExportServicer interface {
	Expenses(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExpenseExportRow, error)
}

// CurrencyConverter is the read-only rate table. *currency.Table satisfies it.
type CurrencyConverter interface {
	Supported() []currency.Info
	IsSupported(code currency.Code) bool
	Convert(amount float64, from, to currency.Code) (float64, error)
	ExchangeRate(from, to currency.Code) (float64, error)
	Format(amount float64, code currency.Code, opts ...currency.FormatOption) string
}

// Services bundles every dependency of Server. Nil members are allowed in
// tests that do not reach the corresponding routes.
type Services struct {
	Trips        TripServicer
	Destinations DestinationServicer
	Activities   ActivityServicer
	Expenses     ExpenseServicer
	Notes        NoteServicer
	Budgets      BudgetServicer
	Itineraries  ItineraryServicer
	Exports      ExportServicer
	Currencies   CurrencyConverter
}

// Server holds the handlers' dependencies.
type Server struct {
	trips        TripServicer
	destinations DestinationServicer
	activities   ActivityServicer
	expenses     ExpenseServicer
	notes        NoteServicer
	budgets      BudgetServicer
	itineraries  ItineraryServicer
	exports      ExportServicer
	currencies   CurrencyConverter

	log *slog.Logger
	now func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now, which decides trip status.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		trips:        svc.Trips,
		destinations: svc.Destinations,
		activities:   svc.Activities,
		expenses:     svc.Expenses,
		notes:        svc.Notes,
		budgets:      svc.Budgets,
		itineraries:  svc.Itineraries,
		exports:      svc.Exports,
		currencies:   svc.Currencies,
		log:          log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{}, slog.Default())
}
