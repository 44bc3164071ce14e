package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/geocode"
	"github.com/pkordes/wandernote/internal/repo"
	"github.com/pkordes/wandernote/internal/service"
)

// The mocks below are hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.
// No mock generation library is required for cases this simple.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.list(ctx, userID, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockDestinationRepo struct {
	create     func(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)
	listByTrip func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error)
	update     func(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, userID, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockDestinationRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTrip(ctx, userID, tripID)
}
func (m *mockDestinationRepo) Update(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, userID, d)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockActivityRepo struct {
	create            func(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	getByID           func(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error)
	listByDestination func(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error)
	listByTrip        func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Activity, error)
	update            func(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	delete            func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, userID, a)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockActivityRepo) ListByDestination(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error) {
	return m.listByDestination(ctx, userID, destinationID)
}
func (m *mockActivityRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Activity, error) {
	return m.listByTrip(ctx, userID, tripID)
}
func (m *mockActivityRepo) Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, userID, a)
}
func (m *mockActivityRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockExpenseRepo struct {
	create     func(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error)
	listByTrip func(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error)
	update     func(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockExpenseRepo) Create(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, userID, e)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockExpenseRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error) {
	return m.listByTrip(ctx, userID, tripID, f)
}
func (m *mockExpenseRepo) Update(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, userID, e)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockNoteRepo struct {
	create     func(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Note, error)
	listByTrip func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Note, error)
	update     func(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockNoteRepo) Create(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error) {
	return m.create(ctx, userID, n)
}
func (m *mockNoteRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Note, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockNoteRepo) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Note, error) {
	return m.listByTrip(ctx, userID, tripID)
}
func (m *mockNoteRepo) Update(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error) {
	return m.update(ctx, userID, n)
}
func (m *mockNoteRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

// mockGeocoder answers from a fixed table of queries; anything else is a miss.
// calls records every query in order.
type mockGeocoder struct {
	results map[string]geocode.Result
	err     error
	calls   []string
}

func (m *mockGeocoder) Search(_ context.Context, q string) (geocode.Result, error) {
	m.calls = append(m.calls, q)
	if m.err != nil {
		return geocode.Result{}, m.err
	}
	if r, ok := m.results[q]; ok {
		return r, nil
	}
	return geocode.Result{}, geocode.ErrNoMatch
}

func (m *mockGeocoder) CityCountry(ctx context.Context, city, country string) (geocode.Result, error) {
	return m.Search(ctx, city+", "+country)
}

// compile-time checks: mocks must satisfy the interfaces they stand in for.
var (
	_ repo.TripRepo        = (*mockTripRepo)(nil)
	_ repo.DestinationRepo = (*mockDestinationRepo)(nil)
	_ repo.ActivityRepo    = (*mockActivityRepo)(nil)
	_ repo.ExpenseRepo     = (*mockExpenseRepo)(nil)
	_ repo.NoteRepo        = (*mockNoteRepo)(nil)
	_ service.Geocoder     = (*mockGeocoder)(nil)
)
