package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wandernote/internal/budget"
	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/handler"
	"github.com/pkordes/wandernote/internal/itinerary"
	"github.com/pkordes/wandernote/internal/middleware"
	"github.com/pkordes/wandernote/internal/service"
)

// The mocks below are hand-written test doubles for the servicer interfaces.
// Set only the method fields your test needs; calling an unset one panics,
// which flags an unexpected call.

type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.list(ctx, userID, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockDestinationServicer struct {
	create     func(ctx context.Context, userID uuid.UUID, d domain.Destination, at *service.Coordinates) (domain.Destination, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)
	listByTrip func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error)
	update     func(ctx context.Context, userID uuid.UUID, d domain.Destination, at *service.Coordinates) (domain.Destination, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockDestinationServicer) Create(ctx context.Context, userID uuid.UUID, d domain.Destination, at *service.Coordinates) (domain.Destination, error) {
	return m.create(ctx, userID, d, at)
}
func (m *mockDestinationServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockDestinationServicer) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listByTrip(ctx, userID, tripID)
}
func (m *mockDestinationServicer) Update(ctx context.Context, userID uuid.UUID, d domain.Destination, at *service.Coordinates) (domain.Destination, error) {
	return m.update(ctx, userID, d, at)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockActivityServicer struct {
	create            func(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	listByDestination func(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error)
	update            func(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	delete            func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, userID, a)
}
func (m *mockActivityServicer) ListByDestination(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error) {
	return m.listByDestination(ctx, userID, destinationID)
}
func (m *mockActivityServicer) Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, userID, a)
}
func (m *mockActivityServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockExpenseServicer struct {
	create     func(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error)
	listByTrip func(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error)
	update     func(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockExpenseServicer) Create(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, userID, e)
}
func (m *mockExpenseServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockExpenseServicer) ListByTrip(ctx context.Context, userID, tripID uuid.UUID, f domain.ExpenseFilter) ([]domain.Expense, error) {
	return m.listByTrip(ctx, userID, tripID, f)
}
func (m *mockExpenseServicer) Update(ctx context.Context, userID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, userID, e)
}
func (m *mockExpenseServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockNoteServicer struct {
	create  func(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)
	getByID func(ctx context.Context, userID, id uuid.UUID) (domain.Note, error)
	list    func(ctx context.Context, userID, tripID uuid.UUID, filter domain.NoteFilter) (service.NoteList, error)
	update  func(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error)
	delete  func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockNoteServicer) Create(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error) {
	return m.create(ctx, userID, n)
}
func (m *mockNoteServicer) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Note, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockNoteServicer) List(ctx context.Context, userID, tripID uuid.UUID, filter domain.NoteFilter) (service.NoteList, error) {
	return m.list(ctx, userID, tripID, filter)
}
func (m *mockNoteServicer) Update(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error) {
	return m.update(ctx, userID, n)
}
func (m *mockNoteServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockBudgetServicer struct {
	summary func(ctx context.Context, userID, tripID uuid.UUID) (budget.Summary, error)
}

func (m *mockBudgetServicer) Summary(ctx context.Context, userID, tripID uuid.UUID) (budget.Summary, error) {
	return m.summary(ctx, userID, tripID)
}

type mockItineraryServicer struct {
	plan func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, itinerary.Plan, error)
}

func (m *mockItineraryServicer) Plan(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, itinerary.Plan, error) {
	return m.plan(ctx, userID, tripID)
}

type mockExportServicer struct {
	expenses func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExpenseExportRow, error)
}

func (m *mockExportServicer) Expenses(ctx context.Context, userID, tripID uuid.UUID) ([]domain.ExpenseExportRow, error) {
	return m.expenses(ctx, userID, tripID)
}

// compile-time checks: mocks must satisfy the interfaces they stand in for.
var (
	_ handler.TripServicer        = (*mockTripServicer)(nil)
	_ handler.DestinationServicer = (*mockDestinationServicer)(nil)
	_ handler.ActivityServicer    = (*mockActivityServicer)(nil)
	_ handler.ExpenseServicer     = (*mockExpenseServicer)(nil)
	_ handler.NoteServicer        = (*mockNoteServicer)(nil)
	_ handler.BudgetServicer      = (*mockBudgetServicer)(nil)
	_ handler.ItineraryServicer   = (*mockItineraryServicer)(nil)
	_ handler.ExportServicer      = (*mockExportServicer)(nil)
	_ handler.CurrencyConverter   = (*currency.Table)(nil)
)

// ---- helpers ---------------------------------------------------------------

// testUser is the user every request in these tests is authenticated as.
var testUser = uuid.MustParse("7b0c9a52-3f1e-4d2a-9c57-0e4b1f7a8d21")

// today is the fixed server clock; trips in June 2025 are "ongoing".
var today = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

// fakeAuth authenticates every request as testUser.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), testUser)))
	})
}

// newHTTPHandler wires a Server with the given mocks into the real router,
// the way the serve command does in production. Currencies default to the
// built-in table.
func newHTTPHandler(svc handler.Services) http.Handler {
	if svc.Currencies == nil {
		svc.Currencies = currency.Default()
	}
	log := discardLogger()
	srv := handler.NewServer(svc, log, handler.WithClock(func() time.Time { return today }))
	return handler.NewRouter(srv, handler.RouterConfig{
		Logger:       log,
		CORSOrigins:  []string{"http://localhost:3000"},
		MaxBodyBytes: 1 << 20,
		Auth:         fakeAuth,
	})
}

// do sends a request through h and returns the recorder.
func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = jsonBody(t, body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decode unmarshals the recorder body into a value of type T.
func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

// errorCode returns error.code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[handler.ErrorResponse](t, rec).Error.Code
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
