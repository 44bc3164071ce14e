package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
)

// ExpenseRequest is the body of expense create and update.
type ExpenseRequest struct {
	Category    string             `json:"category,omitempty"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	Currency    string             `json:"currency,omitempty"`
	Date        openapi_types.Date `json:"date"`
	PaidBy      string             `json:"paid_by,omitempty"`
	Notes       string             `json:"notes,omitempty"`
}

// Expense is the JSON representation of an expense.
type Expense struct {
	ID              uuid.UUID          `json:"id"`
	TripID          uuid.UUID          `json:"trip_id"`
	Category        domain.Category    `json:"category"`
	Description     string             `json:"description"`
	Amount          float64            `json:"amount"`
	AmountFormatted string             `json:"amount_formatted"`
	Currency        string             `json:"currency"`
	Date            openapi_types.Date `json:"date"`
	PaidBy          string             `json:"paid_by"`
	Notes           string             `json:"notes"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// ListExpenses handles GET /api/trips/{tripId}/expenses.
// ?category= narrows the list to one category.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	var filter domain.ExpenseFilter
	if raw := r.URL.Query().Get("category"); raw != "" {
		cat := domain.Category(raw)
		if !slices.Contains(domain.Categories, cat) {
			writeError(w, http.StatusBadRequest, badRequestBody("unknown category "+raw))
			return
		}
		filter.Category = &cat
	}

	expenses, err := s.expenses.ListByTrip(r.Context(), userID, tripID, filter)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	out := make([]Expense, len(expenses))
	for i, e := range expenses {
		out[i] = s.expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateExpense handles POST /api/trips/{tripId}/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	var body ExpenseRequest
	if !readBody(w, r, &body) {
		return
	}
	e := requestToExpense(body)
	e.TripID = tripID

	created, err := s.expenses.Create(r.Context(), userID, e)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, s.expenseToResponse(created))
}

// GetExpense handles GET /api/expenses/{id}.
func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	e, err := s.expenses.GetByID(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, s.expenseToResponse(e))
}

// UpdateExpense handles PUT /api/expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	var body ExpenseRequest
	if !readBody(w, r, &body) {
		return
	}
	e := requestToExpense(body)
	e.ID = id

	updated, err := s.expenses.Update(r.Context(), userID, e)
	if err != nil {
		s.fail(w, r, err, "expense not found")
		return
	}
	writeJSON(w, http.StatusOK, s.expenseToResponse(updated))
}

// DeleteExpense handles DELETE /api/expenses/{id}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	if err := s.expenses.Delete(r.Context(), userID, id); err != nil {
		s.fail(w, r, err, "expense not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToExpense(body ExpenseRequest) domain.Expense {
	return domain.Expense{
		Category:    domain.Category(body.Category),
		Description: body.Description,
		Amount:      body.Amount,
		Currency:    currency.ParseCode(body.Currency),
		Date:        body.Date.Time,
		PaidBy:      body.PaidBy,
		Notes:       body.Notes,
	}
}

func (s *Server) expenseToResponse(e domain.Expense) Expense {
	return Expense{
		ID:              e.ID,
		TripID:          e.TripID,
		Category:        e.Category,
		Description:     e.Description,
		Amount:          e.Amount,
		AmountFormatted: s.currencies.Format(e.Amount, e.Currency),
		Currency:        string(e.Currency),
		Date:            openapi_types.Date{Time: e.Date},
		PaidBy:          e.PaidBy,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
