package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wandernote/internal/currency"
	"github.com/pkordes/wandernote/internal/domain"
)

// TripRequest is the body of POST /api/trips and PUT /api/trips/{tripId}.
type TripRequest struct {
	Name           string             `json:"name"`
	StartDate      openapi_types.Date `json:"start_date"`
	EndDate        openapi_types.Date `json:"end_date"`
	Budget         *float64           `json:"budget,omitempty"`
	BudgetCurrency *string            `json:"budget_currency,omitempty"`
}

// Trip is the JSON representation of a trip.
type Trip struct {
	ID               uuid.UUID          `json:"id"`
	Name             string             `json:"name"`
	StartDate        openapi_types.Date `json:"start_date"`
	EndDate          openapi_types.Date `json:"end_date"`
	Budget           *float64           `json:"budget"`
	BudgetFormatted  *string            `json:"budget_formatted,omitempty"`
	BudgetCurrency   string             `json:"budget_currency"`
	Status           domain.TripStatus  `json:"status"`
	DurationDays     int                `json:"duration_days"`
	DestinationCount int                `json:"destination_count"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// Pagination describes the page a list response holds.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TripList is the body of GET /api/trips.
type TripList struct {
	Data       []Trip     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	var body TripRequest
	if !readBody(w, r, &body) {
		return
	}

	trip := requestToTrip(body)
	trip.UserID = userID

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, s.tripToResponse(created))
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestBody(err.Error()))
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.trips.List(r.Context(), userID, params)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}

	data := make([]Trip, len(trips))
	for i, t := range trips {
		data[i] = s.tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripList{
		Data:       data,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: params.TotalPages(total),
		},
	})
}

// GetTrip handles GET /api/trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(trip))
}

// UpdateTrip handles PUT /api/trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	var body TripRequest
	if !readBody(w, r, &body) {
		return
	}

	trip := requestToTrip(body)
	trip.ID = tripID
	trip.UserID = userID

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusOK, s.tripToResponse(updated))
}

// DeleteTrip handles DELETE /api/trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID, tripID); err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userAndTrip resolves the authenticated user and the {tripId} path parameter.
func userAndTrip(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := currentUser(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	tripID, ok := pathUUID(w, r, "tripId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, tripID, true
}

// --- mapping helpers --------------------------------------------------------

// requestToTrip converts a TripRequest body into a domain.Trip.
// Missing dates stay zero so the service reports them as required.
func requestToTrip(body TripRequest) domain.Trip {
	t := domain.Trip{
		Name:      body.Name,
		StartDate: body.StartDate.Time,
		EndDate:   body.EndDate.Time,
		Budget:    body.Budget,
	}
	if body.BudgetCurrency != nil {
		t.BudgetCurrency = currency.ParseCode(*body.BudgetCurrency)
	}
	return t
}

// tripToResponse converts a domain.Trip into its JSON representation,
// deriving status against the server clock.
func (s *Server) tripToResponse(t domain.Trip) Trip {
	resp := Trip{
		ID:               t.ID,
		Name:             t.Name,
		StartDate:        openapi_types.Date{Time: t.StartDate},
		EndDate:          openapi_types.Date{Time: t.EndDate},
		Budget:           t.Budget,
		BudgetCurrency:   string(t.BudgetCurrency),
		Status:           t.Status(s.now()),
		DurationDays:     t.DurationDays(),
		DestinationCount: t.DestinationCount,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.Budget != nil {
		f := s.currencies.Format(*t.Budget, t.BudgetCurrency)
		resp.BudgetFormatted = &f
	}
	return resp
}
