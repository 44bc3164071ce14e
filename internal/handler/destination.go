package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/service"
)

// DestinationRequest is the body of destination create and update.
// Latitude and longitude are optional; when both are given the city is not
// geocoded.
type DestinationRequest struct {
	City      string              `json:"city"`
	Country   string              `json:"country"`
	StartDate *openapi_types.Date `json:"start_date,omitempty"`
	EndDate   *openapi_types.Date `json:"end_date,omitempty"`
	Latitude  *float64            `json:"latitude,omitempty"`
	Longitude *float64            `json:"longitude,omitempty"`
}

// Destination is the JSON representation of a destination.
type Destination struct {
	ID         uuid.UUID           `json:"id"`
	TripID     uuid.UUID           `json:"trip_id"`
	City       string              `json:"city"`
	Country    string              `json:"country"`
	StartDate  *openapi_types.Date `json:"start_date"`
	EndDate    *openapi_types.Date `json:"end_date"`
	Latitude   float64             `json:"latitude"`
	Longitude  float64             `json:"longitude"`
	OrderIndex int                 `json:"order_index"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// ListDestinations handles GET /api/trips/{tripId}/destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	// Confirm ownership so a foreign trip reads as missing, not empty.
	if _, err := s.trips.GetByID(r.Context(), userID, tripID); err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}

	dests, err := s.destinations.ListByTrip(r.Context(), userID, tripID)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	out := make([]Destination, len(dests))
	for i, d := range dests {
		out[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateDestination handles POST /api/trips/{tripId}/destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	var body DestinationRequest
	if !readBody(w, r, &body) {
		return
	}
	d, at, msg := requestToDestination(body)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, requestBody(msg))
		return
	}
	d.TripID = tripID

	created, err := s.destinations.Create(r.Context(), userID, d, at)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// GetDestination handles GET /api/destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	d, err := s.destinations.GetByID(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(d))
}

// UpdateDestination handles PUT /api/destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	var body DestinationRequest
	if !readBody(w, r, &body) {
		return
	}
	d, at, msg := requestToDestination(body)
	if msg != "" {
		writeError(w, http.StatusUnprocessableEntity, requestBody(msg))
		return
	}
	d.ID = id

	updated, err := s.destinations.Update(r.Context(), userID, d, at)
	if err != nil {
		s.fail(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(updated))
}

// DeleteDestination handles DELETE /api/destinations/{id}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	if err := s.destinations.Delete(r.Context(), userID, id); err != nil {
		s.fail(w, r, err, "destination not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// userAndID resolves the authenticated user and the {id} path parameter.
func userAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := currentUser(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}

// --- mapping helpers --------------------------------------------------------

// requestToDestination converts the body into a domain.Destination and the
// optional caller-supplied coordinates. A non-empty msg rejects the request.
func requestToDestination(body DestinationRequest) (domain.Destination, *service.Coordinates, string) {
	d := domain.Destination{
		City:      body.City,
		Country:   body.Country,
		StartDate: optionalDate(body.StartDate),
		EndDate:   optionalDate(body.EndDate),
	}
	if (body.Latitude == nil) != (body.Longitude == nil) {
		return domain.Destination{}, nil, "latitude and longitude must be given together"
	}
	var at *service.Coordinates
	if body.Latitude != nil {
		at = &service.Coordinates{Lat: *body.Latitude, Lng: *body.Longitude}
	}
	return d, at, ""
}

func destinationToResponse(d domain.Destination) Destination {
	return Destination{
		ID:         d.ID,
		TripID:     d.TripID,
		City:       d.City,
		Country:    d.Country,
		StartDate:  responseDate(d.StartDate),
		EndDate:    responseDate(d.EndDate),
		Latitude:   d.Latitude,
		Longitude:  d.Longitude,
		OrderIndex: d.OrderIndex,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func optionalDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func responseDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
