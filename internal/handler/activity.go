package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wandernote/internal/domain"
)

// ActivityRequest is the body of activity create and update.
// Time is "HH:MM" in 24-hour form.
type ActivityRequest struct {
	Date      openapi_types.Date `json:"date"`
	Name      string             `json:"name"`
	Time      *string            `json:"time,omitempty"`
	Location  string             `json:"location,omitempty"`
	Notes     string             `json:"notes,omitempty"`
	Latitude  *float64           `json:"latitude,omitempty"`
	Longitude *float64           `json:"longitude,omitempty"`
}

// Activity is the JSON representation of an activity.
type Activity struct {
	ID            uuid.UUID          `json:"id"`
	DestinationID uuid.UUID          `json:"destination_id"`
	Date          openapi_types.Date `json:"date"`
	Name          string             `json:"name"`
	Time          *string            `json:"time"`
	Location      string             `json:"location"`
	Notes         string             `json:"notes"`
	Latitude      *float64           `json:"latitude"`
	Longitude     *float64           `json:"longitude"`
	OrderIndex    int                `json:"order_index"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ListActivities handles GET /api/destinations/{id}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := userAndID(w, r)
	if !ok {
		return
	}
	acts, err := s.activities.ListByDestination(r.Context(), userID, destID)
	if err != nil {
		s.fail(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, activitiesToResponse(acts))
}

// CreateActivity handles POST /api/destinations/{id}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, destID, ok := userAndID(w, r)
	if !ok {
		return
	}
	var body ActivityRequest
	if !readBody(w, r, &body) {
		return
	}
	a, err := requestToActivity(body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	a.DestinationID = destID

	created, err := s.activities.Create(r.Context(), userID, a)
	if err != nil {
		s.fail(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusCreated, activityToResponse(created))
}

// UpdateActivity handles PUT /api/activities/{id}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	var body ActivityRequest
	if !readBody(w, r, &body) {
		return
	}
	a, err := requestToActivity(body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationBody(err))
		return
	}
	a.ID = id

	updated, err := s.activities.Update(r.Context(), userID, a)
	if err != nil {
		s.fail(w, r, err, "activity not found")
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

// DeleteActivity handles DELETE /api/activities/{id}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	if err := s.activities.Delete(r.Context(), userID, id); err != nil {
		s.fail(w, r, err, "activity not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToActivity converts the body into a domain.Activity. The only
// failure is a malformed time, which wraps domain.ErrValidation.
func requestToActivity(body ActivityRequest) (domain.Activity, error) {
	a := domain.Activity{
		Date:      body.Date.Time,
		Name:      body.Name,
		Location:  body.Location,
		Notes:     body.Notes,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	}
	if body.Time != nil && *body.Time != "" {
		ct, err := domain.ParseClockTime(*body.Time)
		if err != nil {
			return domain.Activity{}, err
		}
		a.Time = &ct
	}
	return a, nil
}

func activityToResponse(a domain.Activity) Activity {
	resp := Activity{
		ID:            a.ID,
		DestinationID: a.DestinationID,
		Date:          openapi_types.Date{Time: a.Date},
		Name:          a.Name,
		Location:      a.Location,
		Notes:         a.Notes,
		Latitude:      a.Latitude,
		Longitude:     a.Longitude,
		OrderIndex:    a.OrderIndex,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.Time != nil {
		t := a.Time.String()
		resp.Time = &t
	}
	return resp
}

func activitiesToResponse(acts []domain.Activity) []Activity {
	out := make([]Activity, len(acts))
	for i, a := range acts {
		out[i] = activityToResponse(a)
	}
	return out
}
