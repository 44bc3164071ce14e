package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wandernote/internal/domain"
)

// NoteRequest is the body of note create and update.
type NoteRequest struct {
	DestinationID *uuid.UUID         `json:"destination_id,omitempty"`
	Title         string             `json:"title"`
	Content       string             `json:"content,omitempty"`
	Type          string             `json:"type,omitempty"`
	Mood          *string            `json:"mood,omitempty"`
	Date          openapi_types.Date `json:"date"`
	Location      string             `json:"location,omitempty"`
	ImageURL      string             `json:"image_url,omitempty"`
	IsFavorite    bool               `json:"is_favorite,omitempty"`
}

// Note is the JSON representation of a journal note.
type Note struct {
	ID            uuid.UUID          `json:"id"`
	TripID        uuid.UUID          `json:"trip_id"`
	DestinationID *uuid.UUID         `json:"destination_id"`
	Destination   *string            `json:"destination,omitempty"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	Type          domain.NoteType    `json:"type"`
	Mood          *domain.Mood       `json:"mood"`
	Date          openapi_types.Date `json:"date"`
	Location      string             `json:"location"`
	ImageURL      string             `json:"image_url"`
	IsFavorite    bool               `json:"is_favorite"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NoteCounts is the number of notes each filter would return.
type NoteCounts struct {
	All    int `json:"all"`
	Essays int `json:"essays"`
	Photos int `json:"photos"`
	Saved  int `json:"saved"`
}

// NoteList is the body of GET /api/trips/{tripId}/notes.
type NoteList struct {
	Data   []Note     `json:"data"`
	Counts NoteCounts `json:"counts"`
}

// ListNotes handles GET /api/trips/{tripId}/notes.
// ?filter= is one of all (default), essays, photos, saved.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	filter := domain.NoteFilter(r.URL.Query().Get("filter"))
	switch filter {
	case "":
		filter = domain.NoteFilterAll
	case domain.NoteFilterAll, domain.NoteFilterEssays, domain.NoteFilterPhotos, domain.NoteFilterSaved:
	default:
		writeError(w, http.StatusBadRequest, badRequestBody("filter must be one of all, essays, photos, saved"))
		return
	}

	list, err := s.notes.List(r.Context(), userID, tripID, filter)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	data := make([]Note, len(list.Notes))
	for i, n := range list.Notes {
		data[i] = noteToResponse(n)
	}
	writeJSON(w, http.StatusOK, NoteList{
		Data:   data,
		Counts: NoteCounts(list.Counts),
	})
}

// CreateNote handles POST /api/trips/{tripId}/notes.
func (s *Server) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := userAndTrip(w, r)
	if !ok {
		return
	}
	var body NoteRequest
	if !readBody(w, r, &body) {
		return
	}
	n := requestToNote(body)
	n.TripID = tripID

	created, err := s.notes.Create(r.Context(), userID, n)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	writeJSON(w, http.StatusCreated, noteToResponse(created))
}

// GetNote handles GET /api/notes/{id}.
func (s *Server) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	n, err := s.notes.GetByID(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, noteToResponse(n))
}

// UpdateNote handles PUT /api/notes/{id}.
func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	var body NoteRequest
	if !readBody(w, r, &body) {
		return
	}
	n := requestToNote(body)
	n.ID = id

	updated, err := s.notes.Update(r.Context(), userID, n)
	if err != nil {
		s.fail(w, r, err, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, noteToResponse(updated))
}

// DeleteNote handles DELETE /api/notes/{id}.
func (s *Server) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := userAndID(w, r)
	if !ok {
		return
	}
	if err := s.notes.Delete(r.Context(), userID, id); err != nil {
		s.fail(w, r, err, "note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

func requestToNote(body NoteRequest) domain.Note {
	n := domain.Note{
		DestinationID: body.DestinationID,
		Title:         body.Title,
		Content:       body.Content,
		Type:          domain.NoteType(body.Type),
		Date:          body.Date.Time,
		Location:      body.Location,
		ImageURL:      body.ImageURL,
		IsFavorite:    body.IsFavorite,
	}
	if body.Mood != nil && *body.Mood != "" {
		m := domain.Mood(*body.Mood)
		n.Mood = &m
	}
	return n
}

func noteToResponse(n domain.Note) Note {
	resp := Note{
		ID:            n.ID,
		TripID:        n.TripID,
		DestinationID: n.DestinationID,
		Title:         n.Title,
		Content:       n.Content,
		Type:          n.Type,
		Mood:          n.Mood,
		Date:          openapi_types.Date{Time: n.Date},
		Location:      n.Location,
		ImageURL:      n.ImageURL,
		IsFavorite:    n.IsFavorite,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
	if n.DestinationLabel != "" {
		label := n.DestinationLabel
		resp.Destination = &label
	}
	return resp
}
