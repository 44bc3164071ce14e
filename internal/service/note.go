package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/repo"
)

// NoteList is a filtered listing of a trip's notes plus per-filter counts
// over all of the trip's notes.
type NoteList struct {
	Notes  []domain.Note
	Counts domain.NoteCounts
}

// NoteService implements business logic for journal Note operations.
type NoteService struct {
	repo         repo.NoteRepo
	trips        repo.TripRepo
	destinations repo.DestinationRepo
}

// NewNoteService constructs a NoteService.
func NewNoteService(r repo.NoteRepo, trips repo.TripRepo, destinations repo.DestinationRepo) *NoteService {
	return &NoteService{repo: r, trips: trips, destinations: destinations}
}

// Create validates and persists a new note.
func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error) {
	if err := s.validate(ctx, userID, &n); err != nil {
		return domain.Note{}, err
	}
	return s.repo.Create(ctx, userID, n)
}

// GetByID returns a single note.
func (s *NoteService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Note, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List returns the trip's notes that pass filter, newest first.
// Returns domain.ErrNotFound when the trip is not the user's.
func (s *NoteService) List(ctx context.Context, userID, tripID uuid.UUID, filter domain.NoteFilter) (NoteList, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return NoteList{}, err
	}

	all, err := s.repo.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return NoteList{}, err
	}

	list := NoteList{Notes: []domain.Note{}}
	for _, n := range all {
		list.Counts.All++
		if domain.NoteFilterEssays.Match(n) {
			list.Counts.Essays++
		}
		if domain.NoteFilterPhotos.Match(n) {
			list.Counts.Photos++
		}
		if domain.NoteFilterSaved.Match(n) {
			list.Counts.Saved++
		}
		if filter.Match(n) {
			list.Notes = append(list.Notes, n)
		}
	}
	return list, nil
}

// Update validates and updates a note. A note cannot move between trips.
func (s *NoteService) Update(ctx context.Context, userID uuid.UUID, n domain.Note) (domain.Note, error) {
	existing, err := s.repo.GetByID(ctx, userID, n.ID)
	if err != nil {
		return domain.Note{}, err
	}
	n.TripID = existing.TripID

	if err := s.validate(ctx, userID, &n); err != nil {
		return domain.Note{}, err
	}
	return s.repo.Update(ctx, userID, n)
}

// Delete removes a note.
func (s *NoteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *NoteService) validate(ctx context.Context, userID uuid.UUID, n *domain.Note) error {
	n.Title = strings.TrimSpace(n.Title)
	n.ImageURL = strings.TrimSpace(n.ImageURL)
	if n.Title == "" {
		return validationError("title is required")
	}
	if n.Type == "" {
		n.Type = domain.NoteTypeNote
	}
	if !n.Type.Valid() {
		return validationError("unknown note type %q", n.Type)
	}
	if n.Mood != nil && !n.Mood.Valid() {
		return validationError("unknown mood %q", *n.Mood)
	}
	if n.Type == domain.NoteTypePhoto && n.ImageURL == "" {
		return validationError("photo notes need an image_url")
	}
	if n.Date.IsZero() {
		return validationError("date is required")
	}
	n.Date = domain.CalendarDate(n.Date)

	if n.DestinationID != nil {
		dest, err := s.destinations.GetByID(ctx, userID, *n.DestinationID)
		if err != nil {
			return err
		}
		if dest.TripID != n.TripID {
			return validationError("destination does not belong to this trip")
		}
	}
	return nil
}
