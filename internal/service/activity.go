package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// Geocoding of an activity's location is best effort: an activity whose
// place cannot be found is still saved, just without coordinates.
type ActivityService struct {
	repo         repo.ActivityRepo
	destinations repo.DestinationRepo
	geocoder     Geocoder
	log          *slog.Logger
}

// NewActivityService constructs an ActivityService.
func NewActivityService(r repo.ActivityRepo, d repo.DestinationRepo, g Geocoder, log *slog.Logger) *ActivityService {
	return &ActivityService{repo: r, destinations: d, geocoder: g, log: log}
}

// Create validates and persists a new activity under its destination.
func (s *ActivityService) Create(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	if err := normalizeActivity(&a); err != nil {
		return domain.Activity{}, err
	}

	dest, err := s.destinations.GetByID(ctx, userID, a.DestinationID)
	if err != nil {
		return domain.Activity{}, err
	}

	if !hasCoordinates(a) {
		s.locate(ctx, &a, dest)
	}
	return s.repo.Create(ctx, userID, a)
}

// GetByID returns a single activity.
func (s *ActivityService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Activity, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// ListByDestination returns a destination's activities in day order.
// Returns domain.ErrNotFound when the destination is not the user's.
func (s *ActivityService) ListByDestination(ctx context.Context, userID, destinationID uuid.UUID) ([]domain.Activity, error) {
	if _, err := s.destinations.GetByID(ctx, userID, destinationID); err != nil {
		return nil, err
	}
	return s.repo.ListByDestination(ctx, userID, destinationID)
}

// Update validates and updates an activity. A changed location is geocoded
// again unless the caller supplied coordinates; a cleared location clears
// the coordinates.
func (s *ActivityService) Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	if err := normalizeActivity(&a); err != nil {
		return domain.Activity{}, err
	}

	existing, err := s.repo.GetByID(ctx, userID, a.ID)
	if err != nil {
		return domain.Activity{}, err
	}
	a.DestinationID = existing.DestinationID

	switch {
	case hasCoordinates(a):
	case a.Location == "":
		a.Latitude, a.Longitude = nil, nil
	case a.Location == existing.Location:
		a.Latitude, a.Longitude = existing.Latitude, existing.Longitude
	default:
		dest, err := s.destinations.GetByID(ctx, userID, existing.DestinationID)
		if err != nil {
			return domain.Activity{}, err
		}
		s.locate(ctx, &a, dest)
	}

	return s.repo.Update(ctx, userID, a)
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// locate tries "location, city" first and then the bare location.
func (s *ActivityService) locate(ctx context.Context, a *domain.Activity, dest domain.Destination) {
	if a.Location == "" {
		return
	}
	for _, q := range []string{a.Location + ", " + dest.City, a.Location} {
		res, err := s.geocoder.Search(ctx, q)
		if err == nil {
			a.Latitude, a.Longitude = &res.Lat, &res.Lng
			return
		}
		s.log.DebugContext(ctx, "activity geocode miss", "query", q, "error", err)
		if ctx.Err() != nil {
			return
		}
	}
	s.log.InfoContext(ctx, "saving activity without coordinates", "location", a.Location)
}

func normalizeActivity(a *domain.Activity) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Location = strings.TrimSpace(a.Location)
	if a.Name == "" {
		return validationError("name is required")
	}
	if a.Date.IsZero() {
		return validationError("date is required")
	}
	a.Date = domain.CalendarDate(a.Date)
	if (a.Latitude == nil) != (a.Longitude == nil) {
		return validationError("latitude and longitude must be given together")
	}
	if hasCoordinates(*a) && !validCoordinates(*a.Latitude, *a.Longitude) {
		return validationError("latitude/longitude out of range")
	}
	return nil
}

func hasCoordinates(a domain.Activity) bool {
	return a.Latitude != nil && a.Longitude != nil
}
