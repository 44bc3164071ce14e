package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/geocode"
	"github.com/pkordes/wandernote/internal/repo"
)

// Geocoder resolves place names to coordinates. *geocode.Client satisfies it.
type Geocoder interface {
	Search(ctx context.Context, query string) (geocode.Result, error)
	CityCountry(ctx context.Context, city, country string) (geocode.Result, error)
}

// Coordinates are caller-supplied coordinates that skip geocoding.
type Coordinates struct {
	Lat float64
	Lng float64
}

// DestinationService implements business logic for Destination operations.
type DestinationService struct {
	repo     repo.DestinationRepo
	geocoder Geocoder
}

// NewDestinationService constructs a DestinationService.
func NewDestinationService(r repo.DestinationRepo, g Geocoder) *DestinationService {
	return &DestinationService{repo: r, geocoder: g}
}

// Create validates a destination, locates it, and appends it to its trip.
// When at is nil the city is geocoded; a city that cannot be located is a
// validation error.
func (s *DestinationService) Create(ctx context.Context, userID uuid.UUID, d domain.Destination, at *Coordinates) (domain.Destination, error) {
	if err := normalizeDestination(&d); err != nil {
		return domain.Destination{}, err
	}
	if err := s.locate(ctx, &d, at); err != nil {
		return domain.Destination{}, err
	}
	return s.repo.Create(ctx, userID, d)
}

// GetByID returns a single destination.
func (s *DestinationService) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// ListByTrip returns a trip's destinations in display order.
func (s *DestinationService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Destination, error) {
	return s.repo.ListByTrip(ctx, userID, tripID)
}

// Update validates and updates a destination. Coordinates are kept unless at
// is given or the city or country changed, in which case it is geocoded again.
func (s *DestinationService) Update(ctx context.Context, userID uuid.UUID, d domain.Destination, at *Coordinates) (domain.Destination, error) {
	if err := normalizeDestination(&d); err != nil {
		return domain.Destination{}, err
	}

	existing, err := s.repo.GetByID(ctx, userID, d.ID)
	if err != nil {
		return domain.Destination{}, err
	}

	moved := !strings.EqualFold(existing.City, d.City) || !strings.EqualFold(existing.Country, d.Country)
	if at == nil && !moved {
		d.Latitude, d.Longitude = existing.Latitude, existing.Longitude
	} else if err := s.locate(ctx, &d, at); err != nil {
		return domain.Destination{}, err
	}

	return s.repo.Update(ctx, userID, d)
}

// Delete removes a destination and its activities.
func (s *DestinationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *DestinationService) locate(ctx context.Context, d *domain.Destination, at *Coordinates) error {
	if at != nil {
		if !validCoordinates(at.Lat, at.Lng) {
			return validationError("latitude/longitude out of range")
		}
		d.Latitude, d.Longitude = at.Lat, at.Lng
		return nil
	}

	res, err := s.geocoder.CityCountry(ctx, d.City, d.Country)
	if err != nil {
		if errors.Is(err, geocode.ErrNoMatch) {
			return validationError("could not locate %s", d.Label())
		}
		return fmt.Errorf("service.DestinationService: geocode %s: %w", d.Label(), err)
	}
	d.Latitude, d.Longitude = res.Lat, res.Lng
	return nil
}

func normalizeDestination(d *domain.Destination) error {
	d.City = strings.TrimSpace(d.City)
	d.Country = strings.TrimSpace(d.Country)
	if d.City == "" || d.Country == "" {
		return validationError("city and country are required")
	}
	if d.StartDate != nil {
		sd := domain.CalendarDate(*d.StartDate)
		d.StartDate = &sd
	}
	if d.EndDate != nil {
		ed := domain.CalendarDate(*d.EndDate)
		d.EndDate = &ed
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return validationError("end_date must be on or after start_date")
	}
	return nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
