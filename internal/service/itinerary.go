package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/itinerary"
	"github.com/pkordes/wandernote/internal/repo"
)

// ItineraryService lays out a trip's day-by-day plan.
type ItineraryService struct {
	trips        repo.TripRepo
	destinations repo.DestinationRepo
	activities   repo.ActivityRepo
}

// NewItineraryService constructs an ItineraryService.
func NewItineraryService(trips repo.TripRepo, destinations repo.DestinationRepo, activities repo.ActivityRepo) *ItineraryService {
	return &ItineraryService{trips: trips, destinations: destinations, activities: activities}
}

// Plan loads the trip, its destinations, and their activities and partitions
// them into days.
func (s *ItineraryService) Plan(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, itinerary.Plan, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, itinerary.Plan{}, err
	}

	dests, err := s.destinations.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, itinerary.Plan{}, err
	}
	acts, err := s.activities.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, itinerary.Plan{}, err
	}

	index := make(map[uuid.UUID]int, len(dests))
	for i := range dests {
		index[dests[i].ID] = i
	}
	for _, a := range acts {
		if i, ok := index[a.DestinationID]; ok {
			dests[i].Activities = append(dests[i].Activities, a)
		}
	}

	return trip, itinerary.Build(trip, dests), nil
}
