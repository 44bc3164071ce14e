package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wandernote/internal/domain"
	"github.com/pkordes/wandernote/internal/itinerary"
	"github.com/pkordes/wandernote/internal/service"
)

func TestItineraryService_Plan_AttachesActivities(t *testing.T) {
	tripID := uuid.New()
	kyoto := domain.Destination{ID: uuid.New(), TripID: tripID, City: "Kyoto", Country: "Japan"}
	osaka := domain.Destination{ID: uuid.New(), TripID: tripID, City: "Osaka", Country: "Japan"}

	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: tripID, StartDate: day(2025, 4, 1), EndDate: day(2025, 4, 3)}, nil
		},
	}
	dests := &mockDestinationRepo{
		listByTrip: func(context.Context, uuid.UUID, uuid.UUID) ([]domain.Destination, error) {
			return []domain.Destination{kyoto, osaka}, nil
		},
	}
	acts := &mockActivityRepo{
		listByTrip: func(context.Context, uuid.UUID, uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{
				{DestinationID: kyoto.ID, Date: day(2025, 4, 1), Name: "Temple"},
				{DestinationID: osaka.ID, Date: day(2025, 4, 2), Name: "Castle"},
				{DestinationID: osaka.ID, Date: day(2025, 5, 1), Name: "Later"},
			}, nil
		},
	}
	svc := service.NewItineraryService(trips, dests, acts)

	trip, plan, err := svc.Plan(context.Background(), uuid.New(), tripID)

	require.NoError(t, err)
	assert.Equal(t, tripID, trip.ID)
	require.Len(t, plan.Days, 3)

	assert.Equal(t, "Kyoto", plan.Days[0].Destination.Destination.City)
	assert.Equal(t, itinerary.SourceActivity, plan.Days[0].Destination.Source)
	assert.Equal(t, "Osaka", plan.Days[1].Destination.Destination.City)
	assert.Equal(t, itinerary.SourceDefault, plan.Days[2].Destination.Source)
	assert.Empty(t, plan.Days[2].Activities)

	require.Len(t, plan.Unscheduled, 1)
	assert.Equal(t, "Later", plan.Unscheduled[0].Name)
}

func TestItineraryService_Plan_ForeignTrip(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewItineraryService(trips, &mockDestinationRepo{}, &mockActivityRepo{})

	_, _, err := svc.Plan(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
