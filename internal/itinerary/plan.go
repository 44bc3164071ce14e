package itinerary

import (
	"slices"
	"time"

	"github.com/pkordes/wandernote/internal/domain"
)

// Day is one calendar day of a trip's itinerary.
type Day struct {
	// Number is the 1-based day number ("Day 1").
	Number      int
	Date        time.Time
	Destination Resolution
	Activities  []domain.Activity
}

// Plan is the full itinerary of a trip.
type Plan struct {
	Days []Day
	// Unscheduled holds activities dated outside the trip's range, ordered by
	// date and then by SortDay. They would otherwise never appear in any day.
	Unscheduled []domain.Activity
}

// Build lays out trip's days and assigns each one its activities and owning
// destination. destinations should be in the trip's display order, since the
// first one is the fallback owner.
func Build(trip domain.Trip, destinations []domain.Destination) Plan {
	days := EnumerateDays(trip.StartDate, trip.EndDate)
	groups := GroupActivitiesByDate(destinations)

	plan := Plan{Days: make([]Day, len(days))}
	for i, date := range days {
		key := domain.DateKey(date)
		acts := groups[key]
		delete(groups, key)
		if acts == nil {
			acts = []domain.Activity{}
		}
		plan.Days[i] = Day{
			Number:      i + 1,
			Date:        date,
			Destination: DestinationForDay(destinations, date, acts),
			Activities:  acts,
		}
	}

	plan.Unscheduled = []domain.Activity{}
	for _, key := range sortedKeys(groups) {
		plan.Unscheduled = append(plan.Unscheduled, groups[key]...)
	}
	return plan
}

func sortedKeys(groups map[string][]domain.Activity) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	// "2006-01-02" keys sort chronologically as strings.
	slices.Sort(keys)
	return keys
}
