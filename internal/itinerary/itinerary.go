// Package itinerary partitions a trip's activities into calendar days.
//
// Everything here is a pure function of already-loaded destinations and
// activities: inputs are never mutated and every result is freshly allocated.
package itinerary

import (
	"slices"
	"time"

	"github.com/pkordes/wandernote/internal/domain"
)

// EnumerateDays returns every calendar date from start through end inclusive,
// in ascending order. A reversed range yields an empty slice.
func EnumerateDays(start, end time.Time) []time.Time {
	first, last := domain.CalendarDate(start), domain.CalendarDate(end)
	if last.Before(first) {
		return []time.Time{}
	}

	days := make([]time.Time, 0, domain.DaysBetween(first, last)+1)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// GroupActivitiesByDate flattens the activities of all destinations and
// groups them by their own date, keyed "2006-01-02". Each group is sorted by
// SortDay. An activity's date is not checked against its destination's range.
func GroupActivitiesByDate(destinations []domain.Destination) map[string][]domain.Activity {
	groups := make(map[string][]domain.Activity)
	for _, dest := range destinations {
		for _, a := range dest.Activities {
			key := domain.DateKey(domain.CalendarDate(a.Date))
			groups[key] = append(groups[key], a)
		}
	}
	for _, acts := range groups {
		SortDay(acts)
	}
	return groups
}

// SortDay orders one day's activities in place: timed activities ascending by
// clock time, then untimed ones. The sort is stable, so equal times and
// untimed activities keep their input order.
func SortDay(acts []domain.Activity) {
	slices.SortStableFunc(acts, compareByTime)
}

func compareByTime(a, b domain.Activity) int {
	switch {
	case a.Time == nil && b.Time == nil:
		return 0
	case a.Time == nil:
		return 1
	case b.Time == nil:
		return -1
	default:
		return a.Time.Minutes() - b.Time.Minutes()
	}
}
