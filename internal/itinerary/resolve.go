package itinerary

import (
	"time"

	"github.com/pkordes/wandernote/internal/domain"
)

// Source records how DestinationForDay chose a destination.
type Source string

const (
	// SourceActivity: the destination of the day's first activity.
	SourceActivity Source = "activity"
	// SourceRange: the first destination whose date range covers the day.
	SourceRange Source = "range"
	// SourceDefault: nothing matched, so the trip's first destination.
	SourceDefault Source = "default"
	// SourceUnresolved: the trip has no destinations.
	SourceUnresolved Source = "unresolved"
)

// Resolution is the outcome of DestinationForDay.
// Destination is nil only when Source is SourceUnresolved.
type Resolution struct {
	Destination *domain.Destination
	Source      Source
}

// Resolved reports whether a destination was found by any rule.
func (r Resolution) Resolved() bool {
	return r.Destination != nil
}

// Inferred reports whether the destination was assigned by the first-destination
// default rather than by an activity or a date range. Callers use it to flag
// days that no destination actually covers.
func (r Resolution) Inferred() bool {
	return r.Source == SourceDefault
}

// DestinationForDay resolves which destination owns date.
//
// The rules apply in order: the destination of the first of dayActivities
// (which should already be sorted with SortDay); the first destination whose
// start and end dates both exist and cover date; the first destination of the
// trip. The result is unresolved only when destinations is empty.
func DestinationForDay(destinations []domain.Destination, date time.Time, dayActivities []domain.Activity) Resolution {
	if len(dayActivities) > 0 {
		owner := dayActivities[0].DestinationID
		for i := range destinations {
			if destinations[i].ID == owner {
				return resolved(destinations[i], SourceActivity)
			}
		}
	}

	for i := range destinations {
		if destinations[i].Covers(date) {
			return resolved(destinations[i], SourceRange)
		}
	}

	if len(destinations) > 0 {
		return resolved(destinations[0], SourceDefault)
	}
	return Resolution{Source: SourceUnresolved}
}

func resolved(d domain.Destination, src Source) Resolution {
	return Resolution{Destination: &d, Source: src}
}
