// Package domain contains the core data types for the WanderNote API.
// It is imported by every other internal package (repo, service, handler)
// and depends only on the currency code type.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wandernote/internal/currency"
)

// Trip is the top-level aggregate owned by a single user.
// Destinations, expenses, and notes belong to a trip.
// StartDate and EndDate are calendar dates (UTC midnight).
type Trip struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	Budget         *float64 // nil when the user has not set a budget
	BudgetCurrency currency.Code
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DestinationCount is populated by list queries only.
	DestinationCount int
}

// TripStatus describes where a trip sits relative to today.
type TripStatus string

const (
	TripUpcoming TripStatus = "upcoming"
	TripOngoing  TripStatus = "ongoing"
	TripPast     TripStatus = "past"
)

// Status reports whether the trip is upcoming, ongoing, or past on the
// calendar day containing now.
func (t Trip) Status(now time.Time) TripStatus {
	today := CalendarDate(now)
	switch {
	case CalendarDate(t.EndDate).Before(today):
		return TripPast
	case CalendarDate(t.StartDate).After(today):
		return TripUpcoming
	default:
		return TripOngoing
	}
}

// DurationDays is the inclusive number of calendar days the trip spans.
// A single-day trip lasts 1 day; a malformed range yields 0.
func (t Trip) DurationDays() int {
	return DaysBetween(t.StartDate, t.EndDate) + 1
}
