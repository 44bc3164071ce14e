package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a geocoded city visited during a trip.
// StartDate and EndDate are an optional sub-range of the trip's dates.
// Activities is only populated by queries that load the itinerary.
type Destination struct {
	ID         uuid.UUID
	TripID     uuid.UUID
	City       string
	Country    string
	StartDate  *time.Time
	EndDate    *time.Time
	Latitude   float64
	Longitude  float64
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Activities []Activity
}

// Label returns "City, Country".
func (d Destination) Label() string {
	return d.City + ", " + d.Country
}

// Covers reports whether date falls inside the destination's sub-range.
// Both bounds must be set; an open range covers nothing.
func (d Destination) Covers(date time.Time) bool {
	if d.StartDate == nil || d.EndDate == nil {
		return false
	}
	day := CalendarDate(date)
	return !day.Before(CalendarDate(*d.StartDate)) && !day.After(CalendarDate(*d.EndDate))
}
