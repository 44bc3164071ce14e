package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Activity is one planned item on a destination's day.
// Time is nil for activities without a fixed clock time.
type Activity struct {
	ID            uuid.UUID
	DestinationID uuid.UUID
	Date          time.Time
	Name          string
	Time          *ClockTime
	Location      string
	Notes         string
	Latitude      *float64
	Longitude     *float64
	OrderIndex    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClockTime is a 24-hour wall-clock time with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "15:04". Seconds ("15:04:05") are accepted and dropped,
// matching what Postgres returns for a TIME column cast to text.
func ParseClockTime(s string) (ClockTime, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("%w: time must be HH:MM, got %q", ErrValidation, s)
}

// Minutes returns the number of minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// String formats the time as "15:04".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
