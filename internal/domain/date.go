package domain

import "time"

// DateLayout is the wire and grouping format for calendar dates.
const DateLayout = "2006-01-02"

// CalendarDate strips the time-of-day from t, keeping its year, month, and day
// as seen in t's own location, and returns that date at UTC midnight.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats t as "2006-01-02".
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of whole calendar days from a to b,
// or -1 for any reversed range.
func DaysBetween(a, b time.Time) int {
	days := int(CalendarDate(b).Sub(CalendarDate(a)).Hours() / 24)
	if days < 0 {
		return -1
	}
	return days
}
