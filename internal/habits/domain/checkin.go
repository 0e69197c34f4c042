package domain

import (
	"errors"
	"time"
)

// DateLayout is the only wire and storage format for calendar dates. Dates
// never travel as time.Time so no timezone can shift them by a day.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

type CheckIn struct {
	ID          int64
	HabitID     int64
	CheckinDate string // YYYY-MM-DD
	CreatedAt   time.Time
}

// CheckInFilter narrows a check-in listing. Zero values mean unbounded.
type CheckInFilter struct {
	HabitID int64
	From    string // inclusive YYYY-MM-DD
	To      string // inclusive YYYY-MM-DD
}

// ParseDate validates s as a calendar date and returns it in canonical form.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(DateLayout)
}
