package service

import (
	"time"

	"github.com/aussiebroadwan/habits/internal/habits/domain"
)

// Clock resolves "today" for date defaults and goal status. The zero value
// uses the wall clock in the local zone.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

// Today returns the current calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return domain.Today(now(), c.Location)
}
