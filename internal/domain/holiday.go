package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// Holiday is an informational calendar entry. It never blocks bookings.
type Holiday struct {
	ID        uuid.UUID
	Name      string
	Date      time.Time
	Recurring bool
	CreatedAt time.Time
}

// Matches returns true if the holiday falls on day d.
// Recurring holidays match month and day in any year.
func (h *Holiday) Matches(d time.Time) bool {
	if h.Recurring {
		return h.Date.Month() == d.Month() && h.Date.Day() == d.Day()
	}
	return daterange.Day(h.Date).Equal(daterange.Day(d))
}
