package domain

import (
	"time"

	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// Stay is a requested date range plus guest count for a single cabin.
// Start is the check-in day, End is the check-out day (not a night of the stay).
type Stay struct {
	Start  time.Time
	End    time.Time
	Guests int
}

// Range returns the stay as a half-open interval [Start, End)
func (s Stay) Range() daterange.Range {
	return daterange.New(s.Start, s.End)
}

// Nights returns the number of nights of the stay
func (s Stay) Nights() int {
	return daterange.Nights(s.Start, s.End)
}
