package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid returns true for a known status
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Reservation is an existing booking of a cabin.
// Start is the check-in day, End the check-out day.
type Reservation struct {
	ID          uuid.UUID
	CabinID     uuid.UUID
	UserID      string
	Start       time.Time
	End         time.Time
	StartTime   types.TimeString // optional arrival time
	EndTime     types.TimeString // optional departure time
	Guests      int
	Status      ReservationStatus
	TotalPrice  float64
	CheckInTime *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsBlocking returns true if the reservation prevents other bookings of the cabin
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCheckedIn returns true if the guest has arrived
func (r *Reservation) IsCheckedIn() bool {
	return r.CheckInTime != nil
}

// CanTransitionTo reports whether the status change is allowed:
// pending -> confirmed | cancelled, confirmed -> cancelled
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	switch r.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// Range returns the occupied nights as a half-open interval [Start, End)
func (r *Reservation) Range() daterange.Range {
	return daterange.New(r.Start, r.End)
}

// ReservationsFilter filter for reservation lookups
type ReservationsFilter struct {
	CabinID         *uuid.UUID
	From            *time.Time // reservations ending after From
	To              *time.Time // reservations starting before To
	Status          *ReservationStatus
	IncludeInactive bool // include cancelled reservations
}
