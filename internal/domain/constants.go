package domain

// Stay policy defaults
const (
	DefaultMinNights     = 2
	DefaultPeakMinNights = 3
	DefaultMaxNights     = 14

	// Peak season window, inclusive, month/day in any year
	DefaultPeakStartMonth = 6
	DefaultPeakStartDay   = 1
	DefaultPeakEndMonth   = 8
	DefaultPeakEndDay     = 31

	DefaultMinNoticeHours          = 48
	DefaultPeakMinNoticeDays       = 7
	DefaultLateArrivalGraceMinutes = 120
)

// Validation limits
const (
	MaxRuleNameLength    = 200
	MaxBlockReasonLength = 500
	MaxNotesLength       = 1000
	MaxHolidayNameLength = 200
)

// Format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses of reservations that prevent other bookings
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
