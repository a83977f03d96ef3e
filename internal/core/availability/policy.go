package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// MonthDay день в году без привязки к году
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) before(other MonthDay) bool {
	if md.Month != other.Month {
		return md.Month < other.Month
	}
	return md.Day < other.Day
}

func (md MonthDay) validate() error {
	if md.Month < time.January || md.Month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidPolicy, md.Month)
	}
	if md.Day < 1 || md.Day > 31 {
		return fmt.Errorf("%w: day %d", ErrInvalidPolicy, md.Day)
	}
	return nil
}

// Policy ограничения на длительность проживания
type Policy struct {
	MinNights     int
	PeakMinNights int
	MaxNights     int

	// Пиковый сезон, включительно. Если PeakStart позже PeakEnd, окно переходит через Новый год.
	PeakStart MonthDay
	PeakEnd   MonthDay

	// Минимальный срок до заезда. CheckAvailability его не проверяет:
	// текущее время знает только вызывающая сторона (см. NoticeSatisfied).
	MinNoticeHours    int
	PeakMinNoticeDays int
}

// DefaultPolicy 2 ночи минимум (3 в июне-августе), 14 максимум
func DefaultPolicy() Policy {
	return Policy{
		MinNights:     domain.DefaultMinNights,
		PeakMinNights: domain.DefaultPeakMinNights,
		MaxNights:     domain.DefaultMaxNights,
		PeakStart:     MonthDay{Month: domain.DefaultPeakStartMonth, Day: domain.DefaultPeakStartDay},
		PeakEnd:       MonthDay{Month: domain.DefaultPeakEndMonth, Day: domain.DefaultPeakEndDay},

		MinNoticeHours:    domain.DefaultMinNoticeHours,
		PeakMinNoticeDays: domain.DefaultPeakMinNoticeDays,
	}
}

// Validate проверяет согласованность параметров
func (p Policy) Validate() error {
	if p.MinNights < 1 || p.PeakMinNights < 1 {
		return fmt.Errorf("%w: minimum nights must be at least 1", ErrInvalidPolicy)
	}
	if p.MaxNights < p.MinNights || p.MaxNights < p.PeakMinNights {
		return fmt.Errorf("%w: maximum nights %d is below the minimum", ErrInvalidPolicy, p.MaxNights)
	}
	if p.MinNoticeHours < 0 || p.PeakMinNoticeDays < 0 {
		return fmt.Errorf("%w: notice must be non-negative", ErrInvalidPolicy)
	}
	if err := p.PeakStart.validate(); err != nil {
		return err
	}
	return p.PeakEnd.validate()
}

// IsPeak проверяет, попадает ли день в пиковый сезон
func (p Policy) IsPeak(day time.Time) bool {
	md := MonthDay{Month: day.Month(), Day: day.Day()}
	inside := !md.before(p.PeakStart) && !p.PeakEnd.before(md)
	if p.PeakEnd.before(p.PeakStart) {
		// окно через Новый год: [PeakStart, 31.12] + [01.01, PeakEnd]
		inside = !md.before(p.PeakStart) || !p.PeakEnd.before(md)
	}
	return inside
}

// MinNightsFor минимальное количество ночей для проживания.
// Определяется по дате заезда.
func (p Policy) MinNightsFor(stay domain.Stay) int {
	if p.IsPeak(stay.Start) {
		return p.PeakMinNights
	}
	return p.MinNights
}

// MinNoticeFor минимальный срок между бронированием и заездом
func (p Policy) MinNoticeFor(stay domain.Stay) time.Duration {
	if p.IsPeak(stay.Start) {
		return time.Duration(p.PeakMinNoticeDays) * 24 * time.Hour
	}
	return time.Duration(p.MinNoticeHours) * time.Hour
}

// NoticeSatisfied проверяет, что до начала дня заезда осталось не меньше MinNoticeFor
func (p Policy) NoticeSatisfied(stay domain.Stay, now time.Time) bool {
	checkIn := daterange.Day(stay.Start)
	return !now.Add(p.MinNoticeFor(stay)).After(checkIn)
}
