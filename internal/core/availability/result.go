package availability

import (
	"fmt"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// Verdict итог проверки доступности
type Verdict string

const (
	VerdictAvailable    Verdict = "available"
	VerdictStayTooShort Verdict = "stay_too_short"
	VerdictStayTooLong  Verdict = "stay_too_long"
	VerdictBlocked      Verdict = "blocked"
	VerdictConflict     Verdict = "conflict"
)

// Result результат проверки доступности
type Result struct {
	Verdict   Verdict
	Nights    int
	MinNights int
	MaxNights int

	// Blocking блокировка, из-за которой даты недоступны (для VerdictBlocked)
	Blocking *domain.BlockedDate
	// Conflict пересекающееся бронирование (для VerdictConflict)
	Conflict *domain.Reservation
	// Holidays праздники внутри проживания, только для информации
	Holidays []domain.Holiday
}

// Available true, если домик можно забронировать
func (r *Result) Available() bool {
	return r.Verdict == VerdictAvailable
}

// Err возвращает ошибку, соответствующую отказу, или nil для доступных дат
func (r *Result) Err() error {
	switch r.Verdict {
	case VerdictStayTooShort:
		return fmt.Errorf("%w: %d nights, minimum %d", ErrStayTooShort, r.Nights, r.MinNights)
	case VerdictStayTooLong:
		return fmt.Errorf("%w: %d nights, maximum %d", ErrStayTooLong, r.Nights, r.MaxNights)
	case VerdictBlocked:
		if r.Blocking != nil {
			return fmt.Errorf("%w: %s (%s) %s", ErrBlocked, r.Blocking.Reason, r.Blocking.Kind, r.Blocking.Range())
		}
		return ErrBlocked
	case VerdictConflict:
		if r.Conflict != nil {
			return fmt.Errorf("%w: %s", ErrConflict, r.Conflict.Range())
		}
		return ErrConflict
	}
	return nil
}
