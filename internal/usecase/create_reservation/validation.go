package create_reservation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userId is required", ErrInvalidInput)
	}

	if req.CabinID == uuid.Nil {
		return fmt.Errorf("%w: cabinId is required", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	// Сравниваем календарные дни: время внутри дня не дает ночей
	if !daterange.Day(req.End).After(daterange.Day(req.Start)) {
		return ErrInvalidRange
	}

	if req.Guests < 1 {
		return fmt.Errorf("%w: guests must be at least 1", ErrInvalidInput)
	}

	// Время заезда и выезда необязательны, но если указаны - в формате HH:MM
	if !req.StartTime.IsZero() {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
	}
	if !req.EndTime.IsZero() {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// verdictError переводит отказ проверки доступности в ошибку use case
func verdictError(result *availability.Result) error {
	switch result.Verdict {
	case availability.VerdictStayTooShort:
		return fmt.Errorf("%w: %d nights, minimum %d", ErrStayTooShort, result.Nights, result.MinNights)
	case availability.VerdictStayTooLong:
		return fmt.Errorf("%w: %d nights, maximum %d", ErrStayTooLong, result.Nights, result.MaxNights)
	case availability.VerdictBlocked:
		return fmt.Errorf("%w: %v", ErrBlocked, result.Err())
	case availability.VerdictConflict:
		return fmt.Errorf("%w: %v", ErrConflict, result.Err())
	}
	return nil
}
