package get_quote

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
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

	return nil
}
