package availability

import "errors"

var (
	// ErrInvalidRange дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("availability: end date must be after start date")

	// ErrInvalidCabin домик не передан
	ErrInvalidCabin = errors.New("availability: cabin is required")

	// ErrInvalidPolicy некорректные параметры политики проживания
	ErrInvalidPolicy = errors.New("availability: invalid stay policy")

	// ErrStayTooShort слишком мало ночей
	ErrStayTooShort = errors.New("availability: stay is shorter than the minimum")

	// ErrStayTooLong слишком много ночей
	ErrStayTooLong = errors.New("availability: stay is longer than the maximum")

	// ErrBlocked даты закрыты администратором
	ErrBlocked = errors.New("availability: dates are blocked")

	// ErrConflict даты пересекаются с существующим бронированием
	ErrConflict = errors.New("availability: dates conflict with an existing reservation")
)
