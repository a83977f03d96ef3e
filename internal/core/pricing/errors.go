package pricing

import "errors"

var (
	// ErrInvalidRange дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("pricing: end date must be after start date")

	// ErrInvalidGuestCount количество гостей меньше 1
	ErrInvalidGuestCount = errors.New("pricing: guest count must be at least 1")

	// ErrInvalidCabin базовая цена домика не положительная
	ErrInvalidCabin = errors.New("pricing: cabin base price must be positive")

	// ErrInvalidRule правило с некорректным условием или параметрами
	ErrInvalidRule = errors.New("pricing: invalid rule")
)
