package get_quote

import "errors"

var (
	// ErrCabinNotFound возвращается, когда домик не найден
	ErrCabinNotFound = errors.New("get_quote: cabin not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("get_quote: end date must be after start date")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем вмещает домик
	ErrCapacityExceeded = errors.New("get_quote: guest count exceeds cabin capacity")

	// ErrTooLateToBook возвращается, когда до заезда осталось меньше минимального срока
	ErrTooLateToBook = errors.New("get_quote: too late to book these dates")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
