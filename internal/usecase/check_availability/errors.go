package check_availability

import "errors"

var (
	// ErrCabinNotFound возвращается, когда домик не найден
	ErrCabinNotFound = errors.New("check_availability: cabin not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("check_availability: end date must be after start date")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем вмещает домик
	ErrCapacityExceeded = errors.New("check_availability: guest count exceeds cabin capacity")

	// ErrTooLateToBook возвращается, когда до заезда осталось меньше минимального срока
	ErrTooLateToBook = errors.New("check_availability: too late to book these dates")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
