package create_reservation

import "errors"

var (
	// ErrCabinNotFound возвращается, когда домик не найден
	ErrCabinNotFound = errors.New("create_reservation: cabin not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("create_reservation: end date must be after start date")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем вмещает домик
	ErrCapacityExceeded = errors.New("create_reservation: guest count exceeds cabin capacity")

	// ErrTooLateToBook возвращается, когда до заезда осталось меньше минимального срока
	ErrTooLateToBook = errors.New("create_reservation: too late to book these dates")

	// ErrStayTooShort возвращается, когда ночей меньше минимума
	ErrStayTooShort = errors.New("create_reservation: stay is shorter than the minimum")

	// ErrStayTooLong возвращается, когда ночей больше максимума
	ErrStayTooLong = errors.New("create_reservation: stay is longer than the maximum")

	// ErrBlocked возвращается, когда даты закрыты администратором
	ErrBlocked = errors.New("create_reservation: dates are blocked")

	// ErrConflict возвращается, когда даты уже заняты другим бронированием
	ErrConflict = errors.New("create_reservation: dates are already reserved")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
