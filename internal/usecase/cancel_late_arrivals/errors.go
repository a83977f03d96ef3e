package cancel_late_arrivals

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_late_arrivals: internal error")
)
