package pricing_rules

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("pricing_rules: rule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing_rules: invalid input data")

	// ErrInvalidCondition возвращается, когда условие правила не соответствует его типу
	ErrInvalidCondition = errors.New("pricing_rules: invalid rule condition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing_rules: internal error")
)
