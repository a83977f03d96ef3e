package pricing_rule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("pricing_rule.repository: rule not found")

	// ErrEncodeCondition возвращается, когда условие правила невозможно сериализовать
	ErrEncodeCondition = errors.New("pricing_rule.repository: failed to encode condition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pricing_rule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pricing_rule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pricing_rule.repository: failed to scan row")
)
