package rules

import "errors"

var (
	// ErrCacheRead ошибка чтения из Redis
	ErrCacheRead = errors.New("rules.cache: failed to read")

	// ErrCacheWrite ошибка записи в Redis
	ErrCacheWrite = errors.New("rules.cache: failed to write")

	// ErrDecode кэшированное значение не удалось разобрать
	ErrDecode = errors.New("rules.cache: failed to decode cached rules")
)
