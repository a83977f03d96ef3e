// Package rules кэш снимка активных правил ценообразования в Redis
package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// DefaultKey ключ снимка активных правил
const DefaultKey = "camp:pricing_rules:active"

// Cache read-through кэш активных правил
// Значение - JSON массив правил, условие хранится в исходном формате payload
type Cache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewCache создает кэш правил
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, key: DefaultKey, ttl: ttl}
}

type cachedRule struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	Condition      json.RawMessage `json:"condition,omitempty"`
	Adjustment     float64         `json:"adjustment"`
	AdjustmentType string          `json:"adjustment_type"`
	Priority       int             `json:"priority"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Get возвращает правила из кэша
// found=false, если снимка в кэше нет
func (c *Cache) Get(ctx context.Context) ([]domain.PricingRule, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCacheRead, err)
	}

	rules, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return rules, true, nil
}

// Set сохраняет снимок правил с TTL
func (c *Cache) Set(ctx context.Context, rules []domain.PricingRule) error {
	data, err := encode(rules)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate удаляет снимок, следующий Get вернет found=false
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

func encode(rules []domain.PricingRule) ([]byte, error) {
	out := make([]cachedRule, 0, len(rules))
	for _, r := range rules {
		item := cachedRule{
			ID:             r.ID,
			Name:           r.Name,
			Kind:           string(r.Kind),
			Adjustment:     r.Adjustment,
			AdjustmentType: string(r.AdjustmentType),
			Priority:       r.Priority,
			Active:         r.Active,
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		}
		// битое условие кэшируется без payload и снова станет BrokenCondition при чтении
		if raw, err := domain.MarshalCondition(r.Condition); err == nil {
			item.Condition = raw
		}
		out = append(out, item)
	}
	return json.Marshal(out)
}

func decode(data []byte) ([]domain.PricingRule, error) {
	var items []cachedRule
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	rules := make([]domain.PricingRule, 0, len(items))
	for _, item := range items {
		rule := domain.PricingRule{
			ID:             item.ID,
			Name:           item.Name,
			Kind:           domain.RuleKind(item.Kind),
			Adjustment:     item.Adjustment,
			AdjustmentType: domain.AdjustmentType(item.AdjustmentType),
			Priority:       item.Priority,
			Active:         item.Active,
			CreatedAt:      item.CreatedAt,
			UpdatedAt:      item.UpdatedAt,
		}

		cond, err := domain.ParseCondition(rule.Kind, item.Condition)
		if err != nil {
			cond = domain.BrokenCondition{RuleKind: rule.Kind, Err: err}
		}
		rule.Condition = cond

		rules = append(rules, rule)
	}
	return rules, nil
}
