package pricing_rules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// RuleRepository интерфейс репозитория правил ценообразования
type RuleRepository interface {
	List(ctx context.Context, activeOnly bool) ([]domain.PricingRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error)
	Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	Update(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RulesCache кэш снимка активных правил
type RulesCache interface {
	Get(ctx context.Context) ([]domain.PricingRule, bool, error)
	Set(ctx context.Context, rules []domain.PricingRule) error
	Invalidate(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
