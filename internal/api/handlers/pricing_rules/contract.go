package pricing_rules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules/models"
)

type PricingRuleService interface {
	List(ctx context.Context, activeOnly bool) (*models.RuleListResponse, error)
	Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateRuleRequest) (*models.RuleResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
