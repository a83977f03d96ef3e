package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// Request модели

// CreateRuleRequest запрос на создание правила ценообразования
// Condition - payload в формате типа правила:
// season {"start_date","end_date"}, dayOfWeek {"monday":true,...}, occupancy {"min_guests","max_guests"}
type CreateRuleRequest struct {
	Name           string          `json:"name" validate:"required,max=200"`
	Kind           string          `json:"ruleType" validate:"required"`
	Condition      json.RawMessage `json:"condition" validate:"required"`
	Adjustment     float64         `json:"priceAdjustment"`
	AdjustmentType string          `json:"adjustmentType" validate:"required,oneof=percentage fixed"`
	Priority       int             `json:"priority" validate:"gte=0"`
	Active         *bool           `json:"isActive,omitempty"` // по умолчанию true
}

// UpdateRuleRequest запрос на обновление правила
// Все поля опциональны - обновляются только переданные значения
type UpdateRuleRequest struct {
	Name           *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Kind           *string         `json:"ruleType,omitempty"`
	Condition      json.RawMessage `json:"condition,omitempty"`
	Adjustment     *float64        `json:"priceAdjustment,omitempty"`
	AdjustmentType *string         `json:"adjustmentType,omitempty" validate:"omitempty,oneof=percentage fixed"`
	Priority       *int            `json:"priority,omitempty" validate:"omitempty,gte=0"`
	Active         *bool           `json:"isActive,omitempty"`
}

// Response модели

// RuleResponse ответ с данными правила
// Valid=false означает, что сохраненное условие не разбирается и правило не применяется
type RuleResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Kind           string          `json:"ruleType"`
	Condition      json.RawMessage `json:"condition"`
	Adjustment     float64         `json:"priceAdjustment"`
	AdjustmentType string          `json:"adjustmentType"`
	Priority       int             `json:"priority"`
	Active         bool            `json:"isActive"`
	Valid          bool            `json:"valid"`
	Problem        string          `json:"problem,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.PricingRule) *RuleResponse {
	if r == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:             r.ID,
		Name:           r.Name,
		Kind:           string(r.Kind),
		Adjustment:     r.Adjustment,
		AdjustmentType: string(r.AdjustmentType),
		Priority:       r.Priority,
		Active:         r.Active,
		Valid:          true,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}

	if err := r.Validate(); err != nil {
		resp.Valid = false
		resp.Problem = err.Error()
	}
	if raw, err := domain.MarshalCondition(r.Condition); err == nil {
		resp.Condition = raw
	} else {
		resp.Condition = json.RawMessage("null")
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []domain.PricingRule) *RuleListResponse {
	resp := &RuleListResponse{
		Rules: make([]RuleResponse, 0, len(rules)),
	}

	for i := range rules {
		resp.Rules = append(resp.Rules, *FromDomainRule(&rules[i]))
	}

	return resp
}
