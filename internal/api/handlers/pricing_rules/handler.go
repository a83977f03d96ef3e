package pricing_rules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	pricingRules "github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules"
	"github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules/models"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidActiveOnly  = "некорректное значение activeOnly"
	msgInvalidRule        = "некорректное правило ценообразования"
	msgInvalidCondition   = "условие правила не соответствует его типу"
	msgNotFound           = "правило не найдено"
)

// Handler обработчики управления правилами ценообразования (только для администраторов)
type Handler struct {
	service PricingRuleService
	logger  Logger
}

func NewHandler(service PricingRuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/pricing-rules?activeOnly=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("activeOnly"); raw != "" {
		var err error
		if activeOnly, err = strconv.ParseBool(raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidActiveOnly)
			return
		}
	}

	rules, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("GET /pricing-rules - Failed to list rules: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rules)
}

// Create POST /api/v1/pricing-rules
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /pricing-rules", err)
		return
	}

	h.logger.Info("POST /pricing-rules - Rule created: rule_id=%s", rule.ID)
	handlers.RespondJSON(w, http.StatusCreated, rule)
}

// Update PUT /api/v1/pricing-rules/{ruleId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ruleID, err := handlers.PathUUID(r, "ruleId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req models.UpdateRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /pricing-rules/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := h.service.Update(r.Context(), ruleID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /pricing-rules/{id}", err)
		return
	}

	h.logger.Info("PUT /pricing-rules/{id} - Rule updated: rule_id=%s", ruleID)
	handlers.RespondJSON(w, http.StatusOK, rule)
}

// Delete DELETE /api/v1/pricing-rules/{ruleId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ruleID, err := handlers.PathUUID(r, "ruleId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.Delete(r.Context(), ruleID); err != nil {
		h.respondServiceError(w, "DELETE /pricing-rules/{id}", err)
		return
	}

	h.logger.Info("DELETE /pricing-rules/{id} - Rule deleted: rule_id=%s", ruleID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, pricingRules.ErrRuleNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, pricingRules.ErrInvalidCondition):
		h.logger.Warn("%s - Invalid condition: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidCondition)

	case errors.Is(err, pricingRules.ErrInvalidInput):
		h.logger.Warn("%s - Invalid rule: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRule)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
