package pricing_rules

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	pricingRules "github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules"
	"github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules/models"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
)

type stubService struct {
	err        error
	activeOnly bool
}

func (s *stubService) List(_ context.Context, activeOnly bool) (*models.RuleListResponse, error) {
	s.activeOnly = activeOnly
	return &models.RuleListResponse{Rules: []models.RuleResponse{}}, s.err
}

func (s *stubService) Create(_ context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RuleResponse{ID: uuid.New(), Name: req.Name}, nil
}

func (s *stubService) Update(_ context.Context, id uuid.UUID, _ *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RuleResponse{ID: id}, nil
}

func (s *stubService) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

const validRule = `{"name":"Summer","ruleType":"season","condition":{"start_date":"2025-06-01","end_date":"2025-08-31"},"priceAdjustment":20,"adjustmentType":"percentage","priority":10}`

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"created", validRule, nil, http.StatusCreated},
		{"missing condition", `{"name":"X","ruleType":"season","adjustmentType":"fixed"}`, nil, http.StatusBadRequest},
		{"bad adjustment type", strings.Replace(validRule, "percentage", "ratio", 1), nil, http.StatusBadRequest},
		{"invalid condition", validRule, fmt.Errorf("%w: inverted", pricingRules.ErrInvalidCondition), http.StatusBadRequest},
		{"internal", validRule, pricingRules.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.Nop())
			w := httptest.NewRecorder()
			h.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/pricing-rules", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestList_ActiveOnlyParam(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/pricing-rules?activeOnly=true", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.activeOnly)

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/pricing-rules?activeOnly=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDelete(t *testing.T) {
	id := uuid.NewString()

	h := NewHandler(&stubService{}, logger.Nop())
	r := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/pricing-rules/"+id, nil), map[string]string{"ruleId": id})
	w := httptest.NewRecorder()
	h.Delete(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	h = NewHandler(&stubService{err: pricingRules.ErrRuleNotFound}, logger.Nop())
	w = httptest.NewRecorder()
	h.Delete(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
