package pricing_rules

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/pricing_rule"
	"github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules/models"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
	"github.com/m04kA/SMC-CampBooking/pkg/ptr"
)

type mockRuleRepo struct{ mock.Mock }

func (m *mockRuleRepo) List(ctx context.Context, activeOnly bool) ([]domain.PricingRule, error) {
	args := m.Called(ctx, activeOnly)
	list, _ := args.Get(0).([]domain.PricingRule)
	return list, args.Error(1)
}

func (m *mockRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	args := m.Called(ctx, id)
	rule, _ := args.Get(0).(*domain.PricingRule)
	return rule, args.Error(1)
}

func (m *mockRuleRepo) Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	args := m.Called(ctx, rule)
	created, _ := args.Get(0).(*domain.PricingRule)
	return created, args.Error(1)
}

func (m *mockRuleRepo) Update(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	args := m.Called(ctx, rule)
	updated, _ := args.Get(0).(*domain.PricingRule)
	return updated, args.Error(1)
}

func (m *mockRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context) ([]domain.PricingRule, bool, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.PricingRule)
	return list, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, rules []domain.PricingRule) error {
	return m.Called(ctx, rules).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func summer() domain.PricingRule {
	return domain.PricingRule{
		ID:             uuid.New(),
		Name:           "Summer",
		Kind:           domain.RuleSeason,
		Condition:      domain.SeasonCondition{Start: daterange.MustParse("2025-06-01"), End: daterange.MustParse("2025-08-31")},
		Adjustment:     20,
		AdjustmentType: domain.AdjustPercentage,
		Priority:       10,
		Active:         true,
	}
}

func TestActiveRules_CacheHit(t *testing.T) {
	repo, cache := &mockRuleRepo{}, &mockCache{}
	cached := []domain.PricingRule{summer()}
	cache.On("Get", mock.Anything).Return(cached, true, nil)

	svc := NewService(repo, cache, logger.Nop())
	rules, err := svc.ActiveRules(context.Background())
	require.NoError(t, err)

	assert.Equal(t, cached, rules)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestActiveRules_MissLoadsAndStores(t *testing.T) {
	repo, cache := &mockRuleRepo{}, &mockCache{}
	stored := []domain.PricingRule{summer()}
	cache.On("Get", mock.Anything).Return(nil, false, nil)
	repo.On("List", mock.Anything, true).Return(stored, nil)
	cache.On("Set", mock.Anything, stored).Return(nil).Once()

	svc := NewService(repo, cache, logger.Nop())
	rules, err := svc.ActiveRules(context.Background())
	require.NoError(t, err)

	assert.Equal(t, stored, rules)
	cache.AssertExpectations(t)
}

func TestActiveRules_CacheErrorsFallBackToDatabase(t *testing.T) {
	repo, cache := &mockRuleRepo{}, &mockCache{}
	stored := []domain.PricingRule{summer()}
	cache.On("Get", mock.Anything).Return(nil, false, errors.New("connection refused"))
	cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	repo.On("List", mock.Anything, true).Return(stored, nil)

	svc := NewService(repo, cache, logger.Nop())
	rules, err := svc.ActiveRules(context.Background())
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestActiveRules_WithoutCache(t *testing.T) {
	repo := &mockRuleRepo{}
	repo.On("List", mock.Anything, true).Return(nil, errors.New("db down"))

	svc := NewService(repo, nil, logger.Nop())
	_, err := svc.ActiveRules(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate_ParsesConditionAndInvalidatesCache(t *testing.T) {
	repo, cache := &mockRuleRepo{}, &mockCache{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.PricingRule) bool {
		cond, ok := r.Condition.(domain.OccupancyCondition)
		return ok && cond.MinGuests == 5 && cond.MaxGuests == 8 && r.Active
	})).Return(func() *domain.PricingRule {
		r := &domain.PricingRule{
			ID:             uuid.New(),
			Name:           "Large group",
			Kind:           domain.RuleOccupancy,
			Condition:      domain.OccupancyCondition{MinGuests: 5, MaxGuests: 8},
			Adjustment:     25,
			AdjustmentType: domain.AdjustFixed,
			Priority:       5,
			Active:         true,
		}
		return r
	}(), nil)
	cache.On("Invalidate", mock.Anything).Return(nil).Once()

	svc := NewService(repo, cache, logger.Nop())
	resp, err := svc.Create(context.Background(), &models.CreateRuleRequest{
		Name:           "Large group",
		Kind:           "occupancy",
		Condition:      json.RawMessage(`{"min_guests":5,"max_guests":8}`),
		Adjustment:     25,
		AdjustmentType: "fixed",
		Priority:       5,
	})
	require.NoError(t, err)

	assert.True(t, resp.Valid)
	assert.JSONEq(t, `{"min_guests":5,"max_guests":8}`, string(resp.Condition))
	cache.AssertExpectations(t)
}

func TestCreate_RejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateRuleRequest
		wantErr error
	}{
		{
			name:    "unknown type",
			req:     models.CreateRuleRequest{Name: "X", Kind: "weather", Condition: json.RawMessage(`{}`), AdjustmentType: "fixed"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "inverted season",
			req:     models.CreateRuleRequest{Name: "X", Kind: "season", Condition: json.RawMessage(`{"start_date":"2025-09-01","end_date":"2025-06-01"}`), AdjustmentType: "percentage"},
			wantErr: ErrInvalidCondition,
		},
		{
			name:    "empty weekday set",
			req:     models.CreateRuleRequest{Name: "X", Kind: "dayOfWeek", Condition: json.RawMessage(`{"monday":false}`), AdjustmentType: "percentage"},
			wantErr: ErrInvalidCondition,
		},
		{
			name:    "occupancy min above max",
			req:     models.CreateRuleRequest{Name: "X", Kind: "occupancy", Condition: json.RawMessage(`{"min_guests":6,"max_guests":2}`), AdjustmentType: "fixed"},
			wantErr: ErrInvalidCondition,
		},
		{
			name:    "unknown adjustment type",
			req:     models.CreateRuleRequest{Name: "X", Kind: "occupancy", Condition: json.RawMessage(`{"min_guests":1,"max_guests":2}`), AdjustmentType: "ratio"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "blank name",
			req:     models.CreateRuleRequest{Name: "  ", Kind: "occupancy", Condition: json.RawMessage(`{"min_guests":1,"max_guests":2}`), AdjustmentType: "fixed"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRuleRepo{}
			svc := NewService(repo, nil, logger.Nop())

			_, err := svc.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate_PartialChanges(t *testing.T) {
	existing := summer()
	repo, cache := &mockRuleRepo{}, &mockCache{}
	repo.On("GetByID", mock.Anything, existing.ID).Return(&existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.PricingRule) bool {
		return r.Priority == 3 && !r.Active && r.Name == "Summer" && r.Kind == domain.RuleSeason
	})).Return(&existing, nil)
	cache.On("Invalidate", mock.Anything).Return(nil)

	svc := NewService(repo, cache, logger.Nop())
	_, err := svc.Update(context.Background(), existing.ID, &models.UpdateRuleRequest{
		Priority: ptr.Ptr(3),
		Active:   ptr.Ptr(false),
	})
	require.NoError(t, err)
	cache.AssertCalled(t, "Invalidate", mock.Anything)
}

func TestUpdate_KindChangeRequiresCondition(t *testing.T) {
	existing := summer()
	repo := &mockRuleRepo{}
	repo.On("GetByID", mock.Anything, existing.ID).Return(&existing, nil)

	svc := NewService(repo, nil, logger.Nop())
	_, err := svc.Update(context.Background(), existing.ID, &models.UpdateRuleRequest{Kind: ptr.Ptr("occupancy")})
	assert.ErrorIs(t, err, ErrInvalidCondition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateDelete_NotFound(t *testing.T) {
	id := uuid.New()
	repo := &mockRuleRepo{}
	repo.On("GetByID", mock.Anything, id).Return(nil, ruleRepo.ErrRuleNotFound)
	repo.On("Delete", mock.Anything, id).Return(ruleRepo.ErrRuleNotFound)

	svc := NewService(repo, nil, logger.Nop())

	_, err := svc.Update(context.Background(), id, &models.UpdateRuleRequest{})
	assert.ErrorIs(t, err, ErrRuleNotFound)

	err = svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestFromDomainRule_BrokenCondition(t *testing.T) {
	rule := summer()
	rule.Condition = domain.BrokenCondition{RuleKind: domain.RuleSeason, Err: domain.ErrInvalidCondition}

	resp := models.FromDomainRule(&rule)
	assert.False(t, resp.Valid)
	assert.NotEmpty(t, resp.Problem)
	assert.Equal(t, "null", string(resp.Condition))
}
