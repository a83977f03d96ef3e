package pricing_rules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	ruleRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/pricing_rule"
	"github.com/m04kA/SMC-CampBooking/internal/service/pricing_rules/models"
)

// Service сервис для работы с правилами ценообразования
type Service struct {
	ruleRepo RuleRepository
	cache    RulesCache
	logger   Logger
}

// NewService создает новый экземпляр сервиса правил
// cache может быть nil - тогда активные правила всегда читаются из БД
func NewService(
	ruleRepo RuleRepository,
	cache RulesCache,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		cache:    cache,
		logger:   logger,
	}
}

// ActiveRules возвращает снимок активных правил для расчета цены
// Сначала читает кэш; при промахе или ошибке кэша читает БД и обновляет кэш
func (s *Service) ActiveRules(ctx context.Context) ([]domain.PricingRule, error) {
	if s.cache != nil {
		rules, found, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("ActiveRules: cache read failed, falling back to database: %v", err)
		} else if found {
			return rules, nil
		}
	}

	rules, err := s.ruleRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("ActiveRules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ActiveRules - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, rules); err != nil {
			s.logger.Warn("ActiveRules: failed to cache %d rules: %v", len(rules), err)
		}
	}

	return rules, nil
}

// List возвращает правила, включая неактивные, если activeOnly=false
// Доступно только администраторам
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching pricing rules, activeOnly=%t", activeOnly)

	rules, err := s.ruleRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d rules", len(rules))
	return models.FromDomainRuleList(rules), nil
}

// GetByID получает правило по ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.RuleResponse, error) {
	s.logger.Info("GetByID: fetching rule id=%s", id)

	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("GetByID: rule id=%s not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetByID: repository error for rule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// Create создает новое правило
// Условие разбирается и проверяется при записи, некорректное правило не сохраняется
func (s *Service) Create(ctx context.Context, req *models.CreateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Create: creating rule name=%q, type=%s, priority=%d", req.Name, req.Kind, req.Priority)

	// 1. Разбираем тип и условие
	kind, err := domain.ParseRuleKind(strings.TrimSpace(req.Kind))
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cond, err := domain.ParseCondition(kind, req.Condition)
	if err != nil {
		s.logger.Warn("Create: invalid %s condition: %v", kind, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	rule := &domain.PricingRule{
		Name:           strings.TrimSpace(req.Name),
		Kind:           kind,
		Condition:      cond,
		Adjustment:     req.Adjustment,
		AdjustmentType: domain.AdjustmentType(req.AdjustmentType),
		Priority:       req.Priority,
		Active:         active,
	}

	// 2. Проверяем инварианты правила
	if err := s.validate(rule); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кэш активных правил
	s.invalidate(ctx, "Create")

	s.logger.Info("Create: successfully created rule id=%s", created.ID)
	return models.FromDomainRule(created), nil
}

// Update обновляет существующее правило
// Поддерживает частичное обновление - обновляются только указанные поля
// При смене типа правила условие обязательно
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Update: updating rule id=%s", id)

	// 1. Получаем существующее правило
	rule, err := s.ruleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%s not found", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Применяем изменения
	if err := applyUpdate(rule, req); err != nil {
		s.logger.Warn("Update: invalid changes for rule id=%s: %v", id, err)
		return nil, err
	}

	// 3. Проверяем инварианты правила
	if err := s.validate(rule); err != nil {
		s.logger.Warn("Update: validation failed for rule id=%s: %v", id, err)
		return nil, err
	}

	// 4. Сохраняем
	updated, err := s.ruleRepo.Update(ctx, rule)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%s disappeared before update", id)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Update")

	s.logger.Info("Update: successfully updated rule id=%s", id)
	return models.FromDomainRule(updated), nil
}

// Delete удаляет правило
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting rule id=%s", id)

	if err := s.ruleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%s not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, "Delete")

	s.logger.Info("Delete: successfully deleted rule id=%s", id)
	return nil
}

// validate переводит ошибки domain в ошибки сервиса
func (s *Service) validate(rule *domain.PricingRule) error {
	err := rule.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidCondition):
		return fmt.Errorf("%w: %v", ErrInvalidCondition, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}

// invalidate сбрасывает кэш; ошибка кэша не отменяет успешную запись, снимок истечет по TTL
func (s *Service) invalidate(ctx context.Context, op string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("%s: failed to invalidate rules cache: %v", op, err)
	}
}

// applyUpdate применяет непустые поля запроса к правилу
func applyUpdate(rule *domain.PricingRule, req *models.UpdateRuleRequest) error {
	kind := rule.Kind
	if req.Kind != nil {
		parsed, err := domain.ParseRuleKind(strings.TrimSpace(*req.Kind))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		kind = parsed
	}

	switch {
	case len(req.Condition) > 0:
		cond, err := domain.ParseCondition(kind, req.Condition)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCondition, err)
		}
		rule.Condition = cond
	case kind != rule.Kind:
		return fmt.Errorf("%w: condition is required when ruleType changes", ErrInvalidCondition)
	}
	rule.Kind = kind

	if req.Name != nil {
		rule.Name = strings.TrimSpace(*req.Name)
	}
	if req.Adjustment != nil {
		rule.Adjustment = *req.Adjustment
	}
	if req.AdjustmentType != nil {
		rule.AdjustmentType = domain.AdjustmentType(*req.AdjustmentType)
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	return nil
}
