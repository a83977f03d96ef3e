package pricing

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// SkippedRule правило, исключенное из расчета при компиляции
type SkippedRule struct {
	RuleID uuid.UUID
	Name   string
	Err    error
}

// RuleSet проверенный и упорядоченный набор активных правил.
// Порядок: приоритет по убыванию, при равенстве - ID по возрастанию (побайтово).
// RuleSet неизменяем и может использоваться из нескольких горутин.
type RuleSet struct {
	rules []domain.PricingRule
}

// Compile проверяет правила и готовит их к расчету цены.
// Неактивные правила пропускаются молча, некорректные - пропускаются и логируются.
func Compile(rules []domain.PricingRule, logger Logger) (*RuleSet, []SkippedRule) {
	if logger == nil {
		logger = nopLogger{}
	}

	compiled := make([]domain.PricingRule, 0, len(rules))
	var skipped []SkippedRule

	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		if err := rule.Validate(); err != nil {
			wrapped := fmt.Errorf("%w: %v", ErrInvalidRule, err)
			skipped = append(skipped, SkippedRule{RuleID: rule.ID, Name: rule.Name, Err: wrapped})
			logger.Warn("Compile: skipping rule rule_id=%s name=%q: %v", rule.ID, rule.Name, err)
			continue
		}
		compiled = append(compiled, rule)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return less(&compiled[i], &compiled[j])
	})

	return &RuleSet{rules: compiled}, skipped
}

func less(a, b *domain.PricingRule) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

// Len количество правил в наборе
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Rules возвращает копию правил в порядке применения
func (s *RuleSet) Rules() []domain.PricingRule {
	if s == nil {
		return nil
	}
	out := make([]domain.PricingRule, len(s.rules))
	copy(out, s.rules)
	return out
}
