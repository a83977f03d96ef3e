// Package pricing вычисляет стоимость проживания по базовой цене домика и набору правил.
//
// Пакет не выполняет ввода-вывода: на вход подается снимок правил, на выходе - Quote.
package pricing

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// Evaluator рассчитывает цену проживания
type Evaluator struct {
	logger Logger
}

// NewEvaluator создает калькулятор цены. logger может быть nil.
func NewEvaluator(logger Logger) *Evaluator {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Evaluator{logger: logger}
}

// ComputePrice компилирует правила и рассчитывает цену за один вызов.
// Некорректные правила пропускаются.
func ComputePrice(cabin *domain.Cabin, stay domain.Stay, rules []domain.PricingRule) (*domain.Quote, error) {
	set, _ := Compile(rules, nil)
	return NewEvaluator(nil).Quote(cabin, stay, set)
}

// Quote рассчитывает стоимость каждой ночи и итог.
// Для каждой ночи цена проходит через все подходящие правила в порядке RuleSet,
// итоговая цена ночи не может быть отрицательной и округляется до копеек.
func (e *Evaluator) Quote(cabin *domain.Cabin, stay domain.Stay, rules *RuleSet) (*domain.Quote, error) {
	// 1. Валидация входных данных
	if cabin == nil || cabin.BasePrice <= 0 {
		return nil, ErrInvalidCabin
	}
	nights := stay.Nights()
	if nights < 1 {
		return nil, ErrInvalidRange
	}
	if stay.Guests < 1 {
		return nil, ErrInvalidGuestCount
	}

	var ordered []domain.PricingRule
	if rules != nil {
		ordered = rules.rules
	}

	// 2. Расчет по ночам
	quote := &domain.Quote{
		CabinID:   cabin.ID,
		Nights:    nights,
		Guests:    stay.Guests,
		BasePrice: cabin.BasePrice,
		Nightly:   make([]domain.NightPrice, 0, nights),
	}

	fired := make(map[uuid.UUID]int, len(ordered))
	var total float64

	for _, night := range stay.Range().Days() {
		price := cabin.BasePrice
		var applied []uuid.UUID

		for i := range ordered {
			rule := &ordered[i]
			if !rule.Condition.Matches(night, stay.Guests) {
				continue
			}
			price = rule.Apply(price)
			applied = append(applied, rule.ID)
			fired[rule.ID]++
		}

		// Итог копится без округления, цена ночи округляется только для отображения
		price = math.Max(price, 0)
		total += price

		quote.Nightly = append(quote.Nightly, domain.NightPrice{
			Date:           night,
			Price:          roundCents(price),
			AppliedRuleIDs: applied,
		})
	}

	// 3. Итоги
	quote.Total = roundCents(total)
	quote.Uniform = isUniform(quote.Nightly)
	if quote.Uniform {
		quote.NightlyPrice = quote.Nightly[0].Price
	} else {
		quote.NightlyPrice = roundCents(total / float64(nights))
	}

	for i := range ordered {
		rule := &ordered[i]
		n, ok := fired[rule.ID]
		if !ok {
			continue
		}
		quote.AppliedRules = append(quote.AppliedRules, domain.AppliedRule{
			RuleID:         rule.ID,
			Name:           rule.Name,
			Kind:           rule.Kind,
			Adjustment:     rule.Adjustment,
			AdjustmentType: rule.AdjustmentType,
			Priority:       rule.Priority,
			Nights:         n,
		})
	}

	e.logger.Debug("Quote: cabin_id=%s nights=%d guests=%d applied=[%s] total=%.2f",
		cabin.ID, nights, stay.Guests, appliedNames(quote.AppliedRules), quote.Total)

	return quote, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func isUniform(nightly []domain.NightPrice) bool {
	for i := 1; i < len(nightly); i++ {
		if nightly[i].Price != nightly[0].Price {
			return false
		}
	}
	return len(nightly) > 0
}

func appliedNames(rules []domain.AppliedRule) string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	return strings.Join(names, ",")
}
