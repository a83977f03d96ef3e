package get_quote

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
	getQuote "github.com/m04kA/SMC-CampBooking/internal/usecase/get_quote"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	Cabin        handlers.CabinDTO        `json:"cabin"`
	StartDate    string                   `json:"startDate"`
	EndDate      string                   `json:"endDate"`
	Guests       int                      `json:"guests"`
	Availability handlers.AvailabilityDTO `json:"availability"`
	Quote        *QuoteDTO                `json:"quote"` // null, если даты недоступны
}

// QuoteDTO рассчитанная стоимость
// nightlyPrice - цена за ночь при uniform=true, иначе средняя; точная разбивка в nightly
type QuoteDTO struct {
	Nights       int              `json:"nights"`
	BasePrice    float64          `json:"basePrice"`
	NightlyPrice float64          `json:"nightlyPrice"`
	Uniform      bool             `json:"uniform"`
	Total        float64          `json:"totalPrice"`
	Nightly      []NightPriceDTO  `json:"nightly"`
	AppliedRules []AppliedRuleDTO `json:"appliedRules"`
}

// NightPriceDTO цена одной ночи
type NightPriceDTO struct {
	Date    string      `json:"date"`
	Price   float64     `json:"price"`
	RuleIDs []uuid.UUID `json:"ruleIds"`
}

// AppliedRuleDTO сработавшее правило
type AppliedRuleDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	RuleType       string    `json:"ruleType"`
	Adjustment     float64   `json:"priceAdjustment"`
	AdjustmentType string    `json:"adjustmentType"`
	Priority       int       `json:"priority"`
	Nights         int       `json:"nights"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *getQuote.Request, resp *getQuote.Response) *QuoteResponse {
	out := &QuoteResponse{
		Cabin:        handlers.FromCabin(resp.Cabin),
		StartDate:    req.Start.Format(domain.DateFormat),
		EndDate:      req.End.Format(domain.DateFormat),
		Guests:       req.Guests,
		Availability: handlers.FromAvailability(resp.Availability),
	}

	if q := resp.Quote; q != nil {
		dto := &QuoteDTO{
			Nights:       q.Nights,
			BasePrice:    q.BasePrice,
			NightlyPrice: q.NightlyPrice,
			Uniform:      q.Uniform,
			Total:        q.Total,
			Nightly:      make([]NightPriceDTO, 0, len(q.Nightly)),
			AppliedRules: make([]AppliedRuleDTO, 0, len(q.AppliedRules)),
		}
		for _, n := range q.Nightly {
			ids := n.AppliedRuleIDs
			if ids == nil {
				ids = []uuid.UUID{}
			}
			dto.Nightly = append(dto.Nightly, NightPriceDTO{Date: n.Date.Format(domain.DateFormat), Price: n.Price, RuleIDs: ids})
		}
		for _, a := range q.AppliedRules {
			dto.AppliedRules = append(dto.AppliedRules, AppliedRuleDTO{
				ID:             a.RuleID,
				Name:           a.Name,
				RuleType:       string(a.Kind),
				Adjustment:     a.Adjustment,
				AdjustmentType: string(a.AdjustmentType),
				Priority:       a.Priority,
				Nights:         a.Nights,
			})
		}
		out.Quote = dto
	}

	return out
}
