package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppliedRule is a rule that fired on at least one night of a stay
type AppliedRule struct {
	RuleID         uuid.UUID
	Name           string
	Kind           RuleKind
	Adjustment     float64
	AdjustmentType AdjustmentType
	Priority       int
	Nights         int // number of nights the rule fired on
}

// NightPrice is the price of a single night after all matching rules
type NightPrice struct {
	Date           time.Time
	Price          float64
	AppliedRuleIDs []uuid.UUID
}

// Quote is the priced result of a stay.
// NightlyPrice is meaningful only when Uniform is true; otherwise Nightly is authoritative.
type Quote struct {
	CabinID      uuid.UUID
	Nights       int
	Guests       int
	BasePrice    float64
	NightlyPrice float64
	Uniform      bool
	Nightly      []NightPrice
	AppliedRules []AppliedRule
	Total        float64
}
