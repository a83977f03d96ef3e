package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCondition is returned for a malformed rule condition payload
	ErrInvalidCondition = errors.New("invalid rule condition")

	// ErrInvalidPricingRule is returned for a rule that violates its invariants
	ErrInvalidPricingRule = errors.New("invalid pricing rule")
)

// RuleKind selects which condition fields apply to a rule
type RuleKind string

const (
	RuleSeason    RuleKind = "season"
	RuleDayOfWeek RuleKind = "dayOfWeek"
	RuleOccupancy RuleKind = "occupancy"
)

// ParseRuleKind parses a rule kind. "day" is accepted as an alias of dayOfWeek.
func ParseRuleKind(s string) (RuleKind, error) {
	switch s {
	case string(RuleSeason):
		return RuleSeason, nil
	case string(RuleDayOfWeek), "day":
		return RuleDayOfWeek, nil
	case string(RuleOccupancy):
		return RuleOccupancy, nil
	}
	return "", fmt.Errorf("%w: unknown rule kind %q", ErrInvalidPricingRule, s)
}

// AdjustmentType how a rule changes the running price
type AdjustmentType string

const (
	AdjustPercentage AdjustmentType = "percentage"
	AdjustFixed      AdjustmentType = "fixed"
)

// IsValid returns true for a known adjustment type
func (a AdjustmentType) IsValid() bool {
	return a == AdjustPercentage || a == AdjustFixed
}

// PricingRule adjusts the nightly rate when its condition matches.
// Higher Priority is applied first.
type PricingRule struct {
	ID             uuid.UUID
	Name           string
	Kind           RuleKind
	Condition      Condition
	Adjustment     float64
	AdjustmentType AdjustmentType
	Priority       int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks rule invariants including its condition
func (r *PricingRule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPricingRule)
	}
	if len(r.Name) > MaxRuleNameLength {
		return fmt.Errorf("%w: name is longer than %d", ErrInvalidPricingRule, MaxRuleNameLength)
	}
	if r.Priority < 0 {
		return fmt.Errorf("%w: priority must be non-negative", ErrInvalidPricingRule)
	}
	if !r.AdjustmentType.IsValid() {
		return fmt.Errorf("%w: unknown adjustment type %q", ErrInvalidPricingRule, r.AdjustmentType)
	}
	if r.Condition == nil {
		return fmt.Errorf("%w: condition is required", ErrInvalidCondition)
	}
	if r.Condition.Kind() != r.Kind {
		return fmt.Errorf("%w: %s condition on a %s rule", ErrInvalidCondition, r.Condition.Kind(), r.Kind)
	}
	return r.Condition.Validate()
}

// Apply applies the rule adjustment to the running price
func (r *PricingRule) Apply(price float64) float64 {
	if r.AdjustmentType == AdjustPercentage {
		return price * (1 + r.Adjustment/100)
	}
	return price + r.Adjustment
}

// Condition is one of SeasonCondition, DayOfWeekCondition, OccupancyCondition.
type Condition interface {
	Kind() RuleKind
	// Matches reports whether the condition holds for the given night and guest count
	Matches(night time.Time, guests int) bool
	Validate() error

	isCondition()
}

// SeasonCondition matches nights within [Start, End] inclusive
type SeasonCondition struct {
	Start time.Time
	End   time.Time
}

func (SeasonCondition) Kind() RuleKind { return RuleSeason }
func (SeasonCondition) isCondition()   {}

func (c SeasonCondition) Matches(night time.Time, _ int) bool {
	return !night.Before(c.Start) && !night.After(c.End)
}

func (c SeasonCondition) Validate() error {
	if c.Start.IsZero() || c.End.IsZero() {
		return fmt.Errorf("%w: season start and end dates are required", ErrInvalidCondition)
	}
	if c.End.Before(c.Start) {
		return fmt.Errorf("%w: season end %s is before start %s", ErrInvalidCondition,
			c.End.Format(DateFormat), c.Start.Format(DateFormat))
	}
	return nil
}

// DayOfWeekCondition matches nights whose weekday is in the set
type DayOfWeekCondition struct {
	Days [7]bool // indexed by time.Weekday
}

// NewDayOfWeekCondition builds a condition from a list of weekdays
func NewDayOfWeekCondition(days ...time.Weekday) DayOfWeekCondition {
	var c DayOfWeekCondition
	for _, d := range days {
		c.Days[d] = true
	}
	return c
}

func (DayOfWeekCondition) Kind() RuleKind { return RuleDayOfWeek }
func (DayOfWeekCondition) isCondition()   {}

func (c DayOfWeekCondition) Matches(night time.Time, _ int) bool {
	return c.Days[night.Weekday()]
}

func (c DayOfWeekCondition) Validate() error {
	for _, on := range c.Days {
		if on {
			return nil
		}
	}
	return fmt.Errorf("%w: at least one weekday must be selected", ErrInvalidCondition)
}

// OccupancyCondition matches stays with MinGuests <= guests <= MaxGuests.
// It is stay-level, so it matches every night of a stay identically.
type OccupancyCondition struct {
	MinGuests int
	MaxGuests int
}

func (OccupancyCondition) Kind() RuleKind { return RuleOccupancy }
func (OccupancyCondition) isCondition()   {}

func (c OccupancyCondition) Matches(_ time.Time, guests int) bool {
	return guests >= c.MinGuests && guests <= c.MaxGuests
}

func (c OccupancyCondition) Validate() error {
	if c.MinGuests < 1 {
		return fmt.Errorf("%w: min guests must be at least 1", ErrInvalidCondition)
	}
	if c.MinGuests > c.MaxGuests {
		return fmt.Errorf("%w: min guests %d is greater than max guests %d", ErrInvalidCondition,
			c.MinGuests, c.MaxGuests)
	}
	return nil
}
