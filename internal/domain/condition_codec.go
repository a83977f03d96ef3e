package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// Condition payloads are stored as JSON in the shape the admin panel writes:
//   season:    {"start_date": "2025-07-01", "end_date": "2025-08-31"}
//   dayOfWeek: {"monday": true, "saturday": true}
//   occupancy: {"min_guests": 5, "max_guests": 12}

type seasonPayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type occupancyPayload struct {
	MinGuests int `json:"min_guests"`
	MaxGuests int `json:"max_guests"`
}

var weekdayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// ParseCondition decodes a raw payload for the given rule kind and validates it
func ParseCondition(kind RuleKind, raw []byte) (Condition, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty %s payload", ErrInvalidCondition, kind)
	}

	var cond Condition
	switch kind {
	case RuleSeason:
		var p seasonPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: season payload: %v", ErrInvalidCondition, err)
		}
		start, err := daterange.Parse(p.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: season start_date %q", ErrInvalidCondition, p.StartDate)
		}
		end, err := daterange.Parse(p.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: season end_date %q", ErrInvalidCondition, p.EndDate)
		}
		cond = SeasonCondition{Start: start, End: end}

	case RuleDayOfWeek:
		var p map[string]bool
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: day of week payload: %v", ErrInvalidCondition, err)
		}
		var c DayOfWeekCondition
		for name, on := range p {
			day, ok := parseWeekday(name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidCondition, name)
			}
			c.Days[day] = on
		}
		cond = c

	case RuleOccupancy:
		var p occupancyPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("%w: occupancy payload: %v", ErrInvalidCondition, err)
		}
		cond = OccupancyCondition{MinGuests: p.MinGuests, MaxGuests: p.MaxGuests}

	default:
		return nil, fmt.Errorf("%w: unknown rule kind %q", ErrInvalidCondition, kind)
	}

	if err := cond.Validate(); err != nil {
		return nil, err
	}
	return cond, nil
}

// MarshalCondition encodes a condition into its stored JSON payload
func MarshalCondition(cond Condition) ([]byte, error) {
	switch c := cond.(type) {
	case SeasonCondition:
		return json.Marshal(seasonPayload{
			StartDate: c.Start.Format(DateFormat),
			EndDate:   c.End.Format(DateFormat),
		})
	case DayOfWeekCondition:
		p := make(map[string]bool, 7)
		for day, on := range c.Days {
			if on {
				p[weekdayNames[day]] = true
			}
		}
		return json.Marshal(p)
	case OccupancyCondition:
		return json.Marshal(occupancyPayload{MinGuests: c.MinGuests, MaxGuests: c.MaxGuests})
	case nil:
		return nil, fmt.Errorf("%w: nil condition", ErrInvalidCondition)
	}
	return nil, fmt.Errorf("%w: unsupported condition %T", ErrInvalidCondition, cond)
}

func parseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weekdayNames {
		if n == name {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// BrokenCondition stands in for a stored payload that failed to parse.
// It never matches and its Validate returns the parse error, so the rule is skipped at compile time.
type BrokenCondition struct {
	RuleKind RuleKind
	Err      error
}

func (c BrokenCondition) Kind() RuleKind            { return c.RuleKind }
func (BrokenCondition) isCondition()                {}
func (BrokenCondition) Matches(time.Time, int) bool { return false }

func (c BrokenCondition) Validate() error {
	if c.Err == nil {
		return ErrInvalidCondition
	}
	return c.Err
}
