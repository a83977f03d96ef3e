package domain

import (
	"time"

	"github.com/google/uuid"
)

// CabinCategory category of a cabin in the catalog
type CabinCategory string

const (
	CategoryStandard CabinCategory = "standard"
	CategoryFamily   CabinCategory = "family"
	CategoryLuxury   CabinCategory = "luxury"
	CategoryGroup    CabinCategory = "group"
)

// IsValid returns true for a known category
func (c CabinCategory) IsValid() bool {
	switch c {
	case CategoryStandard, CategoryFamily, CategoryLuxury, CategoryGroup:
		return true
	}
	return false
}

// Cabin is a bookable cabin. BasePrice is the nightly rate before pricing rules.
type Cabin struct {
	ID        uuid.UUID
	Name      string
	BasePrice float64
	Capacity  int
	Category  CabinCategory
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanHost returns true if the cabin fits the given number of guests
func (c *Cabin) CanHost(guests int) bool {
	return guests >= 1 && guests <= c.Capacity
}
