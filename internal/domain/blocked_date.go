package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// BlockKind reason category of an administrator-declared block
type BlockKind string

const (
	BlockMaintenance BlockKind = "maintenance"
	BlockRenovation  BlockKind = "renovation"
	BlockPrivate     BlockKind = "private"
)

// IsValid returns true for a known block kind
func (k BlockKind) IsValid() bool {
	switch k {
	case BlockMaintenance, BlockRenovation, BlockPrivate:
		return true
	}
	return false
}

// BlockedDate is an unavailable range independent of reservations.
// Start and End are inclusive. A nil CabinID blocks every cabin.
type BlockedDate struct {
	ID        uuid.UUID
	CabinID   *uuid.UUID
	Start     time.Time
	End       time.Time
	Reason    string
	Kind      BlockKind
	Notes     string
	CreatedAt time.Time
}

// IsBlanket returns true if the block applies to all cabins
func (b *BlockedDate) IsBlanket() bool {
	return b.CabinID == nil
}

// AppliesTo returns true if the block covers the given cabin
func (b *BlockedDate) AppliesTo(cabinID uuid.UUID) bool {
	return b.CabinID == nil || *b.CabinID == cabinID
}

// Range returns the blocked days as a half-open interval [Start, End+1)
func (b *BlockedDate) Range() daterange.Range {
	return daterange.FromInclusive(b.Start, b.End)
}
