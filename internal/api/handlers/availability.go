package handlers

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// CabinDTO краткие данные домика
type CabinDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Capacity  int       `json:"capacity"`
	BasePrice float64   `json:"basePrice"`
}

// BlockDTO блокировка, из-за которой даты недоступны
type BlockDTO struct {
	ID        uuid.UUID  `json:"id"`
	CabinID   *uuid.UUID `json:"cabinId"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Reason    string     `json:"reason"`
	BlockType string     `json:"blockType"`
}

// ConflictDTO пересекающееся бронирование без данных гостя
type ConflictDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

// HolidayDTO праздник внутри проживания
type HolidayDTO struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// AvailabilityDTO результат проверки доступности
type AvailabilityDTO struct {
	Available bool         `json:"available"`
	Verdict   string       `json:"verdict"`
	Message   string       `json:"message,omitempty"`
	Nights    int          `json:"nights"`
	MinNights int          `json:"minNights"`
	MaxNights int          `json:"maxNights"`
	Blocking  *BlockDTO    `json:"blocking,omitempty"`
	Conflict  *ConflictDTO `json:"conflict,omitempty"`
	Holidays  []HolidayDTO `json:"holidays"`
}

// FromCabin конвертирует домик в DTO
func FromCabin(c *domain.Cabin) CabinDTO {
	return CabinDTO{
		ID:        c.ID,
		Name:      c.Name,
		Category:  string(c.Category),
		Capacity:  c.Capacity,
		BasePrice: c.BasePrice,
	}
}

// FromAvailability конвертирует результат проверки в DTO
func FromAvailability(r *availability.Result) AvailabilityDTO {
	dto := AvailabilityDTO{
		Available: r.Available(),
		Verdict:   string(r.Verdict),
		Nights:    r.Nights,
		MinNights: r.MinNights,
		MaxNights: r.MaxNights,
		Holidays:  make([]HolidayDTO, 0, len(r.Holidays)),
	}

	if err := r.Err(); err != nil {
		dto.Message = err.Error()
	}
	if b := r.Blocking; b != nil {
		dto.Blocking = &BlockDTO{
			ID:        b.ID,
			CabinID:   b.CabinID,
			StartDate: b.Start.Format(domain.DateFormat),
			EndDate:   b.End.Format(domain.DateFormat),
			Reason:    b.Reason,
			BlockType: string(b.Kind),
		}
	}
	if c := r.Conflict; c != nil {
		dto.Conflict = &ConflictDTO{
			StartDate: c.Start.Format(domain.DateFormat),
			EndDate:   c.End.Format(domain.DateFormat),
			Status:    string(c.Status),
		}
	}
	for _, h := range r.Holidays {
		dto.Holidays = append(dto.Holidays, HolidayDTO{Name: h.Name, Date: h.Date.Format(domain.DateFormat)})
	}

	return dto
}
