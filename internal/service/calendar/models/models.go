package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

// Request модели

// CreateBlockedDateRequest запрос на блокировку дат
// Даты включительно, CabinID=nil блокирует все домики
type CreateBlockedDateRequest struct {
	CabinID   *uuid.UUID `json:"cabinId,omitempty"`
	StartDate string     `json:"startDate" validate:"required"`
	EndDate   string     `json:"endDate" validate:"required"`
	Reason    string     `json:"reason" validate:"required,max=500"`
	BlockType string     `json:"blockType" validate:"required,oneof=maintenance renovation private"`
	Notes     string     `json:"notes,omitempty" validate:"max=1000"`
}

// ListBlockedDatesRequest фильтр списка блокировок
type ListBlockedDatesRequest struct {
	CabinID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

// CreateHolidayRequest запрос на создание праздника
type CreateHolidayRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Date      string `json:"date" validate:"required"`
	Recurring bool   `json:"isRecurring"`
}

// Response модели

// BlockedDateResponse ответ с данными блокировки
type BlockedDateResponse struct {
	ID        uuid.UUID  `json:"id"`
	CabinID   *uuid.UUID `json:"cabinId"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Reason    string     `json:"reason"`
	BlockType string     `json:"blockType"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// BlockedDateListResponse ответ со списком блокировок
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// HolidayResponse ответ с данными праздника
type HolidayResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	Recurring bool      `json:"isRecurring"`
	CreatedAt time.Time `json:"createdAt"`
}

// HolidayListResponse ответ со списком праздников
type HolidayListResponse struct {
	Holidays []HolidayResponse `json:"holidays"`
}

// Методы конвертации

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}

	return &BlockedDateResponse{
		ID:        b.ID,
		CabinID:   b.CabinID,
		StartDate: b.Start.Format(domain.DateFormat),
		EndDate:   b.End.Format(domain.DateFormat),
		Reason:    b.Reason,
		BlockType: string(b.Kind),
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedDateList конвертирует список domain моделей в DTO
func FromDomainBlockedDateList(blocks []domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		BlockedDates: make([]BlockedDateResponse, 0, len(blocks)),
	}
	for i := range blocks {
		resp.BlockedDates = append(resp.BlockedDates, *FromDomainBlockedDate(&blocks[i]))
	}
	return resp
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	if h == nil {
		return nil
	}

	return &HolidayResponse{
		ID:        h.ID,
		Name:      h.Name,
		Date:      h.Date.Format(domain.DateFormat),
		Recurring: h.Recurring,
		CreatedAt: h.CreatedAt,
	}
}

// FromDomainHolidayList конвертирует список domain моделей в DTO
func FromDomainHolidayList(holidays []domain.Holiday) *HolidayListResponse {
	resp := &HolidayListResponse{
		Holidays: make([]HolidayResponse, 0, len(holidays)),
	}
	for i := range holidays {
		resp.Holidays = append(resp.Holidays, *FromDomainHoliday(&holidays[i]))
	}
	return resp
}
