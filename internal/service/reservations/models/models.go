package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	UserID  string `json:"-"`
	IsAdmin bool   `json:"-"`
	Status  string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// ListReservationsRequest фильтр списка бронирований (для администраторов)
type ListReservationsRequest struct {
	CabinID         *uuid.UUID
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		CabinID:         r.CabinID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          uuid.UUID  `json:"id"`
	CabinID     uuid.UUID  `json:"cabinId"`
	UserID      string     `json:"userId"`
	StartDate   string     `json:"startDate"`           // "2025-07-15"
	EndDate     string     `json:"endDate"`             // "2025-07-18"
	StartTime   string     `json:"startTime,omitempty"` // "15:00"
	EndTime     string     `json:"endTime,omitempty"`
	Nights      int        `json:"nights"`
	Guests      int        `json:"guests"`
	Status      string     `json:"status"`
	TotalPrice  float64    `json:"totalPrice"`
	CheckInTime *time.Time `json:"checkInTime,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:          r.ID,
		CabinID:     r.CabinID,
		UserID:      r.UserID,
		StartDate:   r.Start.Format(domain.DateFormat),
		EndDate:     r.End.Format(domain.DateFormat),
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		Nights:      r.Range().Nights(),
		Guests:      r.Guests,
		Status:      string(r.Status),
		TotalPrice:  r.TotalPrice,
		CheckInTime: r.CheckInTime,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for i := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(&list[i]))
	}
	return resp
}

// ToDomainStatus конвертирует строку в статус бронирования
func ToDomainStatus(s string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
