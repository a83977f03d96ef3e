package create_reservation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-CampBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CabinID   uuid.UUID `json:"cabinId" validate:"required"`
	StartDate string    `json:"startDate" validate:"required"` // "2025-07-15"
	EndDate   string    `json:"endDate" validate:"required"`   // "2025-07-18"
	Guests    int       `json:"guests" validate:"required,gte=1"`
	StartTime string    `json:"startTime,omitempty"` // "15:00"
	EndTime   string    `json:"endTime,omitempty"`   // "11:00"
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	*models.ReservationResponse
	NightlyPrice float64 `json:"nightlyPrice"`
	Uniform      bool    `json:"uniform"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат и времени)
func (r *CreateReservationRequest) ToUseCaseRequest(userID string) (*createReservation.Request, error) {
	start, err := daterange.Parse(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	end, err := daterange.Parse(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	req := &createReservation.Request{
		UserID:  userID,
		CabinID: r.CabinID,
		Start:   start,
		End:     end,
		Guests:  r.Guests,
	}

	if r.StartTime != "" {
		if req.StartTime, err = types.NewTimeStringFromString(r.StartTime); err != nil {
			return nil, err
		}
	}
	if r.EndTime != "" {
		if req.EndTime, err = types.NewTimeStringFromString(r.EndTime); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ReservationResponse: models.FromDomainReservation(resp.Reservation),
		NightlyPrice:        resp.Quote.NightlyPrice,
		Uniform:             resp.Quote.Uniform,
	}
}
