package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-CampBooking/internal/usecase/check_availability"
)

const (
	msgInvalidCabinID   = "некорректный ID домика"
	msgInvalidParams    = "некорректные параметры: ожидаются startDate и endDate в формате YYYY-MM-DD и guests"
	msgInvalidRange     = "дата выезда должна быть позже даты заезда"
	msgCabinNotFound    = "домик не найден"
	msgCapacityExceeded = "количество гостей превышает вместимость домика"
	msgTooLateToBook    = "слишком поздно для бронирования этих дат"
	msgInvalidInput     = "некорректные данные запроса"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Cabin     handlers.CabinDTO `json:"cabin"`
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	handlers.AvailabilityDTO
}

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cabins/{cabinId}/availability?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&guests=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cabinID, err := handlers.PathUUID(r, "cabinId")
	if err != nil {
		h.logger.Warn("GET /cabins/{id}/availability - Invalid cabin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}

	params, err := handlers.ParseStayParams(r)
	if err != nil {
		h.logger.Warn("GET /cabins/{id}/availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		CabinID: cabinID,
		Start:   params.Start,
		End:     params.End,
		Guests:  params.Guests,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrCabinNotFound):
			h.logger.Warn("GET /cabins/{id}/availability - Cabin not found: cabin_id=%s", cabinID)
			handlers.RespondNotFound(w, msgCabinNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, checkAvailability.ErrCapacityExceeded):
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, checkAvailability.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /cabins/{id}/availability - Failed to check availability: cabin_id=%s, error=%v", cabinID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cabins/{id}/availability - cabin_id=%s, verdict=%s", cabinID, result.Result.Verdict)
	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		Cabin:           handlers.FromCabin(result.Cabin),
		StartDate:       params.Start.Format(domain.DateFormat),
		EndDate:         params.End.Format(domain.DateFormat),
		AvailabilityDTO: handlers.FromAvailability(result.Result),
	})
}
