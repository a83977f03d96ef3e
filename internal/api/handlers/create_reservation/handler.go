package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CampBooking/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-CampBooking/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CampBooking/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidRange       = "дата выезда должна быть позже даты заезда"
	msgCabinNotFound      = "домик не найден"
	msgCapacityExceeded   = "количество гостей превышает вместимость домика"
	msgTooLateToBook      = "слишком поздно для бронирования этих дат"
	msgStayTooShort       = "слишком короткое проживание для выбранных дат"
	msgStayTooLong        = "слишком длинное проживание"
	msgBlocked            = "выбранные даты закрыты для бронирования"
	msgConflict           = "выбранные даты уже забронированы"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeString) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrConflict):
			h.logger.Warn("POST /reservations - Dates already reserved: user_id=%s, cabin_id=%s", userID, req.CabinID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createReservation.ErrBlocked):
			h.logger.Warn("POST /reservations - Dates blocked: user_id=%s, cabin_id=%s", userID, req.CabinID)
			handlers.RespondConflict(w, msgBlocked)

		case errors.Is(err, createReservation.ErrCabinNotFound):
			h.logger.Warn("POST /reservations - Cabin not found: cabin_id=%s", req.CabinID)
			handlers.RespondNotFound(w, msgCabinNotFound)

		case errors.Is(err, createReservation.ErrStayTooShort):
			handlers.RespondBadRequest(w, msgStayTooShort)

		case errors.Is(err, createReservation.ErrStayTooLong):
			handlers.RespondBadRequest(w, msgStayTooLong)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%s, cabin_id=%s, error=%v",
				userID, req.CabinID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%s, user_id=%s, cabin_id=%s",
		result.Reservation.ID, userID, req.CabinID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
