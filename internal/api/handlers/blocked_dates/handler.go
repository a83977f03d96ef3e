package blocked_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CampBooking/internal/service/calendar"
	"github.com/m04kA/SMC-CampBooking/internal/service/calendar/models"
)

const (
	msgInvalidBlockedDateID = "некорректный ID блокировки"
	msgInvalidCabinID       = "некорректный cabinId"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidBlockedDate   = "некорректные данные блокировки"
	msgCabinNotFound        = "домик не найден"
	msgNotFound             = "блокировка не найдена"
)

// Handler обработчики блокировок дат (только для администраторов)
type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/blocked-dates?cabinId=&from=&to=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cabinID, err := handlers.OptionalUUID(r, "cabinId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}
	from, err := handlers.OptionalDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.OptionalDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.ListBlockedDates(r.Context(), &models.ListBlockedDatesRequest{CabinID: cabinID, From: from, To: to})
	if err != nil {
		h.respondServiceError(w, "GET /blocked-dates", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/v1/blocked-dates
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.CreateBlockedDate(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /blocked-dates", err)
		return
	}

	h.logger.Info("POST /blocked-dates - Blocked date created: id=%s", block.ID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}

// Delete DELETE /api/v1/blocked-dates/{blockedDateId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "blockedDateId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockedDateID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /blocked-dates/{id}", err)
		return
	}

	h.logger.Info("DELETE /blocked-dates/{id} - Blocked date deleted: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, calendar.ErrBlockedDateNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, calendar.ErrCabinNotFound):
		handlers.RespondNotFound(w, msgCabinNotFound)

	case errors.Is(err, calendar.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidBlockedDate)

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
