package holidays

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CampBooking/internal/service/calendar"
	"github.com/m04kA/SMC-CampBooking/internal/service/calendar/models"
)

const (
	msgInvalidHolidayID   = "некорректный ID праздника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidHoliday     = "некорректные данные праздника"
	msgNotFound           = "праздник не найден"
)

// Handler обработчики праздников (только для администраторов)
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

// List GET /api/v1/holidays
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListHolidays(r.Context())
	if err != nil {
		h.logger.Error("GET /holidays - Failed to list holidays: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Create POST /api/v1/holidays
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	holiday, err := h.service.CreateHoliday(r.Context(), &req)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidInput) {
			h.logger.Warn("POST /holidays - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHoliday)
			return
		}
		h.logger.Error("POST /holidays - Failed to create holiday: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /holidays - Holiday created: id=%s", holiday.ID)
	handlers.RespondJSON(w, http.StatusCreated, holiday)
}

// Delete DELETE /api/v1/holidays/{holidayId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "holidayId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.DeleteHoliday(r.Context(), id); err != nil {
		if errors.Is(err, calendar.ErrHolidayNotFound) {
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /holidays/{id} - Failed to delete holiday: id=%s, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /holidays/{id} - Holiday deleted: id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
