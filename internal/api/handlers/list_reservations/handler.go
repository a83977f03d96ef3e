package list_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CampBooking/internal/service/reservations"
	"github.com/m04kA/SMC-CampBooking/internal/service/reservations/models"
)

const (
	msgInvalidCabinID         = "некорректный cabinId"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidIncludeInactive = "некорректное значение includeInactive"
	msgInvalidFilter          = "некорректный фильтр"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?cabinId=&from=&to=&status=&includeInactive=
// Доступно только администраторам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListReservationsRequest{}

	cabinID, err := handlers.OptionalUUID(r, "cabinId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}
	req.CabinID = cabinID

	if req.From, err = handlers.OptionalDate(r, "from"); err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if req.To, err = handlers.OptionalDate(r, "to"); err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if raw := query.Get("includeInactive"); raw != "" {
		if req.IncludeInactive, err = strconv.ParseBool(raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidIncludeInactive)
			return
		}
	}

	list, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Listed %d reservations", len(list.Reservations))
	handlers.RespondJSON(w, http.StatusOK, list)
}
