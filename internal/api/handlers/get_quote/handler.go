package get_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CampBooking/internal/api/handlers"
	getQuote "github.com/m04kA/SMC-CampBooking/internal/usecase/get_quote"
)

const (
	msgInvalidCabinID    = "некорректный ID домика"
	msgInvalidParams     = "некорректные параметры: ожидаются startDate и endDate в формате YYYY-MM-DD и guests"
	msgInvalidRange      = "дата выезда должна быть позже даты заезда"
	msgCabinNotFound     = "домик не найден"
	msgCapacityExceeded  = "количество гостей превышает вместимость домика"
	msgTooLateToBook     = "слишком поздно для бронирования этих дат"
	msgInvalidQuoteInput = "некорректные данные запроса"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cabins/{cabinId}/quote?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&guests=N
// Недоступные даты - не ошибка: 200 с verdict и quote=null
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cabinID, err := handlers.PathUUID(r, "cabinId")
	if err != nil {
		h.logger.Warn("GET /cabins/{id}/quote - Invalid cabin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}

	params, err := handlers.ParseStayParams(r)
	if err != nil {
		h.logger.Warn("GET /cabins/{id}/quote - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	req := &getQuote.Request{
		CabinID: cabinID,
		Start:   params.Start,
		End:     params.End,
		Guests:  params.Guests,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrCabinNotFound):
			h.logger.Warn("GET /cabins/{id}/quote - Cabin not found: cabin_id=%s", cabinID)
			handlers.RespondNotFound(w, msgCabinNotFound)

		case errors.Is(err, getQuote.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getQuote.ErrCapacityExceeded):
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, getQuote.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, getQuote.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidQuoteInput)

		default:
			h.logger.Error("GET /cabins/{id}/quote - Failed to get quote: cabin_id=%s, error=%v", cabinID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cabins/{id}/quote - Quote computed: cabin_id=%s, verdict=%s",
		cabinID, result.Availability.Verdict)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(req, result))
}
