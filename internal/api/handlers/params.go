package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// PathUUID читает UUID из переменной маршрута
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", name, err)
	}
	return id, nil
}

// StayParams параметры проживания из query: startDate, endDate, guests
type StayParams struct {
	Start  time.Time
	End    time.Time
	Guests int
}

// ParseStayParams читает startDate, endDate (YYYY-MM-DD) и guests (по умолчанию 1)
func ParseStayParams(r *http.Request) (StayParams, error) {
	q := r.URL.Query()

	start, err := daterange.Parse(q.Get("startDate"))
	if err != nil {
		return StayParams{}, fmt.Errorf("startDate: %w", err)
	}
	end, err := daterange.Parse(q.Get("endDate"))
	if err != nil {
		return StayParams{}, fmt.Errorf("endDate: %w", err)
	}

	guests := 1
	if raw := strings.TrimSpace(q.Get("guests")); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil {
			return StayParams{}, fmt.Errorf("guests: %w", err)
		}
	}

	return StayParams{Start: start, End: end, Guests: guests}, nil
}

// OptionalDate читает необязательный параметр даты
func OptionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := daterange.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &d, nil
}

// OptionalUUID читает необязательный UUID параметр
func OptionalUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &id, nil
}
