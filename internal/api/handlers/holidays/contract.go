package holidays

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/service/calendar/models"
)

type CalendarService interface {
	ListHolidays(ctx context.Context) (*models.HolidayListResponse, error)
	CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
