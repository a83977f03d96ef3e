package check_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
)

// CabinRepository интерфейс репозитория домиков
type CabinRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cabin, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationsFilter) ([]domain.Reservation, error)
}

// BlockedDateRepository интерфейс репозитория блокировок
type BlockedDateRepository interface {
	List(ctx context.Context, filter blockedDateRepo.Filter) ([]domain.BlockedDate, error)
}

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	List(ctx context.Context) ([]domain.Holiday, error)
}

// Metrics интерфейс метрик проверки доступности
type Metrics interface {
	IncAvailability(verdict string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
