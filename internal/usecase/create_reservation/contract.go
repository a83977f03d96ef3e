package create_reservation

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
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]domain.Reservation, error)
}

// BlockedDateRepository интерфейс репозитория блокировок
type BlockedDateRepository interface {
	List(ctx context.Context, filter blockedDateRepo.Filter) ([]domain.BlockedDate, error)
}

// RulesProvider источник активных правил ценообразования
type RulesProvider interface {
	ActiveRules(ctx context.Context) ([]domain.PricingRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс метрик
type Metrics interface {
	IncAvailability(verdict string)
	AddRulesSkipped(n int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
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
