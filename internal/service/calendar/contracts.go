package calendar

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
)

// BlockedDateRepository интерфейс репозитория блокировок
type BlockedDateRepository interface {
	List(ctx context.Context, filter blockedDateRepo.Filter) ([]domain.BlockedDate, error)
	Create(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	List(ctx context.Context) ([]domain.Holiday, error)
	Create(ctx context.Context, h *domain.Holiday) (*domain.Holiday, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CabinRepository интерфейс репозитория домиков
type CabinRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Cabin, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
