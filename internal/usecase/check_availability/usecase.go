package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
	cabinRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// UseCase use case проверки доступности домика
type UseCase struct {
	cabinRepo       CabinRepository
	reservationRepo ReservationRepository
	blockedDateRepo BlockedDateRepository
	holidayRepo     HolidayRepository
	policy          availability.Policy
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cabinRepo CabinRepository,
	reservationRepo ReservationRepository,
	blockedDateRepo BlockedDateRepository,
	holidayRepo HolidayRepository,
	policy availability.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		cabinRepo:       cabinRepo,
		reservationRepo: reservationRepo,
		blockedDateRepo: blockedDateRepo,
		holidayRepo:     holidayRepo,
		policy:          policy,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проверяет, можно ли забронировать домик на даты из запроса
// Отказы (слишком короткое проживание, блокировка, пересечение) возвращаются в Result, а не ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: cabin=%s, start=%s, end=%s, guests=%d",
		req.CabinID, req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat), req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	stay := domain.Stay{Start: daterange.Day(req.Start), End: daterange.Day(req.End), Guests: req.Guests}

	// 2. Получаем домик
	cabin, err := uc.cabinRepo.GetByID(ctx, req.CabinID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			uc.logger.Warn("CheckAvailability: cabin id=%s not found", req.CabinID)
			return nil, ErrCabinNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get cabin id=%s: %v", req.CabinID, err)
		return nil, fmt.Errorf("%w: failed to get cabin: %v", ErrInternal, err)
	}

	// 3. Вместимость и срок до заезда
	if !cabin.CanHost(stay.Guests) {
		uc.logger.Warn("CheckAvailability: %d guests exceed capacity %d of cabin id=%s", stay.Guests, cabin.Capacity, cabin.ID)
		return nil, fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, cabin.Capacity)
	}
	if !uc.policy.NoticeSatisfied(stay, uc.timeProvider.Now()) {
		uc.logger.Warn("CheckAvailability: too late to book cabin id=%s from %s", cabin.ID, stay.Start.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: at least %s notice required", ErrTooLateToBook, uc.policy.MinNoticeFor(stay))
	}

	// 4. Снимок бронирований, блокировок и праздников
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationsFilter{
		CabinID: &cabin.ID,
		From:    &stay.Start,
		To:      &stay.End,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	blocked, err := uc.blockedDateRepo.List(ctx, blockedDateRepo.Filter{
		CabinID: &cabin.ID,
		From:    &stay.Start,
		To:      &stay.End,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	holidays, err := uc.holidayRepo.List(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	// 5. Проверяем доступность
	result, err := availability.CheckAvailability(cabin, stay, reservations, blocked, holidays, uc.policy)
	if err != nil {
		uc.logger.Error("CheckAvailability: check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
	uc.metrics.IncAvailability(string(result.Verdict))

	if result.Available() {
		uc.logger.Info("CheckAvailability: cabin id=%s available for %d nights, holidays=%d",
			cabin.ID, result.Nights, len(result.Holidays))
	} else {
		uc.logger.Info("CheckAvailability: cabin id=%s not available: %v", cabin.ID, result.Err())
	}

	return &Response{Cabin: cabin, Result: result}, nil
}
