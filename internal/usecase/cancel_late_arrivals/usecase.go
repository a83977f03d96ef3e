package cancel_late_arrivals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/types"
)

// errSkipped бронирование изменилось между выборкой и отменой
var errSkipped = errors.New("cancel_late_arrivals: reservation no longer eligible")

// UseCase отменяет подтвержденные бронирования, гости которых не приехали
// в течение grace периода после заявленного времени заезда
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	grace           time.Duration
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	grace time.Duration,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		grace:           grace,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет один прогон отмены опоздавших заездов
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	threshold := now.Add(-uc.grace)
	day := daterange.Day(now)

	// 1. Заезды сегодняшнего дня: если граница ушла во вчера, опоздавших еще нет
	if daterange.Day(threshold).Before(day) {
		return &Response{}, nil
	}
	cutoff := types.NewTimeString(threshold)

	// 2. Выбираем подтвержденные бронирования без отметки о заезде
	late, err := uc.reservationRepo.ListLateArrivals(ctx, day, cutoff)
	if err != nil {
		uc.logger.Error("CancelLateArrivals: failed to list late arrivals for %s: %v", day.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list late arrivals: %v", ErrInternal, err)
	}

	resp := &Response{Checked: len(late)}

	// 3. Отменяем каждое бронирование в своей транзакции
	for i := range late {
		id := late[i].ID
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			return uc.cancel(txCtx, id, day, cutoff)
		})

		switch {
		case err == nil:
			resp.Cancelled = append(resp.Cancelled, id)
			// Отправка писем вне этого сервиса
			uc.logger.Info("CancelLateArrivals: cancelled reservation id=%s, user=%s, start_time=%s, notification skipped",
				id, late[i].UserID, late[i].StartTime)
		case errors.Is(err, errSkipped):
			uc.logger.Info("CancelLateArrivals: reservation id=%s skipped: %v", id, err)
		default:
			resp.Failed++
			uc.logger.Error("CancelLateArrivals: failed to cancel reservation id=%s: %v", id, err)
		}
	}

	uc.metrics.AddLateArrivalsCancelled(len(resp.Cancelled))

	if len(late) > 0 {
		uc.logger.Info("CancelLateArrivals: day=%s, cutoff=%s, checked=%d, cancelled=%d, failed=%d",
			day.Format(domain.DateFormat), cutoff, resp.Checked, len(resp.Cancelled), resp.Failed)
	}

	return resp, nil
}

// cancel перечитывает бронирование под блокировкой и отменяет, если оно все еще подходит
func (uc *UseCase) cancel(ctx context.Context, id uuid.UUID, day time.Time, cutoff types.TimeString) error {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return fmt.Errorf("%w: not found", errSkipped)
		}
		return err
	}

	if res.Status != domain.StatusConfirmed || res.IsCheckedIn() {
		return fmt.Errorf("%w: status=%s, checked_in=%t", errSkipped, res.Status, res.IsCheckedIn())
	}
	if !daterange.Day(res.Start).Equal(day) || res.StartTime.IsZero() || res.StartTime.IsAfter(cutoff) {
		return fmt.Errorf("%w: arrival moved", errSkipped)
	}
	if !res.CanTransitionTo(domain.StatusCancelled) {
		return fmt.Errorf("%w: cannot cancel from %s", errSkipped, res.Status)
	}

	return uc.reservationRepo.UpdateStatus(ctx, id, domain.StatusCancelled)
}
