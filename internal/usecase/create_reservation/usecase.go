package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/internal/core/pricing"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
	cabinRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// UseCase use case создания бронирования домика
type UseCase struct {
	cabinRepo       CabinRepository
	reservationRepo ReservationRepository
	blockedDateRepo BlockedDateRepository
	rules           RulesProvider
	txManager       TransactionManager
	policy          availability.Policy
	evaluator       *pricing.Evaluator
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	cabinRepo CabinRepository,
	reservationRepo ReservationRepository,
	blockedDateRepo BlockedDateRepository,
	rules RulesProvider,
	txManager TransactionManager,
	policy availability.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		cabinRepo:       cabinRepo,
		reservationRepo: reservationRepo,
		blockedDateRepo: blockedDateRepo,
		rules:           rules,
		txManager:       txManager,
		policy:          policy,
		evaluator:       pricing.NewEvaluator(logger),
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции:
// бронирования и блокировки перечитываются с FOR UPDATE, поэтому две параллельные
// заявки на пересекающиеся даты не могут обе пройти проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%s, cabin=%s, start=%s, end=%s, guests=%d",
		req.UserID, req.CabinID, req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat), req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	stay := domain.Stay{Start: daterange.Day(req.Start), End: daterange.Day(req.End), Guests: req.Guests}

	// 2. Получаем домик
	cabin, err := uc.cabinRepo.GetByID(ctx, req.CabinID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			uc.logger.Warn("CreateReservation: cabin id=%s not found", req.CabinID)
			return nil, ErrCabinNotFound
		}
		uc.logger.Error("CreateReservation: failed to get cabin id=%s: %v", req.CabinID, err)
		return nil, fmt.Errorf("%w: failed to get cabin: %v", ErrInternal, err)
	}

	// 3. Вместимость и срок до заезда
	if !cabin.CanHost(stay.Guests) {
		uc.logger.Warn("CreateReservation: %d guests exceed capacity %d of cabin id=%s", stay.Guests, cabin.Capacity, cabin.ID)
		return nil, fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, cabin.Capacity)
	}
	if !uc.policy.NoticeSatisfied(stay, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateReservation: too late to book cabin id=%s from %s", cabin.ID, stay.Start.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: at least %s notice required", ErrTooLateToBook, uc.policy.MinNoticeFor(stay))
	}

	// 4. Правила цены читаются до транзакции: снимок правил не участвует в сравнении
	rules, err := uc.rules.ActiveRules(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get pricing rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
	}
	set, skipped := pricing.Compile(rules, uc.logger)
	uc.metrics.AddRulesSkipped(len(skipped))

	var (
		created *domain.Reservation
		quote   *domain.Quote
		verdict availability.Verdict // итог последней попытки транзакции
	)

	// 5. Сравнение и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		verdict = ""

		// 5.1. Перечитываем активные бронирования домика с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.List(txCtx, domain.ReservationsFilter{
			CabinID: &cabin.ID,
			From:    &stay.Start,
			To:      &stay.End,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 5.2. Перечитываем блокировки
		blocked, err := uc.blockedDateRepo.List(txCtx, blockedDateRepo.Filter{
			CabinID: &cabin.ID,
			From:    &stay.Start,
			To:      &stay.End,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get blocked dates: %v", err)
			return fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
		}

		// 5.3. Проверяем доступность на свежем снимке
		result, err := availability.CheckAvailability(cabin, stay, reservations, blocked, nil, uc.policy)
		if err != nil {
			uc.logger.Error("CreateReservation: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		verdict = result.Verdict

		if !result.Available() {
			uc.logger.Warn("CreateReservation: cabin id=%s not available: %v", cabin.ID, result.Err())
			return verdictError(result)
		}

		// 5.4. Рассчитываем стоимость
		quote, err = uc.evaluator.Quote(cabin, stay, set)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to compute price: %v", err)
			return fmt.Errorf("%w: compute price: %v", ErrInternal, err)
		}

		// 5.5. Сохраняем бронирование в статусе pending
		reservation := &domain.Reservation{
			CabinID:    cabin.ID,
			UserID:     req.UserID,
			Start:      stay.Start,
			End:        stay.End,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Guests:     stay.Guests,
			Status:     domain.StatusPending,
			TotalPrice: quote.Total,
		}

		created, err = uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		return nil
	})

	// 6. Вердикт учитывается один раз, даже если транзакция повторялась
	if verdict != "" {
		uc.metrics.IncAvailability(string(verdict))
	}

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%s, total=%.2f", created.ID, created.TotalPrice)

	return &Response{Reservation: created, Quote: quote}, nil
}
