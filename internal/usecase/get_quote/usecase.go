package get_quote

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

// UseCase use case расчета стоимости проживания
type UseCase struct {
	cabinRepo       CabinRepository
	reservationRepo ReservationRepository
	blockedDateRepo BlockedDateRepository
	holidayRepo     HolidayRepository
	rules           RulesProvider
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
	holidayRepo HolidayRepository,
	rules RulesProvider,
	policy availability.Policy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		cabinRepo:       cabinRepo,
		reservationRepo: reservationRepo,
		blockedDateRepo: blockedDateRepo,
		holidayRepo:     holidayRepo,
		rules:           rules,
		policy:          policy,
		evaluator:       pricing.NewEvaluator(logger),
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проверяет доступность домика и, если даты свободны, рассчитывает стоимость
// Недоступные даты не являются ошибкой: Response.Quote будет nil, причина - в Response.Availability
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: cabin=%s, start=%s, end=%s, guests=%d",
		req.CabinID, req.Start.Format(domain.DateFormat), req.End.Format(domain.DateFormat), req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetQuote: validation failed: %v", err)
		return nil, err
	}

	stay := domain.Stay{Start: daterange.Day(req.Start), End: daterange.Day(req.End), Guests: req.Guests}

	// 2. Получаем домик
	cabin, err := uc.cabinRepo.GetByID(ctx, req.CabinID)
	if err != nil {
		if errors.Is(err, cabinRepo.ErrCabinNotFound) {
			uc.logger.Warn("GetQuote: cabin id=%s not found", req.CabinID)
			return nil, ErrCabinNotFound
		}
		uc.logger.Error("GetQuote: failed to get cabin id=%s: %v", req.CabinID, err)
		return nil, fmt.Errorf("%w: failed to get cabin: %v", ErrInternal, err)
	}

	// 3. Вместимость домика
	if !cabin.CanHost(stay.Guests) {
		uc.logger.Warn("GetQuote: %d guests exceed capacity %d of cabin id=%s", stay.Guests, cabin.Capacity, cabin.ID)
		return nil, fmt.Errorf("%w: capacity is %d", ErrCapacityExceeded, cabin.Capacity)
	}

	// 4. Минимальный срок до заезда
	if !uc.policy.NoticeSatisfied(stay, uc.timeProvider.Now()) {
		uc.logger.Warn("GetQuote: too late to book cabin id=%s from %s", cabin.ID, stay.Start.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: at least %s notice required", ErrTooLateToBook, uc.policy.MinNoticeFor(stay))
	}

	// 5. Снимок бронирований, блокировок и праздников
	reservations, err := uc.reservationRepo.List(ctx, domain.ReservationsFilter{
		CabinID: &cabin.ID,
		From:    &stay.Start,
		To:      &stay.End,
	})
	if err != nil {
		uc.logger.Error("GetQuote: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	blocked, err := uc.blockedDateRepo.List(ctx, blockedDateRepo.Filter{
		CabinID: &cabin.ID,
		From:    &stay.Start,
		To:      &stay.End,
	})
	if err != nil {
		uc.logger.Error("GetQuote: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	holidays, err := uc.holidayRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetQuote: failed to get holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to get holidays: %v", ErrInternal, err)
	}

	// 6. Проверяем доступность
	result, err := availability.CheckAvailability(cabin, stay, reservations, blocked, holidays, uc.policy)
	if err != nil {
		uc.logger.Error("GetQuote: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}
	uc.metrics.IncAvailability(string(result.Verdict))

	response := &Response{Cabin: cabin, Availability: result}

	if !result.Available() {
		uc.logger.Info("GetQuote: cabin id=%s is not available: %v", cabin.ID, result.Err())
		uc.metrics.IncQuote(string(result.Verdict))
		return response, nil
	}

	// 7. Рассчитываем стоимость
	rules, err := uc.rules.ActiveRules(ctx)
	if err != nil {
		uc.logger.Error("GetQuote: failed to get pricing rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
	}

	set, skipped := pricing.Compile(rules, uc.logger)
	uc.metrics.AddRulesSkipped(len(skipped))

	quote, err := uc.evaluator.Quote(cabin, stay, set)
	if err != nil {
		uc.logger.Error("GetQuote: failed to compute price: %v", err)
		uc.metrics.IncQuote("error")
		return nil, fmt.Errorf("%w: compute price: %v", ErrInternal, err)
	}

	for _, applied := range quote.AppliedRules {
		uc.metrics.IncRuleApplied(string(applied.Kind))
	}
	uc.metrics.IncQuote("ok")

	response.Quote = quote
	response.SkippedRules = len(skipped)

	uc.logger.Info("GetQuote: cabin id=%s, nights=%d, total=%.2f, rules applied=%d, skipped=%d",
		cabin.ID, quote.Nights, quote.Total, len(quote.AppliedRules), len(skipped))

	return response, nil
}
