package get_quote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CampBooking/internal/core/availability"
	"github.com/m04kA/SMC-CampBooking/internal/domain"
	cabinRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
)

type fixture struct {
	cabins       *mockCabinRepo
	reservations *mockReservationRepo
	blocked      *mockBlockedDateRepo
	holidays     *mockHolidayRepo
	rules        *mockRules
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		cabins:       &mockCabinRepo{},
		reservations: &mockReservationRepo{},
		blocked:      &mockBlockedDateRepo{},
		holidays:     &mockHolidayRepo{},
		rules:        &mockRules{},
		metrics:      newFakeMetrics(),
	}
	f.uc = NewUseCase(f.cabins, f.reservations, f.blocked, f.holidays, f.rules,
		availability.DefaultPolicy(), f.metrics, logger.Nop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

var (
	cabinID = uuid.MustParse("c0ffee00-0000-0000-0000-000000000001")
	pine    = &domain.Cabin{ID: cabinID, Name: "Pine", BasePrice: 100, Capacity: 4, Category: domain.CategoryStandard}
	june1   = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
)

func summerRule() domain.PricingRule {
	return domain.PricingRule{
		ID:             uuid.New(),
		Name:           "Summer",
		Kind:           domain.RuleSeason,
		Condition:      domain.SeasonCondition{Start: daterange.MustParse("2025-07-01"), End: daterange.MustParse("2025-08-31")},
		Adjustment:     20,
		AdjustmentType: domain.AdjustPercentage,
		Priority:       10,
		Active:         true,
	}
}

func quoteRequest() *Request {
	return &Request{
		CabinID: cabinID,
		Start:   daterange.MustParse("2025-07-15"),
		End:     daterange.MustParse("2025-07-18"),
		Guests:  2,
	}
}

func TestExecute_AvailableWithQuote(t *testing.T) {
	f := newFixture(june1)
	ctx := context.Background()

	broken := summerRule()
	broken.Name = "Broken"
	broken.Condition = domain.BrokenCondition{RuleKind: domain.RuleSeason, Err: domain.ErrInvalidCondition}

	f.cabins.On("GetByID", ctx, cabinID).Return(pine, nil)
	f.reservations.On("List", ctx, mock.AnythingOfType("domain.ReservationsFilter")).Return([]domain.Reservation{}, nil)
	f.blocked.On("List", ctx, mock.Anything).Return([]domain.BlockedDate{}, nil)
	f.holidays.On("List", ctx).Return([]domain.Holiday{}, nil)
	f.rules.On("ActiveRules", ctx).Return([]domain.PricingRule{summerRule(), broken}, nil)

	resp, err := f.uc.Execute(ctx, quoteRequest())
	require.NoError(t, err)

	assert.True(t, resp.Availability.Available())
	require.NotNil(t, resp.Quote)
	assert.InDelta(t, 120.0, resp.Quote.NightlyPrice, 0.001)
	assert.InDelta(t, 360.0, resp.Quote.Total, 0.001)
	assert.Equal(t, 1, resp.SkippedRules)

	assert.Equal(t, 1, f.metrics.quotes["ok"])
	assert.Equal(t, 1, f.metrics.verdicts["available"])
	assert.Equal(t, 1, f.metrics.applied["season"])
	assert.Equal(t, 1, f.metrics.rulesSkipped)

	f.reservations.AssertCalled(t, "List", ctx, mock.MatchedBy(func(filter domain.ReservationsFilter) bool {
		return *filter.CabinID == cabinID &&
			filter.From.Equal(daterange.MustParse("2025-07-15")) &&
			filter.To.Equal(daterange.MustParse("2025-07-18"))
	}))
}

func TestExecute_ConflictReturnsVerdictWithoutQuote(t *testing.T) {
	f := newFixture(june1)
	ctx := context.Background()

	existing := domain.Reservation{
		ID:      uuid.New(),
		CabinID: cabinID,
		Start:   daterange.MustParse("2025-07-16"),
		End:     daterange.MustParse("2025-07-17"),
		Status:  domain.StatusConfirmed,
	}

	f.cabins.On("GetByID", ctx, cabinID).Return(pine, nil)
	f.reservations.On("List", ctx, mock.Anything).Return([]domain.Reservation{existing}, nil)
	f.blocked.On("List", ctx, mock.Anything).Return([]domain.BlockedDate{}, nil)
	f.holidays.On("List", ctx).Return([]domain.Holiday{}, nil)

	resp, err := f.uc.Execute(ctx, quoteRequest())
	require.NoError(t, err)

	assert.Equal(t, availability.VerdictConflict, resp.Availability.Verdict)
	assert.Equal(t, existing.ID, resp.Availability.Conflict.ID)
	assert.Nil(t, resp.Quote)
	f.rules.AssertNotCalled(t, "ActiveRules", mock.Anything)
	assert.Equal(t, 1, f.metrics.quotes["conflict"])
}

func TestExecute_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid range", func(t *testing.T) {
		f := newFixture(june1)
		req := quoteRequest()
		req.End = req.Start
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("same calendar day", func(t *testing.T) {
		f := newFixture(june1)
		req := quoteRequest()
		req.End = req.Start.Add(22 * time.Hour)
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("no guests", func(t *testing.T) {
		f := newFixture(june1)
		req := quoteRequest()
		req.Guests = 0
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("cabin not found", func(t *testing.T) {
		f := newFixture(june1)
		f.cabins.On("GetByID", ctx, cabinID).Return(nil, cabinRepo.ErrCabinNotFound)
		_, err := f.uc.Execute(ctx, quoteRequest())
		assert.ErrorIs(t, err, ErrCabinNotFound)
	})

	t.Run("cabin repository failure", func(t *testing.T) {
		f := newFixture(june1)
		f.cabins.On("GetByID", ctx, cabinID).Return(nil, errors.New("connection reset"))
		_, err := f.uc.Execute(ctx, quoteRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		f := newFixture(june1)
		f.cabins.On("GetByID", ctx, cabinID).Return(pine, nil)
		req := quoteRequest()
		req.Guests = 5
		_, err := f.uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("peak check-in within a week", func(t *testing.T) {
		f := newFixture(time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC))
		f.cabins.On("GetByID", ctx, cabinID).Return(pine, nil)
		_, err := f.uc.Execute(ctx, quoteRequest())
		assert.ErrorIs(t, err, ErrTooLateToBook)
		f.reservations.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
