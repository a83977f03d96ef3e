package create_reservation

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
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
	cabinRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/cabin"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
)

type mockCabinRepo struct{ mock.Mock }

func (m *mockCabinRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cabin, error) {
	args := m.Called(ctx, id)
	cabin, _ := args.Get(0).(*domain.Cabin)
	return cabin, args.Error(1)
}

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	args := m.Called(ctx, res)
	created, _ := args.Get(0).(*domain.Reservation)
	return created, args.Error(1)
}

func (m *mockReservationRepo) List(ctx context.Context, filter domain.ReservationsFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

type mockBlockedDateRepo struct{ mock.Mock }

func (m *mockBlockedDateRepo) List(ctx context.Context, filter blockedDateRepo.Filter) ([]domain.BlockedDate, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.BlockedDate)
	return list, args.Error(1)
}

type mockRules struct{ mock.Mock }

func (m *mockRules) ActiveRules(ctx context.Context) ([]domain.PricingRule, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.PricingRule)
	return list, args.Error(1)
}

// inlineTx выполняет fn без настоящей транзакции
type inlineTx struct{ calls int }

func (tx *inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

// retryingTx повторяет fn, как при ошибке сериализации 40001
type retryingTx struct{ attempts int }

func (tx *retryingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < tx.attempts; i++ {
		err = fn(ctx)
	}
	return err
}

type fakeMetrics struct {
	verdicts     map[string]int
	rulesSkipped int
}

func (f *fakeMetrics) IncAvailability(verdict string) { f.verdicts[verdict]++ }
func (f *fakeMetrics) AddRulesSkipped(n int)          { f.rulesSkipped += n }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var testCabin = &domain.Cabin{
	ID:        uuid.MustParse("c0000000-0000-0000-0000-000000000001"),
	Name:      "Lakeside",
	BasePrice: 100,
	Capacity:  4,
	Category:  domain.CategoryStandard,
}

type fixture struct {
	uc           *UseCase
	cabins       *mockCabinRepo
	reservations *mockReservationRepo
	blocks       *mockBlockedDateRepo
	rules        *mockRules
	tx           *inlineTx
	metrics      *fakeMetrics
}

func newFixture() *fixture {
	f := &fixture{
		cabins:       &mockCabinRepo{},
		reservations: &mockReservationRepo{},
		blocks:       &mockBlockedDateRepo{},
		rules:        &mockRules{},
		tx:           &inlineTx{},
		metrics:      &fakeMetrics{verdicts: map[string]int{}},
	}
	f.cabins.On("GetByID", mock.Anything, testCabin.ID).Return(testCabin, nil)
	f.cabins.On("GetByID", mock.Anything, mock.Anything).Return(nil, cabinRepo.ErrCabinNotFound)

	f.uc = NewUseCase(f.cabins, f.reservations, f.blocks, f.rules, f.tx, availability.DefaultPolicy(), f.metrics, logger.Nop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)}
	return f
}

func validRequest() *Request {
	return &Request{
		UserID:    "42",
		CabinID:   testCabin.ID,
		Start:     daterange.MustParse("2025-07-15"),
		End:       daterange.MustParse("2025-07-18"),
		Guests:    2,
		StartTime: "15:00",
	}
}

func summerRule() domain.PricingRule {
	return domain.PricingRule{
		ID:   uuid.New(),
		Name: "Summer",
		Kind: domain.RuleSeason,
		Condition: domain.SeasonCondition{
			Start: daterange.MustParse("2025-07-01"),
			End:   daterange.MustParse("2025-08-31"),
		},
		Adjustment:     20,
		AdjustmentType: domain.AdjustPercentage,
		Priority:       10,
		Active:         true,
	}
}

func TestExecute_CreatesPendingReservationWithQuotedTotal(t *testing.T) {
	f := newFixture()
	f.rules.On("ActiveRules", mock.Anything).Return([]domain.PricingRule{summerRule()}, nil)
	f.reservations.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation(nil), nil)
	f.blocks.On("List", mock.Anything, mock.Anything).Return([]domain.BlockedDate(nil), nil)
	created := &domain.Reservation{
		ID:         uuid.New(),
		CabinID:    testCabin.ID,
		UserID:     "42",
		Status:     domain.StatusPending,
		TotalPrice: 360,
	}
	f.reservations.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.StatusPending && r.TotalPrice == 360 && r.UserID == "42" && r.Guests == 2
	})).Return(created, nil).Once()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, created.ID, resp.Reservation.ID)
	assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
	assert.InDelta(t, 360.0, resp.Quote.Total, 1e-9)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.metrics.verdicts["available"])
	f.reservations.AssertExpectations(t)
}

func TestExecute_ConflictInsideTransaction(t *testing.T) {
	f := newFixture()
	existing := domain.Reservation{
		ID:      uuid.New(),
		CabinID: testCabin.ID,
		Start:   daterange.MustParse("2025-07-17"),
		End:     daterange.MustParse("2025-07-20"),
		Status:  domain.StatusConfirmed,
	}
	f.rules.On("ActiveRules", mock.Anything).Return([]domain.PricingRule(nil), nil)
	f.reservations.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{existing}, nil)
	f.blocks.On("List", mock.Anything, mock.Anything).Return([]domain.BlockedDate(nil), nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConflict)
	f.reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Equal(t, 1, f.metrics.verdicts["conflict"])
}

func TestExecute_BlockedDates(t *testing.T) {
	f := newFixture()
	block := domain.BlockedDate{
		ID:     uuid.New(),
		Start:  daterange.MustParse("2025-07-16"),
		End:    daterange.MustParse("2025-07-16"),
		Reason: "Private event",
		Kind:   domain.BlockPrivate,
	}
	f.rules.On("ActiveRules", mock.Anything).Return([]domain.PricingRule(nil), nil)
	f.reservations.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation(nil), nil)
	f.blocks.On("List", mock.Anything, mock.Anything).Return([]domain.BlockedDate{block}, nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestExecute_StayTooShortAndTooLong(t *testing.T) {
	f := newFixture()
	f.rules.On("ActiveRules", mock.Anything).Return([]domain.PricingRule(nil), nil)
	f.reservations.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation(nil), nil)
	f.blocks.On("List", mock.Anything, mock.Anything).Return([]domain.BlockedDate(nil), nil)

	req := validRequest()
	req.End = daterange.MustParse("2025-07-17")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStayTooShort)

	req = validRequest()
	req.End = daterange.MustParse("2025-08-15")
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStayTooLong)
}

func TestExecute_RejectedBeforeTransaction(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{"missing user", func(r *Request) { r.UserID = " " }, ErrInvalidInput},
		{"inverted range", func(r *Request) { r.End = r.Start }, ErrInvalidRange},
		{"same day, later hour", func(r *Request) { r.End = r.Start.Add(20 * time.Hour) }, ErrInvalidRange},
		{"zero guests", func(r *Request) { r.Guests = 0 }, ErrInvalidInput},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }, ErrInvalidInput},
		{"unknown cabin", func(r *Request) { r.CabinID = uuid.New() }, ErrCabinNotFound},
		{"too many guests", func(r *Request) { r.Guests = 5 }, ErrCapacityExceeded},
		{"peak check-in within a week", func(r *Request) {
			r.Start = daterange.MustParse("2025-06-05")
			r.End = daterange.MustParse("2025-06-09")
		}, ErrTooLateToBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.uc.timeProvider = fixedTime{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecute_RepositoryFailures(t *testing.T) {
	t.Run("rules", func(t *testing.T) {
		f := newFixture()
		f.rules.On("ActiveRules", mock.Anything).Return(nil, errors.New("redis down"))

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
		assert.Zero(t, f.tx.calls)
	})

	t.Run("insert", func(t *testing.T) {
		f := newFixture()
		f.rules.On("ActiveRules", mock.Anything).Return([]domain.PricingRule(nil), nil)
		f.reservations.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation(nil), nil)
		f.blocks.On("List", mock.Anything, mock.Anything).Return([]domain.BlockedDate(nil), nil)
		f.reservations.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed"))

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestExecute_RetriedTransactionCountsVerdictOnce(t *testing.T) {
	f := newFixture()
	f.uc.txManager = &retryingTx{attempts: 3}
	f.rules.On("ActiveRules", mock.Anything).Return([]domain.PricingRule(nil), nil)
	f.reservations.On("List", mock.Anything, mock.Anything).Return([]domain.Reservation{{
		ID:      uuid.New(),
		CabinID: testCabin.ID,
		Start:   daterange.MustParse("2025-07-16"),
		End:     daterange.MustParse("2025-07-17"),
		Status:  domain.StatusConfirmed,
	}}, nil)
	f.blocks.On("List", mock.Anything, mock.Anything).Return([]domain.BlockedDate(nil), nil)

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, map[string]int{"conflict": 1}, f.metrics.verdicts)
}
