package get_quote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
)

type mockCabinRepo struct{ mock.Mock }

func (m *mockCabinRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cabin, error) {
	args := m.Called(ctx, id)
	cabin, _ := args.Get(0).(*domain.Cabin)
	return cabin, args.Error(1)
}

type mockReservationRepo struct{ mock.Mock }

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

type mockHolidayRepo struct{ mock.Mock }

func (m *mockHolidayRepo) List(ctx context.Context) ([]domain.Holiday, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Holiday)
	return list, args.Error(1)
}

type mockRules struct{ mock.Mock }

func (m *mockRules) ActiveRules(ctx context.Context) ([]domain.PricingRule, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.PricingRule)
	return list, args.Error(1)
}

type fakeMetrics struct {
	quotes       map[string]int
	verdicts     map[string]int
	applied      map[string]int
	rulesSkipped int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{quotes: map[string]int{}, verdicts: map[string]int{}, applied: map[string]int{}}
}

func (f *fakeMetrics) IncQuote(result string)         { f.quotes[result]++ }
func (f *fakeMetrics) IncAvailability(verdict string) { f.verdicts[verdict]++ }
func (f *fakeMetrics) IncRuleApplied(kind string)     { f.applied[kind]++ }
func (f *fakeMetrics) AddRulesSkipped(n int)          { f.rulesSkipped += n }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }
