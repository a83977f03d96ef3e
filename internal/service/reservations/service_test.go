package reservations

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CampBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
	"github.com/m04kA/SMC-CampBooking/pkg/logger"
	"github.com/m04kA/SMC-CampBooking/pkg/ptr"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

func (m *mockReservationRepo) List(ctx context.Context, filter domain.ReservationsFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]domain.Reservation)
	return list, args.Error(1)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func reservation(status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:         uuid.New(),
		CabinID:    uuid.New(),
		UserID:     "owner",
		Start:      daterange.MustParse("2025-07-15"),
		End:        daterange.MustParse("2025-07-18"),
		Guests:     2,
		Status:     status,
		TotalPrice: 360,
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		current domain.ReservationStatus
		next    string
		userID  string
		isAdmin bool
		wantErr error
	}{
		{"admin confirms pending", domain.StatusPending, "confirmed", "admin", true, nil},
		{"owner cancels pending", domain.StatusPending, "cancelled", "owner", false, nil},
		{"owner cancels confirmed", domain.StatusConfirmed, "cancelled", "owner", false, nil},
		{"owner cannot confirm", domain.StatusPending, "confirmed", "owner", false, ErrAccessDenied},
		{"stranger cannot cancel", domain.StatusPending, "cancelled", "someone", false, ErrAccessDenied},
		{"cancelled is final", domain.StatusCancelled, "confirmed", "admin", true, ErrInvalidTransition},
		{"confirmed cannot be confirmed again", domain.StatusConfirmed, "confirmed", "admin", true, ErrInvalidTransition},
		{"back to pending", domain.StatusConfirmed, "pending", "admin", true, ErrInvalidInput},
		{"unknown status", domain.StatusPending, "archived", "admin", true, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reservation(tt.current)
			repo := &mockReservationRepo{}
			repo.On("GetByID", mock.Anything, res.ID).Return(res, nil)
			repo.On("UpdateStatus", mock.Anything, res.ID, mock.Anything).Return(nil)

			svc := NewService(repo, inlineTx{}, logger.Nop())
			resp, err := svc.UpdateStatus(context.Background(), res.ID, &models.UpdateStatusRequest{
				UserID:  tt.userID,
				IsAdmin: tt.isAdmin,
				Status:  tt.next,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, resp.Status)
			repo.AssertCalled(t, "UpdateStatus", mock.Anything, res.ID, domain.ReservationStatus(tt.next))
		})
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	id := uuid.New()
	repo := &mockReservationRepo{}
	repo.On("GetByID", mock.Anything, id).Return(nil, reservationRepo.ErrReservationNotFound)

	svc := NewService(repo, inlineTx{}, logger.Nop())
	_, err := svc.UpdateStatus(context.Background(), id, &models.UpdateStatusRequest{UserID: "1", IsAdmin: true, Status: "confirmed"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetByID_Access(t *testing.T) {
	res := reservation(domain.StatusConfirmed)
	repo := &mockReservationRepo{}
	repo.On("GetByID", mock.Anything, res.ID).Return(res, nil)
	svc := NewService(repo, inlineTx{}, logger.Nop())

	resp, err := svc.GetByID(context.Background(), res.ID, "owner", false)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Nights)
	assert.Equal(t, "2025-07-15", resp.StartDate)

	_, err = svc.GetByID(context.Background(), res.ID, "someone", false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), res.ID, "someone", true)
	assert.NoError(t, err)
}

func TestList(t *testing.T) {
	repo := &mockReservationRepo{}
	status := domain.StatusConfirmed
	repo.On("List", mock.Anything, domain.ReservationsFilter{Status: &status}).
		Return([]domain.Reservation{*reservation(domain.StatusConfirmed)}, nil)
	svc := NewService(repo, inlineTx{}, logger.Nop())

	resp, err := svc.List(context.Background(), &models.ListReservationsRequest{Status: ptr.Ptr("confirmed")})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	_, err = svc.List(context.Background(), &models.ListReservationsRequest{Status: ptr.Ptr("lost")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.On("List", mock.Anything, domain.ReservationsFilter{IncludeInactive: true}).Return(nil, errors.New("timeout"))
	_, err = svc.List(context.Background(), &models.ListReservationsRequest{IncludeInactive: true})
	assert.ErrorIs(t, err, ErrInternal)
}
