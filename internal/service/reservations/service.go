package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	reservationRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CampBooking/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, администратор - любые
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%s", id, userID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && res.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to reservation id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// List возвращает бронирования по фильтру
// Доступно только администраторам
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := "List: fetching reservations"
	if req.CabinID != nil {
		logMsg += fmt.Sprintf(", cabin=%s", *req.CabinID)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// UpdateStatus меняет статус бронирования
// Допустимые переходы: pending -> confirmed | cancelled, confirmed -> cancelled
// Подтверждает только администратор; отменить может владелец или администратор
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	next, err := models.ToDomainStatus(req.Status)
	if err != nil || next == domain.StatusPending {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	var updated *domain.Reservation

	// Чтение с блокировкой и запись в одной транзакции
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("UpdateStatus: reservation id=%s not found", id)
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// Проверяем права доступа
		if err := checkAccess(res, next, req.UserID, req.IsAdmin); err != nil {
			s.logger.Warn("UpdateStatus: access denied for user=%s to set %s on reservation id=%s", req.UserID, next, id)
			return err
		}

		if !res.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: reservation id=%s cannot move from %s to %s", id, res.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, next)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, next); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("UpdateStatus: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		res.Status = next
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%s to status=%s", id, next)
	return models.FromDomainReservation(updated), nil
}

// checkAccess владелец может только отменить свое бронирование
func checkAccess(res *domain.Reservation, next domain.ReservationStatus, userID string, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if res.UserID == userID && next == domain.StatusCancelled {
		return nil
	}
	return ErrAccessDenied
}
