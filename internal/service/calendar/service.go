package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	blockedDateRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/blocked_date"
	cabinRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/cabin"
	holidayRepo "github.com/m04kA/SMC-CampBooking/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-CampBooking/internal/service/calendar/models"
	"github.com/m04kA/SMC-CampBooking/pkg/daterange"
)

// Service сервис календаря: блокировки дат и праздники
type Service struct {
	blockedDateRepo BlockedDateRepository
	holidayRepo     HolidayRepository
	cabinRepo       CabinRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(
	blockedDateRepo BlockedDateRepository,
	holidayRepo HolidayRepository,
	cabinRepo CabinRepository,
	logger Logger,
) *Service {
	return &Service{
		blockedDateRepo: blockedDateRepo,
		holidayRepo:     holidayRepo,
		cabinRepo:       cabinRepo,
		logger:          logger,
	}
}

// ListBlockedDates возвращает блокировки по фильтру
func (s *Service) ListBlockedDates(ctx context.Context, req *models.ListBlockedDatesRequest) (*models.BlockedDateListResponse, error) {
	s.logger.Info("ListBlockedDates: fetching blocked dates, cabin=%v", req.CabinID)

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return nil, fmt.Errorf("%w: 'to' must be after 'from'", ErrInvalidInput)
	}

	blocks, err := s.blockedDateRepo.List(ctx, blockedDateRepo.Filter{
		CabinID: req.CabinID,
		From:    req.From,
		To:      req.To,
	})
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlockedDates: successfully fetched %d blocked dates", len(blocks))
	return models.FromDomainBlockedDateList(blocks), nil
}

// CreateBlockedDate блокирует диапазон дат для домика или всех домиков
// Существующие бронирования не отменяются: блокировка влияет только на новые
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: cabin=%v, start=%s, end=%s, type=%s",
		req.CabinID, req.StartDate, req.EndDate, req.BlockType)

	// 1. Валидация входных данных
	block, err := toDomainBlockedDate(req)
	if err != nil {
		s.logger.Warn("CreateBlockedDate: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем домик, если блокировка не общая
	if block.CabinID != nil {
		if _, err := s.cabinRepo.GetByID(ctx, *block.CabinID); err != nil {
			if errors.Is(err, cabinRepo.ErrCabinNotFound) {
				s.logger.Warn("CreateBlockedDate: cabin id=%s not found", *block.CabinID)
				return nil, ErrCabinNotFound
			}
			s.logger.Error("CreateBlockedDate: failed to get cabin id=%s: %v", *block.CabinID, err)
			return nil, fmt.Errorf("%w: failed to get cabin: %v", ErrInternal, err)
		}
	}

	// 3. Сохраняем
	created, err := s.blockedDateRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: successfully created blocked date id=%s", created.ID)
	return models.FromDomainBlockedDate(created), nil
}

// DeleteBlockedDate снимает блокировку
func (s *Service) DeleteBlockedDate(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("DeleteBlockedDate: deleting blocked date id=%s", id)

	if err := s.blockedDateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockedDateRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("DeleteBlockedDate: blocked date id=%s not found", id)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedDate: successfully deleted blocked date id=%s", id)
	return nil
}

// ListHolidays возвращает все праздники
func (s *Service) ListHolidays(ctx context.Context) (*models.HolidayListResponse, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListHolidays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListHolidays - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListHolidays: successfully fetched %d holidays", len(holidays))
	return models.FromDomainHolidayList(holidays), nil
}

// CreateHoliday добавляет праздник
func (s *Service) CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("CreateHoliday: name=%q, date=%s, recurring=%t", req.Name, req.Date, req.Recurring)

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > domain.MaxHolidayNameLength {
		s.logger.Warn("CreateHoliday: invalid name %q", req.Name)
		return nil, fmt.Errorf("%w: name is required and at most %d characters", ErrInvalidInput, domain.MaxHolidayNameLength)
	}

	date, err := daterange.Parse(req.Date)
	if err != nil {
		s.logger.Warn("CreateHoliday: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}

	created, err := s.holidayRepo.Create(ctx, &domain.Holiday{
		Name:      name,
		Date:      date,
		Recurring: req.Recurring,
	})
	if err != nil {
		s.logger.Error("CreateHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateHoliday: successfully created holiday id=%s", created.ID)
	return models.FromDomainHoliday(created), nil
}

// DeleteHoliday удаляет праздник
func (s *Service) DeleteHoliday(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("DeleteHoliday: deleting holiday id=%s", id)

	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("DeleteHoliday: holiday id=%s not found", id)
			return ErrHolidayNotFound
		}
		s.logger.Error("DeleteHoliday: repository error for id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteHoliday: successfully deleted holiday id=%s", id)
	return nil
}

// toDomainBlockedDate проверяет запрос и собирает domain модель
func toDomainBlockedDate(req *models.CreateBlockedDateRequest) (*domain.BlockedDate, error) {
	start, err := daterange.Parse(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: startDate: %v", ErrInvalidInput, err)
	}
	end, err := daterange.Parse(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: endDate: %v", ErrInvalidInput, err)
	}
	// Даты включительно: блокировка одного дня допустима
	if end.Before(start) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	kind := domain.BlockKind(req.BlockType)
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown blockType %q", ErrInvalidInput, req.BlockType)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" || len(reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason is required and at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}
	if len(req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return &domain.BlockedDate{
		CabinID: req.CabinID,
		Start:   start,
		End:     end,
		Reason:  reason,
		Kind:    kind,
		Notes:   req.Notes,
	}, nil
}
