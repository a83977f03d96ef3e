package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	"github.com/m04kA/SMC-CampBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CampBooking/pkg/txmanager"
	"github.com/m04kA/SMC-CampBooking/pkg/types"
)

var columns = []string{
	"id",
	"cabin_id",
	"user_id",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"guests",
	"status",
	"total_price",
	"check_in_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований домиков
// end_date - дата выезда, ночь end_date не занята
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование
// Вызывается внутри сериализуемой транзакции вместе с проверкой доступности
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"id",
			"cabin_id",
			"user_id",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"guests",
			"status",
			"total_price",
		).
		Values(
			res.ID,
			res.CabinID,
			res.UserID,
			res.Start,
			res.End,
			res.StartTime,
			res.EndTime,
			res.Guests,
			res.Status,
			res.TotalPrice,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})
	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования по фильтру
// По умолчанию возвращает только активные (pending, confirmed) бронирования.
// From/To задают полуоткрытый интервал [From, To), с которым пересекается бронирование.
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("reservations").
		OrderBy("start_date ASC")

	if filter.CabinID != nil {
		builder = builder.Where(squirrel.Eq{"cabin_id": *filter.CabinID})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"end_date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_date": *filter.To})
	}
	switch {
	case filter.Status != nil:
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	case !filter.IncludeInactive:
		builder = builder.Where(squirrel.Eq{"status": statusStrings(domain.BlockingStatuses)})
	}
	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// ListLateArrivals получает подтвержденные бронирования с заездом в day,
// по которым гость не отметился, а время заезда не позже cutoff
func (r *Repository) ListLateArrivals(ctx context.Context, day time.Time, cutoff types.TimeString) ([]domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("reservations").
		Where(squirrel.Eq{
			"status":        domain.StatusConfirmed,
			"start_date":    day,
			"check_in_time": nil,
		}).
		Where(squirrel.NotEq{"start_time": nil}).
		Where(squirrel.LtOrEq{"start_time": cutoff}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLateArrivals - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListLateArrivals", query, args)
}

// UpdateStatus меняет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]domain.Reservation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, op, err)
		}
		reservations = append(reservations, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return reservations, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		checkIn              sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.CabinID,
		&res.UserID,
		&res.Start,
		&res.End,
		&res.StartTime,
		&res.EndTime,
		&res.Guests,
		&res.Status,
		&res.TotalPrice,
		&checkIn,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if checkIn.Valid {
		t := checkIn.Time
		res.CheckInTime = &t
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
