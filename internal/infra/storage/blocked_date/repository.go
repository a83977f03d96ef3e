package blocked_date

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	"github.com/m04kA/SMC-CampBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CampBooking/pkg/txmanager"
)

var columns = []string{
	"id",
	"cabin_id",
	"start_date",
	"end_date",
	"reason",
	"block_type",
	"notes",
	"created_at",
}

// Filter фильтр блокировок
type Filter struct {
	// CabinID блокировки домика и общие блокировки (cabin_id IS NULL)
	CabinID *uuid.UUID
	// From, To полуоткрытый интервал [From, To), с которым пересекается блокировка
	From *time.Time
	To   *time.Time
}

// Repository репозиторий блокировок дат
// Даты start_date и end_date хранятся включительно
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает блокировки по фильтру
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка доступности
// и вставка бронирования видели одно и то же состояние
func (r *Repository) List(ctx context.Context, filter Filter) ([]domain.BlockedDate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("blocked_dates").
		OrderBy("start_date ASC")

	if filter.CabinID != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"cabin_id": *filter.CabinID},
			squirrel.Eq{"cabin_id": nil},
		})
	}
	// блокировка [start, end] пересекает [From, To), если start < To и end >= From
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"end_date": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_date": *filter.To})
	}
	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]domain.BlockedDate, 0)
	for rows.Next() {
		var (
			block   domain.BlockedDate
			cabinID uuid.NullUUID
			notes   sql.NullString
		)
		err := rows.Scan(
			&block.ID,
			&cabinID,
			&block.Start,
			&block.End,
			&block.Reason,
			&block.Kind,
			&notes,
			&block.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan blocked date: %v", ErrScanRow, err)
		}
		if cabinID.Valid {
			id := cabinID.UUID
			block.CabinID = &id
		}
		block.Notes = notes.String
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// Create сохраняет блокировку
func (r *Repository) Create(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}

	var cabinID uuid.NullUUID
	if block.CabinID != nil {
		cabinID = uuid.NullUUID{UUID: *block.CabinID, Valid: true}
	}

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("id", "cabin_id", "start_date", "end_date", "reason", "block_type", "notes").
		Values(block.ID, cabinID, block.Start, block.End, block.Reason, block.Kind, block.Notes).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}
