package cabin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CampBooking/internal/domain"
	"github.com/m04kA/SMC-CampBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-CampBooking/pkg/txmanager"
)

var columns = []string{
	"id",
	"name",
	"base_price",
	"capacity",
	"category",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога домиков (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория домиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает домик по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Cabin, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("cabins").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	cabin, err := scanCabin(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCabinNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan cabin: %v", ErrScanRow, err)
	}

	return cabin, nil
}

// List получает все домики, опционально фильтруя по категории
func (r *Repository) List(ctx context.Context, category *domain.CabinCategory) ([]domain.Cabin, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("cabins").
		OrderBy("name ASC")
	if category != nil {
		builder = builder.Where(squirrel.Eq{"category": *category})
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

	cabins := make([]domain.Cabin, 0)
	for rows.Next() {
		cabin, err := scanCabin(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan cabin: %v", ErrScanRow, err)
		}
		cabins = append(cabins, *cabin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return cabins, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCabin(row scanner) (*domain.Cabin, error) {
	var cabin domain.Cabin
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cabin.ID,
		&cabin.Name,
		&cabin.BasePrice,
		&cabin.Capacity,
		&cabin.Category,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cabin.CreatedAt = createdAt.Time
	cabin.UpdatedAt = updatedAt.Time
	return &cabin, nil
}
