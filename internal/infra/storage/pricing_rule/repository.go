package pricing_rule

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
	"rule_type",
	"condition",
	"adjustment",
	"adjustment_type",
	"priority",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил ценообразования
// Условие правила хранится в колонке condition (JSONB)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает правила в порядке применения (priority DESC, id ASC)
// Правила с нечитаемым условием возвращаются с domain.BrokenCondition,
// чтобы калькулятор пропустил их и записал в лог
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]domain.PricingRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("pricing_rules").
		OrderBy("priority DESC", "id ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
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

	rules := make([]domain.PricingRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan rule: %v", ErrScanRow, err)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - iterate rows: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PricingRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("pricing_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// Create сохраняет новое правило
// ID генерируется, если не задан
func (r *Repository) Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	condition, err := domain.MarshalCondition(rule.Condition)
	if err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrEncodeCondition, err)
	}
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("pricing_rules").
		Columns(
			"id",
			"name",
			"rule_type",
			"condition",
			"adjustment",
			"adjustment_type",
			"priority",
			"is_active",
		).
		Values(
			rule.ID,
			rule.Name,
			rule.Kind,
			string(condition),
			rule.Adjustment,
			rule.AdjustmentType,
			rule.Priority,
			rule.Active,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// Update обновляет все изменяемые поля правила
func (r *Repository) Update(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	condition, err := domain.MarshalCondition(rule.Condition)
	if err != nil {
		return nil, fmt.Errorf("%w: Update: %v", ErrEncodeCondition, err)
	}

	query, args, err := psqlbuilder.Update("pricing_rules").
		Set("name", rule.Name).
		Set("rule_type", rule.Kind).
		Set("condition", string(condition)).
		Set("adjustment", rule.Adjustment).
		Set("adjustment_type", rule.AdjustmentType).
		Set("priority", rule.Priority).
		Set("is_active", rule.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rule.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// Delete удаляет правило
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("pricing_rules").
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
		return ErrRuleNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row scanner) (*domain.PricingRule, error) {
	var (
		rule                 domain.PricingRule
		kind                 string
		raw                  []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&rule.ID,
		&rule.Name,
		&kind,
		&raw,
		&rule.Adjustment,
		&rule.AdjustmentType,
		&rule.Priority,
		&rule.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	rule.Kind, rule.Condition = decodeCondition(kind, raw)

	return &rule, nil
}

func decodeCondition(kind string, raw []byte) (domain.RuleKind, domain.Condition) {
	ruleKind, err := domain.ParseRuleKind(kind)
	if err != nil {
		ruleKind = domain.RuleKind(kind)
		return ruleKind, domain.BrokenCondition{RuleKind: ruleKind, Err: fmt.Errorf("%w: %v", domain.ErrInvalidCondition, err)}
	}

	cond, err := domain.ParseCondition(ruleKind, raw)
	if err != nil {
		return ruleKind, domain.BrokenCondition{RuleKind: ruleKind, Err: err}
	}
	return ruleKind, cond
}
