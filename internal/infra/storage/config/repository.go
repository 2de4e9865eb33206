package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/dbmetrics"
	"github.com/Skymx82/autosoft-sub001/pkg/psqlbuilder"
)

const table = "branch_schedule_configs"

// Repository репозиторий для работы с конфигурацией планинга
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySchoolAndBranch получает конфигурацию ровно одного уровня:
// branchID != nil - конфигурация бюро, branchID == nil - общая конфигурация автошколы
func (r *Repository) GetBySchoolAndBranch(ctx context.Context, schoolID int64, branchID *int64) (*domain.BranchScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"school_id",
		"branch_id",
		"open_time",
		"close_time",
		"slot_granularity_minutes",
		"max_booking_minutes",
		"duration_choices",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"school_id": schoolID})

	// Фильтрация по branch_id (NULL или конкретное значение)
	if branchID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"branch_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"branch_id": *branchID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySchoolAndBranch - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.BranchScheduleConfig
	var choices pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.SchoolID,
		&config.BranchID,
		&config.OpenTime,
		&config.CloseTime,
		&config.SlotGranularityMinutes,
		&config.MaxBookingMinutes,
		&choices,
		&config.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySchoolAndBranch - scan config: %v", ErrScanRow, err)
	}

	config.DurationChoices = fromInt64s(choices)
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// 1. Конфигурация конкретного бюро (schoolID, branchID)
// 2. Общая конфигурация автошколы (schoolID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, schoolID, branchID int64) (*domain.BranchScheduleConfig, error) {
	config, err := r.GetBySchoolAndBranch(ctx, schoolID, &branchID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (branch): %v", ErrExecQuery, err)
	}

	config, err = r.GetBySchoolAndBranch(ctx, schoolID, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (school): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Upsert создаёт или заменяет конфигурацию уровня (school_id, branch_id)
// Уникальность уровня обеспечивает индекс по (school_id, COALESCE(branch_id, 0))
func (r *Repository) Upsert(ctx context.Context, config *domain.BranchScheduleConfig) (*domain.BranchScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"school_id",
			"branch_id",
			"open_time",
			"close_time",
			"slot_granularity_minutes",
			"max_booking_minutes",
			"duration_choices",
			"advance_booking_days",
		).
		Values(
			config.SchoolID,
			config.BranchID,
			config.OpenTime,
			config.CloseTime,
			config.SlotGranularityMinutes,
			config.MaxBookingMinutes,
			pq.Array(toInt64s(config.DurationChoices)),
			config.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (school_id, (COALESCE(branch_id, 0))) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			max_booking_minutes = EXCLUDED.max_booking_minutes,
			duration_choices = EXCLUDED.duration_choices,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

func toInt64s(values []int) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}

func fromInt64s(values []int64) []int {
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}
