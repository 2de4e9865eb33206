package instructor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/dbmetrics"
	"github.com/Skymx82/autosoft-sub001/pkg/psqlbuilder"
)

// Repository читает состав инструкторов. Сервис не создаёт и не меняет инструкторов.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория инструкторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectInstructors() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"school_id",
		"branch_id",
		"first_name",
		"last_name",
		"is_active",
	).From("instructors")
}

// GetByID получает инструктора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectInstructors().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var i domain.Instructor
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&i.ID, &i.SchoolID, &i.BranchID, &i.FirstName, &i.LastName, &i.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan instructor: %v", ErrScanRow, err)
	}

	return &i, nil
}

// GetActiveByBranch получает активных инструкторов бюро, по возрастанию ID
func (r *Repository) GetActiveByBranch(ctx context.Context, schoolID, branchID int64) ([]*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectInstructors().
		Where(squirrel.Eq{"school_id": schoolID, "branch_id": branchID, "is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	instructors := make([]*domain.Instructor, 0)
	for rows.Next() {
		var i domain.Instructor
		if err := rows.Scan(&i.ID, &i.SchoolID, &i.BranchID, &i.FirstName, &i.LastName, &i.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetActiveByBranch - scan row: %v", ErrScanRow, err)
		}
		instructors = append(instructors, &i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBranch - rows error: %v", ErrScanRow, err)
	}

	return instructors, nil
}
