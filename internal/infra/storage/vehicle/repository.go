package vehicle

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

// Repository читает парк машин. Сервис не создаёт и не меняет машины.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория машин
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func selectVehicles() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"school_id",
		"branch_id",
		"name",
		"license_plate",
		"license_categories",
		"is_active",
	).From("vehicles")
}

// GetByID получает машину по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectVehicles().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	v, err := scanVehicle(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan vehicle: %v", ErrScanRow, err)
	}

	return v, nil
}

// GetActiveByBranch получает активные машины бюро, по возрастанию ID
func (r *Repository) GetActiveByBranch(ctx context.Context, schoolID, branchID int64) ([]*domain.Vehicle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectVehicles().
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

	vehicles := make([]*domain.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByBranch - scan row: %v", ErrScanRow, err)
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBranch - rows error: %v", ErrScanRow, err)
	}

	return vehicles, nil
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var categories pq.StringArray

	err := row.Scan(&v.ID, &v.SchoolID, &v.BranchID, &v.Name, &v.LicensePlate, &categories, &v.IsActive)
	if err != nil {
		return nil, err
	}

	v.LicenseCategories = make([]domain.LicenseCategory, 0, len(categories))
	for _, c := range categories {
		v.LicenseCategories = append(v.LicenseCategories, domain.LicenseCategory(c))
	}

	return &v, nil
}
