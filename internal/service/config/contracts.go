package config

import (
	"context"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации планинга
type ConfigRepository interface {
	GetBySchoolAndBranch(ctx context.Context, schoolID int64, branchID *int64) (*domain.BranchScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, schoolID, branchID int64) (*domain.BranchScheduleConfig, error)
	Upsert(ctx context.Context, config *domain.BranchScheduleConfig) (*domain.BranchScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
