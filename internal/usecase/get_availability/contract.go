package get_availability

import (
	"context"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// BookingRepository интерфейс репозитория занятий
type BookingRepository interface {
	GetBranchBookings(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации планинга
type ConfigRepository interface {
	// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, schoolID, branchID int64) (*domain.BranchScheduleConfig, error)
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	GetActiveByBranch(ctx context.Context, schoolID, branchID int64) ([]*domain.Instructor, error)
}

// VehicleRepository интерфейс репозитория машин
type VehicleRepository interface {
	GetActiveByBranch(ctx context.Context, schoolID, branchID int64) ([]*domain.Vehicle, error)
}

// SupersededRecorder учитывает отброшенные устаревшие ответы
type SupersededRecorder interface {
	ObserveSuperseded()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
