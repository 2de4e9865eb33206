package create_booking

import (
	"context"
	"time"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/integrations/studentservice"
)

// BookingRepository интерфейс репозитория занятий
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetBranchBookings(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
}

// ConfigRepository интерфейс репозитория конфигурации планинга
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, schoolID, branchID int64) (*domain.BranchScheduleConfig, error)
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
}

// VehicleRepository интерфейс репозитория машин
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// StudentServiceClient интерфейс клиента сервиса учеников
type StudentServiceClient interface {
	GetStudentWithGracefulDegradation(ctx context.Context, schoolID, studentID int64) (*studentservice.Student, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
