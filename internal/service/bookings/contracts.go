package bookings

import (
	"context"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// BookingRepository интерфейс репозитория занятий
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByStudentID(ctx context.Context, schoolID, studentID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetBranchBookings(ctx context.Context, filter domain.BranchBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
