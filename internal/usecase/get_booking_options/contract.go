package get_booking_options

import (
	"context"

	"github.com/Skymx82/autosoft-sub001/internal/integrations/studentservice"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/get_availability"
)

// AvailabilityResolver интерфейс расчёта доступности на дату
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error)
}

// StudentServiceClient интерфейс клиента сервиса учеников
type StudentServiceClient interface {
	GetStudentWithGracefulDegradation(ctx context.Context, schoolID, studentID int64) (*studentservice.Student, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
