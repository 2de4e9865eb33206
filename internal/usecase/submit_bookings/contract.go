package submit_bookings

import (
	"context"

	"github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
)

// BookingWriter граница записи одного занятия
type BookingWriter interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// SubmissionRecorder учитывает итоги пакетной записи в метриках
type SubmissionRecorder interface {
	ObserveSubmission(total, succeeded int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
