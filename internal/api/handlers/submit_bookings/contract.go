package submit_bookings

import (
	"context"

	submitBookings "github.com/Skymx82/autosoft-sub001/internal/usecase/submit_bookings"
)

type SubmitBookingsUseCase interface {
	Execute(ctx context.Context, req *submitBookings.Request) (*submitBookings.SubmissionResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
