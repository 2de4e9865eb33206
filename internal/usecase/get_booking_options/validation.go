package get_booking_options

import (
	"fmt"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return invalid("startTime", err.Error())
		}
	}

	if req.DurationMinutes < 0 {
		return invalid("durationMinutes", "must not be negative")
	}

	if req.InstructorID != nil && *req.InstructorID <= 0 {
		return invalid("instructorId", "must be positive")
	}

	if req.VehicleID != nil && *req.VehicleID <= 0 {
		return invalid("vehicleId", "must be positive")
	}

	if req.StudentID != nil && *req.StudentID <= 0 {
		return invalid("studentId", "must be positive")
	}

	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError(field, reason))
}
