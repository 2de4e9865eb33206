package create_booking

import (
	"fmt"
	"time"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Session.IsValid() {
		return invalid("session", "user, school and branch are required")
	}

	b := req.Booking

	if b.InstructorID <= 0 {
		return invalid("instructorId", "must be positive")
	}

	if b.Date.IsZero() {
		return invalid("date", "is required")
	}

	if err := b.StartTime.Validate(); err != nil {
		return invalid("startTime", fmt.Sprintf("expected HH:MM, got %q", b.StartTime))
	}

	if err := b.EndTime.Validate(); err != nil {
		return invalid("endTime", fmt.Sprintf("expected HH:MM, got %q", b.EndTime))
	}

	if !b.StartTime.IsBefore(b.EndTime) {
		return invalid("endTime", "must be after startTime")
	}

	switch b.EventType {
	case domain.EventLesson, domain.EventExam, domain.EventUnavailability:
	default:
		return invalid("eventType", fmt.Sprintf("unknown event type %q", b.EventType))
	}

	if b.EventType.RequiresStudent() && (b.StudentID == nil || *b.StudentID <= 0) {
		return invalid("studentId", fmt.Sprintf("is required for %s", b.EventType))
	}

	if b.EventType.RequiresVehicle() && (b.VehicleID == nil || *b.VehicleID <= 0) {
		return invalid("vehicleId", fmt.Sprintf("is required for %s", b.EventType))
	}

	if b.EventType == domain.EventUnavailability && b.StudentID != nil {
		return invalid("studentId", "must be empty for unavailability")
	}

	if b.Comments != nil && len([]rune(*b.Comments)) > domain.MaxCommentsLength {
		return invalid("comments", fmt.Sprintf("must be at most %d characters", domain.MaxCommentsLength))
	}

	if req.IsLastRecurringSlot && !req.IsMultipleSubmit {
		return invalid("isLastRecurringSlot", "requires isMultipleSubmit")
	}

	return nil
}

// invalid оборачивает ошибку поля так, что её видно и через ErrInvalidInput, и через domain.ErrValidation
func invalid(field, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError(field, reason))
}

// validateDate проверяет, что дата подходит для записи
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, advanceBookingDays)
	if dateOnly(bookingDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateWindow проверяет окно работы бюро и длительность урока
func validateWindow(b domain.BookingRequest, config *domain.BranchScheduleConfig) error {
	if !config.WithinWindow(b.StartTime, b.EndTime) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s",
			ErrOutsideWorkingHours, b.StartTime, b.EndTime, config.OpenTime, config.CloseTime)
	}

	// Недоступность инструктора может длиться весь день, ограничение только для уроков
	if b.EventType != domain.EventLesson {
		return nil
	}

	duration := b.EndTime.Sub(b.StartTime)
	if duration < domain.MinBookingMinutes {
		return invalid("endTime", fmt.Sprintf("lesson must last at least %d minutes", domain.MinBookingMinutes))
	}

	maxMinutes := config.MaxBookingMinutes
	if maxMinutes <= 0 {
		maxMinutes = domain.DefaultMaxBookingMinutes
	}
	if duration > maxMinutes {
		return fmt.Errorf("%w: %d minutes, max %d", ErrDurationTooLong, duration, maxMinutes)
	}

	return nil
}

// findConflict ищет активное занятие, пересекающееся с новым, по инструктору, машине и ученику
func findConflict(b domain.BookingRequest, existing []*domain.Booking) error {
	for _, other := range existing {
		if !other.IsActive() || !other.Overlaps(b.StartTime, b.EndTime) {
			continue
		}

		if other.InstructorID == b.InstructorID {
			return fmt.Errorf("%w: booking id=%d %s-%s",
				ErrInstructorNotAvailable, other.ID, other.StartTime, other.EndTime)
		}

		if b.VehicleID != nil && other.UsesVehicle(*b.VehicleID) {
			return fmt.Errorf("%w: booking id=%d %s-%s",
				ErrVehicleNotAvailable, other.ID, other.StartTime, other.EndTime)
		}

		if b.StudentID != nil && other.HasStudent(*b.StudentID) {
			return fmt.Errorf("%w: booking id=%d %s-%s",
				ErrStudentNotAvailable, other.ID, other.StartTime, other.EndTime)
		}
	}

	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly отбрасывает время и зону: даты сравниваются как календарные дни
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
