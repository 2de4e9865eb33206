package recurrence

import (
	"fmt"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// validateBase проверяет дату и время базового занятия
func validateBase(base domain.BookingRequest) error {
	return validateOccurrence("", base.BaseOccurrence())
}

func validateOccurrence(prefix string, o domain.Occurrence) error {
	if o.Date.IsZero() {
		return domain.NewValidationError(prefix+"date", "is required")
	}

	if err := o.StartTime.Validate(); err != nil {
		return domain.NewValidationError(prefix+"startTime", fmt.Sprintf("expected HH:MM, got %q", o.StartTime))
	}

	if err := o.EndTime.Validate(); err != nil {
		return domain.NewValidationError(prefix+"endTime", fmt.Sprintf("expected HH:MM, got %q", o.EndTime))
	}

	if !o.StartTime.IsBefore(o.EndTime) {
		return domain.NewValidationError(prefix+"endTime", "must be after startTime")
	}

	return nil
}

// validatePeriodic проверяет правило weekly/biweekly/monthly
func validatePeriodic(base domain.BookingRequest, pattern *domain.RecurrencePattern) error {
	if pattern.EndDate.IsZero() {
		return domain.NewValidationError("endDate", "is required for periodic recurrence")
	}

	for _, day := range pattern.DaysOfWeek {
		if !day.Valid() {
			return domain.NewValidationError("daysOfWeek", fmt.Sprintf("weekday %d is out of range 0..6", day))
		}
	}

	// Конец раньше начала не ошибка: правило вырождается в одно базовое занятие
	horizon := dateOnly(base.Date).AddDate(0, 0, domain.MaxRecurrenceDays)
	if dateOnly(pattern.EndDate).After(horizon) {
		return domain.NewValidationError("endDate",
			fmt.Sprintf("must be within %d days of the first occurrence", domain.MaxRecurrenceDays))
	}

	return nil
}
