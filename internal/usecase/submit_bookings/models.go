package submit_bookings

import (
	"github.com/google/uuid"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
)

// Request модель запроса на запись одного или нескольких занятий
type Request struct {
	Session     domain.SessionContext
	Base        domain.BookingRequest
	Pattern     *domain.RecurrencePattern
	IsRecurring bool
}

// Status итог пакетной записи
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// OccurrenceResult результат записи одного занятия
type OccurrenceResult struct {
	Index               int
	Occurrence          domain.Occurrence
	Booking             *create_booking.Response // nil при ошибке
	Err                 error
	IsLastRecurringSlot bool
}

// Succeeded возвращает true, если занятие записано
func (r OccurrenceResult) Succeeded() bool {
	return r.Err == nil
}

// SubmissionResult итог записи всех занятий, в порядке разворачивания
type SubmissionResult struct {
	SeriesID     *uuid.UUID // nil для одиночной записи
	Results      []OccurrenceResult
	SuccessCount int
	TotalCount   int
	Status       Status
	RefreshView  bool
}

// Failures возвращает только неудавшиеся занятия
func (r *SubmissionResult) Failures() []OccurrenceResult {
	failures := make([]OccurrenceResult, 0)
	for _, res := range r.Results {
		if !res.Succeeded() {
			failures = append(failures, res)
		}
	}
	return failures
}
