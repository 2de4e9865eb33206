package preview_recurrence

import "github.com/Skymx82/autosoft-sub001/internal/domain"

// Request модель запроса предпросмотра серии
type Request struct {
	Session     domain.SessionContext
	Base        domain.BookingRequest
	Pattern     *domain.RecurrencePattern
	IsRecurring bool
}

// Response модель ответа: занятия, которые будут записаны
type Response struct {
	Occurrences []domain.Occurrence
}
