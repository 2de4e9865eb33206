package submit_bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных или правиле повторения
	ErrInvalidInput = errors.New("submit_bookings: invalid input data")

	// ErrAllOccurrencesFailed совпадает (errors.Is) с любой AggregateSubmissionError
	ErrAllOccurrencesFailed = errors.New("submit_bookings: all occurrences failed")
)

// AggregateSubmissionError возвращается, когда ни одно занятие серии не записано
type AggregateSubmissionError struct {
	Attempted int
	Cause     error // Ошибка первого занятия
	Failures  []OccurrenceResult
}

func (e *AggregateSubmissionError) Error() string {
	return fmt.Sprintf("0 of %d bookings created: %v", e.Attempted, e.Cause)
}

// Is делает errors.Is(err, ErrAllOccurrencesFailed) истинным
func (e *AggregateSubmissionError) Is(target error) bool {
	return target == ErrAllOccurrencesFailed
}

// Unwrap даёт доступ к причине, например create_booking.ErrInstructorNotAvailable
func (e *AggregateSubmissionError) Unwrap() error {
	return e.Cause
}
