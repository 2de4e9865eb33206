package submit_bookings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/service/recurrence"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
)

// UseCase use case пакетной записи занятий
// Разворачивает правило повторения и записывает занятия строго по очереди
type UseCase struct {
	writer   BookingWriter
	recorder SubmissionRecorder
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil
func NewUseCase(writer BookingWriter, recorder SubmissionRecorder, logger Logger) *UseCase {
	return &UseCase{
		writer:   writer,
		recorder: recorder,
		logger:   logger,
	}
}

// Execute выполняет use case пакетной записи
//
// Одно занятие: ошибка записи возвращается как есть.
// Несколько занятий: ошибка одного не прерывает остальные и не повторяется;
// если не записано ни одно, возвращается *AggregateSubmissionError.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*SubmissionResult, error) {
	uc.logger.Info("SubmitBookings: user=%d, school=%d, branch=%d, recurring=%t, date=%s",
		req.Session.UserID, req.Session.SchoolID, req.Session.BranchID, req.IsRecurring,
		req.Base.Date.Format(domain.DateFormat))

	// 1. Проверяем сессию
	if !req.Session.IsValid() {
		uc.logger.Warn("SubmitBookings: invalid session")
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("session", "is incomplete"))
	}

	// 2. Разворачиваем правило повторения (до любой записи)
	occurrences, err := recurrence.Expand(req.Base, req.Pattern, req.IsRecurring)
	if err != nil {
		uc.logger.Warn("SubmitBookings: expansion failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 3. Одно занятие - одна запись без пакетных флагов
	if len(occurrences) == 1 {
		return uc.submitSingle(ctx, req, occurrences[0])
	}

	// 4. Несколько занятий - последовательно, с общим идентификатором серии
	return uc.submitSeries(ctx, req, occurrences)
}

func (uc *UseCase) submitSingle(ctx context.Context, req *Request, occurrence domain.Occurrence) (*SubmissionResult, error) {
	resp, err := uc.writer.Execute(ctx, &create_booking.Request{
		Session: req.Session,
		Booking: withOccurrence(req.Base, occurrence),
	})
	uc.record(1, boolToInt(err == nil))
	if err != nil {
		uc.logger.Warn("SubmitBookings: booking on %s failed: %v", occurrence.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	return &SubmissionResult{
		Results: []OccurrenceResult{{
			Index:      0,
			Occurrence: occurrence,
			Booking:    resp,
		}},
		SuccessCount: 1,
		TotalCount:   1,
		Status:       StatusSuccess,
		RefreshView:  true,
	}, nil
}

func (uc *UseCase) submitSeries(ctx context.Context, req *Request, occurrences []domain.Occurrence) (*SubmissionResult, error) {
	seriesID := uuid.New()
	total := len(occurrences)

	result := &SubmissionResult{
		SeriesID:   &seriesID,
		Results:    make([]OccurrenceResult, 0, total),
		TotalCount: total,
	}

	for i, occurrence := range occurrences {
		isLast := i == total-1

		resp, err := uc.writer.Execute(ctx, &create_booking.Request{
			Session:             req.Session,
			Booking:             withOccurrence(req.Base, occurrence),
			SeriesID:            &seriesID,
			IsMultipleSubmit:    true,
			IsLastRecurringSlot: isLast,
		})
		if err != nil {
			uc.logger.Warn("SubmitBookings: occurrence %d/%d on %s %s-%s failed: %v",
				i+1, total, occurrence.Date.Format(domain.DateFormat), occurrence.StartTime, occurrence.EndTime, err)
		} else {
			result.SuccessCount++
		}

		result.Results = append(result.Results, OccurrenceResult{
			Index:               i,
			Occurrence:          occurrence,
			Booking:             resp,
			Err:                 err,
			IsLastRecurringSlot: isLast,
		})
	}

	uc.record(total, result.SuccessCount)

	switch {
	case result.SuccessCount == total:
		result.Status = StatusSuccess
	case result.SuccessCount > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusFailed
	}
	result.RefreshView = result.SuccessCount > 0

	uc.logger.Info("SubmitBookings: series %s: %d of %d bookings created",
		seriesID, result.SuccessCount, total)

	if result.SuccessCount == 0 {
		return nil, &AggregateSubmissionError{
			Attempted: total,
			Cause:     result.Results[0].Err,
			Failures:  result.Results,
		}
	}

	return result, nil
}

func (uc *UseCase) record(total, succeeded int) {
	if uc.recorder != nil {
		uc.recorder.ObserveSubmission(total, succeeded)
	}
}

// withOccurrence переносит дату и время занятия на базовый запрос
func withOccurrence(base domain.BookingRequest, o domain.Occurrence) domain.BookingRequest {
	base.Date = o.Date
	base.StartTime = o.StartTime
	base.EndTime = o.EndTime
	return base
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
