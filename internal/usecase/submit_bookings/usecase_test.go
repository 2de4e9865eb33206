package submit_bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
	"github.com/Skymx82/autosoft-sub001/pkg/logger"
)

// stubWriter падает на занятиях с индексами из failAt (по порядку вызова)
type stubWriter struct {
	failAt map[int]error
	calls  []*create_booking.Request
}

func (s *stubWriter) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	idx := len(s.calls)
	s.calls = append(s.calls, req)

	if err, ok := s.failAt[idx]; ok {
		return nil, err
	}
	return &create_booking.Response{
		ID:                  int64(idx + 1),
		BookingDate:         req.Booking.Date,
		StartTime:           req.Booking.StartTime,
		EndTime:             req.Booking.EndTime,
		IsMultipleSubmit:    req.IsMultipleSubmit,
		IsLastRecurringSlot: req.IsLastRecurringSlot,
	}, nil
}

type stubRecorder struct{ total, succeeded int }

func (r *stubRecorder) ObserveSubmission(total, succeeded int) {
	r.total += total
	r.succeeded += succeeded
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func baseRequest() domain.BookingRequest {
	student, vehicle := int64(50), int64(10)
	return domain.BookingRequest{
		Date:         day(1),
		StartTime:    "10:00",
		EndTime:      "11:00",
		InstructorID: 7,
		StudentID:    &student,
		VehicleID:    &vehicle,
		EventType:    domain.EventLesson,
	}
}

func customRequest(n int) *Request {
	slots := make([]domain.Occurrence, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, domain.Occurrence{Date: day(i + 2), StartTime: "14:00", EndTime: "15:00"})
	}
	return &Request{
		Session:     domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2},
		Base:        baseRequest(),
		Pattern:     &domain.RecurrencePattern{Frequency: domain.FrequencyCustom, CustomTimeSlots: slots},
		IsRecurring: true,
	}
}

func TestExecute_SecondOfThreeFails(t *testing.T) {
	writer := &stubWriter{failAt: map[int]error{1: create_booking.ErrInstructorNotAvailable}}
	recorder := &stubRecorder{}
	uc := NewUseCase(writer, recorder, logger.NewNop())

	result, err := uc.Execute(context.Background(), customRequest(3))
	require.NoError(t, err)

	assert.Len(t, writer.calls, 3, "third occurrence must still be attempted")
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, StatusPartial, result.Status)
	assert.True(t, result.RefreshView)

	failures := result.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, 1, failures[0].Index)
	assert.ErrorIs(t, failures[0].Err, create_booking.ErrInstructorNotAvailable)

	assert.Equal(t, 3, recorder.total)
	assert.Equal(t, 2, recorder.succeeded)
}

func TestExecute_AggregateProperty(t *testing.T) {
	const n = 5

	for m := 0; m <= n; m++ {
		t.Run(fmt.Sprintf("%d of %d succeed", m, n), func(t *testing.T) {
			// первые n-m вызовов падают
			failAt := make(map[int]error)
			for i := 0; i < n-m; i++ {
				failAt[i] = fmt.Errorf("write %d: %w", i, create_booking.ErrVehicleNotAvailable)
			}
			writer := &stubWriter{failAt: failAt}
			uc := NewUseCase(writer, nil, logger.NewNop())

			result, err := uc.Execute(context.Background(), customRequest(n))

			require.Len(t, writer.calls, n)
			for i, call := range writer.calls {
				assert.True(t, call.IsMultipleSubmit)
				assert.Equal(t, i == n-1, call.IsLastRecurringSlot, "call %d", i)
				require.NotNil(t, call.SeriesID)
				assert.Equal(t, *writer.calls[0].SeriesID, *call.SeriesID)
			}

			if m == 0 {
				require.Error(t, err)
				assert.Nil(t, result)
				assert.ErrorIs(t, err, ErrAllOccurrencesFailed)
				assert.ErrorIs(t, err, create_booking.ErrVehicleNotAvailable)

				var agg *AggregateSubmissionError
				require.True(t, errors.As(err, &agg))
				assert.Equal(t, n, agg.Attempted)
				assert.Len(t, agg.Failures, n)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, m, result.SuccessCount)
			assert.Equal(t, n, result.TotalCount)
			if m == n {
				assert.Equal(t, StatusSuccess, result.Status)
			} else {
				assert.Equal(t, StatusPartial, result.Status)
			}
		})
	}
}

func TestExecute_SingleOccurrence(t *testing.T) {
	req := &Request{
		Session: domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2},
		Base:    baseRequest(),
	}

	t.Run("success", func(t *testing.T) {
		writer := &stubWriter{}
		uc := NewUseCase(writer, nil, logger.NewNop())

		result, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, writer.calls, 1)
		assert.False(t, writer.calls[0].IsMultipleSubmit)
		assert.False(t, writer.calls[0].IsLastRecurringSlot)
		assert.Nil(t, writer.calls[0].SeriesID)
		assert.Nil(t, result.SeriesID)
		assert.Equal(t, StatusSuccess, result.Status)
		assert.Equal(t, 1, result.SuccessCount)
	})

	t.Run("error is returned unchanged", func(t *testing.T) {
		writer := &stubWriter{failAt: map[int]error{0: create_booking.ErrStudentNotAvailable}}
		uc := NewUseCase(writer, nil, logger.NewNop())

		result, err := uc.Execute(context.Background(), req)
		assert.Nil(t, result)
		assert.Same(t, create_booking.ErrStudentNotAvailable, err)
	})
}

func TestExecute_WeeklySeriesCarriesOccurrenceTimes(t *testing.T) {
	writer := &stubWriter{}
	uc := NewUseCase(writer, nil, logger.NewNop())

	req := &Request{
		Session: domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2},
		Base:    baseRequest(),
		Pattern: &domain.RecurrencePattern{
			Frequency:  domain.FrequencyWeekly,
			EndDate:    day(22),
			DaysOfWeek: []domain.Weekday{domain.Monday, domain.Wednesday},
		},
		IsRecurring: true,
	}

	result, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 7, result.TotalCount)
	require.Len(t, writer.calls, 7)

	assert.Equal(t, day(1), writer.calls[0].Booking.Date)
	assert.Equal(t, day(22), writer.calls[6].Booking.Date)
	for _, call := range writer.calls {
		assert.Equal(t, int64(7), call.Booking.InstructorID)
		assert.Equal(t, "10:00", call.Booking.StartTime.String())
	}
}

func TestExecute_ValidationFailsBeforeAnyWrite(t *testing.T) {
	writer := &stubWriter{}
	uc := NewUseCase(writer, nil, logger.NewNop())

	req := customRequest(2)
	req.Pattern.CustomTimeSlots[1].EndTime = "13:00"

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, writer.calls)

	_, err = uc.Execute(context.Background(), &Request{Base: baseRequest()})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, writer.calls)
}
