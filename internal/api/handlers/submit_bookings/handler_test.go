package submit_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/api/middleware"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/internal/usecase/create_booking"
	submitBookings "github.com/Skymx82/autosoft-sub001/internal/usecase/submit_bookings"
	"github.com/Skymx82/autosoft-sub001/pkg/logger"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

type stubUseCase struct {
	got    *submitBookings.Request
	result *submitBookings.SubmissionResult
	err    error
}

func (s *stubUseCase) Execute(_ context.Context, req *submitBookings.Request) (*submitBookings.SubmissionResult, error) {
	s.got = req
	return s.result, s.err
}

var session = domain.SessionContext{UserID: 1, SchoolID: 1, BranchID: 2}

const lessonBody = `{
	"date": "2030-03-04",
	"startTime": "10:00",
	"endTime": "11:00",
	"instructorId": 10,
	"studentId": 50,
	"vehicleId": 20,
	"eventType": "lesson"
}`

func serve(t *testing.T, uc SubmitBookingsUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	r = r.WithContext(middleware.WithSession(r.Context(), session))
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, r)
	return rec
}

func occurrence(day int) domain.Occurrence {
	return domain.Occurrence{
		Date:      time.Date(2030, 3, day, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
	}
}

func created(id int64, o domain.Occurrence, seriesID *uuid.UUID) *create_booking.Response {
	return &create_booking.Response{
		ID:           id,
		SchoolID:     1,
		BranchID:     2,
		BookingDate:  o.Date,
		StartTime:    o.StartTime,
		EndTime:      o.EndTime,
		InstructorID: 10,
		EventType:    domain.EventLesson,
		SeriesID:     seriesID,
		Status:       domain.StatusScheduled,
	}
}

func TestHandle_SingleBooking(t *testing.T) {
	o := occurrence(4)
	uc := &stubUseCase{result: &submitBookings.SubmissionResult{
		Results:      []submitBookings.OccurrenceResult{{Occurrence: o, Booking: created(100, o, nil)}},
		SuccessCount: 1,
		TotalCount:   1,
		Status:       submitBookings.StatusSuccess,
		RefreshView:  true,
	}}

	rec := serve(t, uc, lessonBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, uc.got)
	assert.Equal(t, session, uc.got.Session)
	assert.Equal(t, domain.EventLesson, uc.got.Base.EventType)
	assert.Nil(t, uc.got.Pattern)

	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(100), resp.Bookings[0].ID)
	assert.Equal(t, 60, resp.Bookings[0].DurationMinutes)
	assert.Empty(t, resp.Failures)
}

func TestHandle_PartialSeries(t *testing.T) {
	seriesID := uuid.New()
	first, second := occurrence(4), occurrence(11)
	uc := &stubUseCase{result: &submitBookings.SubmissionResult{
		SeriesID: &seriesID,
		Results: []submitBookings.OccurrenceResult{
			{Index: 0, Occurrence: first, Booking: created(100, first, &seriesID)},
			{Index: 1, Occurrence: second, Err: fmt.Errorf("%w: booking id=7", create_booking.ErrVehicleNotAvailable), IsLastRecurringSlot: true},
		},
		SuccessCount: 1,
		TotalCount:   2,
		Status:       submitBookings.StatusPartial,
		RefreshView:  true,
	}}

	body := strings.Replace(lessonBody, `"eventType": "lesson"`,
		`"eventType": "lesson", "isRecurring": true, "recurrence": {"frequency": "weekly", "endDate": "2030-03-11"}`, 1)
	rec := serve(t, uc, body)
	require.Equal(t, http.StatusMultiStatus, rec.Code)

	require.NotNil(t, uc.got.Pattern)
	assert.Equal(t, domain.FrequencyWeekly, uc.got.Pattern.Frequency)

	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "partial", resp.Status)
	assert.Equal(t, "1 из 2 занятий записано", resp.Message)
	require.Len(t, resp.Failures, 1)
	assert.Equal(t, "2030-03-11", resp.Failures[0].Date)
	assert.Equal(t, http.StatusConflict, resp.Failures[0].Code)
	assert.Equal(t, msgVehicleNotAvailable, resp.Failures[0].Message)
}

func TestHandle_AllOccurrencesFailed(t *testing.T) {
	cause := fmt.Errorf("%w: booking id=3", create_booking.ErrInstructorNotAvailable)
	uc := &stubUseCase{err: &submitBookings.AggregateSubmissionError{
		Attempted: 2,
		Cause:     cause,
		Failures: []submitBookings.OccurrenceResult{
			{Index: 0, Occurrence: occurrence(4), Err: cause},
			{Index: 1, Occurrence: occurrence(11), Err: cause},
		},
	}}

	rec := serve(t, uc, lessonBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp SubmissionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "0 из 2 занятий записано: "+msgInstructorNotAvailable, resp.Message)
	assert.Len(t, resp.Failures, 2)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		field    string
	}{
		{name: "malformed json", body: `{"date":`, wantCode: http.StatusBadRequest},
		{name: "unknown field", body: `{"foo": 1}`, wantCode: http.StatusBadRequest},
		{
			name:     "bad start time",
			body:     strings.Replace(lessonBody, `"10:00"`, `"10h"`, 1),
			wantCode: http.StatusBadRequest,
			field:    "startTime",
		},
		{
			name:     "bad recurrence",
			body:     lessonBody,
			err:      fmt.Errorf("%w: %w", submitBookings.ErrInvalidInput, domain.NewValidationError("recurrence.endDate", "is required")),
			wantCode: http.StatusBadRequest,
			field:    "recurrence.endDate",
		},
		{name: "student busy", body: lessonBody, err: create_booking.ErrStudentNotAvailable, wantCode: http.StatusConflict},
		{name: "unknown instructor", body: lessonBody, err: create_booking.ErrInstructorNotFound, wantCode: http.StatusNotFound},
		{name: "outside hours", body: lessonBody, err: create_booking.ErrOutsideWorkingHours, wantCode: http.StatusBadRequest},
		{name: "access denied", body: lessonBody, err: create_booking.ErrAccessDenied, wantCode: http.StatusForbidden},
		{name: "internal", body: lessonBody, err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.field != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.field, resp.Field)
			}
		})
	}
}

func TestHandle_NoSession(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(lessonBody))
	rec := httptest.NewRecorder()

	NewHandler(&stubUseCase{}, logger.NewNop()).Handle(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
