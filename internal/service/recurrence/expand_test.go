package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func baseRequest(day string) domain.BookingRequest {
	return domain.BookingRequest{
		Date:         date(day),
		StartTime:    "10:00",
		EndTime:      "11:00",
		InstructorID: 7,
		EventType:    domain.EventLesson,
	}
}

func dates(occurrences []domain.Occurrence) []string {
	out := make([]string, 0, len(occurrences))
	for _, o := range occurrences {
		out = append(out, o.Date.Format(domain.DateFormat))
	}
	return out
}

func TestExpand_NotRecurring(t *testing.T) {
	base := baseRequest("2024-03-05")
	pattern := &domain.RecurrencePattern{
		Frequency:  domain.FrequencyWeekly,
		EndDate:    date("2024-04-30"),
		DaysOfWeek: []domain.Weekday{domain.Tuesday},
	}

	got, err := Expand(base, pattern, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, base.BaseOccurrence(), got[0])

	got, err = Expand(base, nil, true)
	require.NoError(t, err)
	assert.Equal(t, []domain.Occurrence{base.BaseOccurrence()}, got)
}

func TestExpand_Weekly(t *testing.T) {
	base := baseRequest("2024-01-01")
	pattern := &domain.RecurrencePattern{
		Frequency:  domain.FrequencyWeekly,
		EndDate:    date("2024-01-22"),
		DaysOfWeek: []domain.Weekday{domain.Monday, domain.Wednesday},
	}

	got, err := Expand(base, pattern, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-03",
		"2024-01-08", "2024-01-10",
		"2024-01-15", "2024-01-17",
		"2024-01-22",
	}, dates(got))

	for _, o := range got {
		assert.Equal(t, types.TimeString("10:00"), o.StartTime)
		assert.Equal(t, types.TimeString("11:00"), o.EndTime)
	}
}

func TestExpand_Biweekly(t *testing.T) {
	base := baseRequest("2024-01-01")
	pattern := &domain.RecurrencePattern{
		Frequency:  domain.FrequencyBiweekly,
		EndDate:    date("2024-01-22"),
		DaysOfWeek: []domain.Weekday{domain.Monday, domain.Wednesday},
	}

	got, err := Expand(base, pattern, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-03", "2024-01-15", "2024-01-17"}, dates(got))
}

func TestExpand_MonthlyClampsToMonthEnd(t *testing.T) {
	base := baseRequest("2024-01-31")
	pattern := &domain.RecurrencePattern{
		Frequency: domain.FrequencyMonthly,
		EndDate:   date("2024-04-15"),
		// не используется для monthly
		DaysOfWeek: []domain.Weekday{domain.Sunday},
	}

	got, err := Expand(base, pattern, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31"}, dates(got))
}

func TestExpand_MonthlyWithoutDaysOfWeek(t *testing.T) {
	base := baseRequest("2024-01-15")

	monthly, err := Expand(base, &domain.RecurrencePattern{
		Frequency: domain.FrequencyMonthly,
		EndDate:   date("2024-03-20"),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-15", "2024-02-15", "2024-03-15"}, dates(monthly))

	weekly, err := Expand(base, &domain.RecurrencePattern{
		Frequency: domain.FrequencyWeekly,
		EndDate:   date("2024-03-20"),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-15"}, dates(weekly))
}

func TestExpand_FallsBackToBase(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		pattern domain.RecurrencePattern
	}{
		{
			name: "end date before base date",
			base: "2024-05-10",
			pattern: domain.RecurrencePattern{
				Frequency:  domain.FrequencyWeekly,
				EndDate:    date("2024-05-01"),
				DaysOfWeek: []domain.Weekday{domain.Friday},
			},
		},
		{
			name: "no weekday selected",
			base: "2024-05-10",
			pattern: domain.RecurrencePattern{
				Frequency: domain.FrequencyWeekly,
				EndDate:   date("2024-06-10"),
			},
		},
		{
			name: "no selected weekday in range",
			base: "2024-05-06",
			pattern: domain.RecurrencePattern{
				Frequency:  domain.FrequencyWeekly,
				EndDate:    date("2024-05-08"),
				DaysOfWeek: []domain.Weekday{domain.Saturday},
			},
		},
		{
			name: "monthly end date before base date",
			base: "2024-05-10",
			pattern: domain.RecurrencePattern{
				Frequency: domain.FrequencyMonthly,
				EndDate:   date("2024-05-09"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := baseRequest(tt.base)
			pattern := tt.pattern

			got, err := Expand(base, &pattern, true)
			require.NoError(t, err)
			assert.Equal(t, []domain.Occurrence{base.BaseOccurrence()}, got)
		})
	}
}

func TestExpand_CustomPassthrough(t *testing.T) {
	slots := []domain.Occurrence{
		{Date: date("2024-06-12"), StartTime: "14:00", EndTime: "15:30"},
		{Date: date("2024-06-03"), StartTime: "09:00", EndTime: "10:00"},
		{Date: date("2024-06-12"), StartTime: "14:30", EndTime: "15:00"},
	}
	pattern := &domain.RecurrencePattern{Frequency: domain.FrequencyCustom, CustomTimeSlots: slots}

	// базовое занятие не участвует в custom
	got, err := Expand(domain.BookingRequest{}, pattern, true)
	require.NoError(t, err)
	assert.Equal(t, slots, got)

	got[0].StartTime = "08:00"
	assert.Equal(t, types.TimeString("14:00"), slots[0].StartTime)
}

func TestExpand_Deterministic(t *testing.T) {
	base := baseRequest("2024-02-01")
	pattern := &domain.RecurrencePattern{
		Frequency:  domain.FrequencyWeekly,
		EndDate:    date("2024-03-31"),
		DaysOfWeek: []domain.Weekday{domain.Saturday, domain.Thursday},
	}

	first, err := Expand(base, pattern, true)
	require.NoError(t, err)
	second, err := Expand(base, pattern, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.True(t, first[i-1].Date.Before(first[i].Date))
	}
}

func TestExpand_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		base      domain.BookingRequest
		pattern   *domain.RecurrencePattern
		recurring bool
		field     string
	}{
		{
			name:  "missing date",
			base:  domain.BookingRequest{StartTime: "10:00", EndTime: "11:00"},
			field: "date",
		},
		{
			name:  "malformed start time",
			base:  domain.BookingRequest{Date: date("2024-01-01"), StartTime: "10h", EndTime: "11:00"},
			field: "startTime",
		},
		{
			name:  "end before start",
			base:  domain.BookingRequest{Date: date("2024-01-01"), StartTime: "11:00", EndTime: "10:00"},
			field: "endTime",
		},
		{
			name:      "unknown frequency",
			base:      baseRequest("2024-01-01"),
			pattern:   &domain.RecurrencePattern{Frequency: "daily", EndDate: date("2024-02-01")},
			recurring: true,
			field:     "frequency",
		},
		{
			name:      "missing end date",
			base:      baseRequest("2024-01-01"),
			pattern:   &domain.RecurrencePattern{Frequency: domain.FrequencyWeekly, DaysOfWeek: []domain.Weekday{1}},
			recurring: true,
			field:     "endDate",
		},
		{
			name: "end date beyond horizon",
			base: baseRequest("2024-01-01"),
			pattern: &domain.RecurrencePattern{
				Frequency: domain.FrequencyMonthly,
				EndDate:   date("2025-06-01"),
			},
			recurring: true,
			field:     "endDate",
		},
		{
			name: "weekday out of range",
			base: baseRequest("2024-01-01"),
			pattern: &domain.RecurrencePattern{
				Frequency:  domain.FrequencyWeekly,
				EndDate:    date("2024-02-01"),
				DaysOfWeek: []domain.Weekday{7},
			},
			recurring: true,
			field:     "daysOfWeek",
		},
		{
			name:      "empty custom list",
			pattern:   &domain.RecurrencePattern{Frequency: domain.FrequencyCustom},
			recurring: true,
			field:     "customTimeSlots",
		},
		{
			name: "invalid custom slot",
			pattern: &domain.RecurrencePattern{
				Frequency: domain.FrequencyCustom,
				CustomTimeSlots: []domain.Occurrence{
					{Date: date("2024-01-02"), StartTime: "09:00", EndTime: "10:00"},
					{Date: date("2024-01-03"), StartTime: "10:00", EndTime: "10:00"},
				},
			},
			recurring: true,
			field:     "customTimeSlots[1].endTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.base, tt.pattern, tt.recurring)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}
