package preview_recurrence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/logger"
)

func TestExecute(t *testing.T) {
	uc := NewUseCase(logger.NewNop())
	base := domain.BookingRequest{
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		EventType: domain.EventLesson,
	}

	resp, err := uc.Execute(context.Background(), &Request{
		Base: base,
		Pattern: &domain.RecurrencePattern{
			Frequency: domain.FrequencyMonthly,
			EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		IsRecurring: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Occurrences, 3)

	_, err = uc.Execute(context.Background(), &Request{
		Base:        base,
		Pattern:     &domain.RecurrencePattern{Frequency: domain.FrequencyWeekly},
		IsRecurring: true,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
