package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

func TestNarrowDuration_BoundaryAt40Minutes(t *testing.T) {
	slots := []domain.AvailabilitySlot{
		{Time: "10:00", AvailableTeachers: 2},
		{Time: "10:40", AvailableTeachers: 1},
		{Time: "12:00", AvailableTeachers: 0},
	}

	got := NarrowDuration(slots, "10:00", 90, 120, "", nil)
	assert.Equal(t, 40, got.MaxMinutes)
	assert.Equal(t, []int{30}, got.Options)
	assert.Equal(t, 30, got.Selected)
	assert.True(t, got.Replaced)
}

func TestNarrowDuration(t *testing.T) {
	slots := []domain.AvailabilitySlot{
		{Time: "08:00", AvailableTeachers: 1},
		{Time: "09:00", AvailableTeachers: 3},
		{Time: "09:30", AvailableTeachers: 3},
		{Time: "10:00", AvailableTeachers: 4},
		{Time: "10:30", AvailableTeachers: 2},
		{Time: "11:00", AvailableTeachers: 2},
		{Time: "11:10", AvailableTeachers: 1},
	}

	tests := []struct {
		name         string
		start        types.TimeString
		current      int
		ceiling      int
		wantMax      int
		wantOptions  []int
		wantSelected int
	}{
		{
			name:         "boundary further than ceiling",
			start:        "08:00",
			current:      90,
			ceiling:      120,
			wantMax:      120,
			wantOptions:  []int{30, 45, 60, 90, 120},
			wantSelected: 90,
		},
		{
			name:         "equal counts are not a boundary",
			start:        "09:00",
			current:      60,
			ceiling:      120,
			wantMax:      90,
			wantOptions:  []int{30, 45, 60, 90},
			wantSelected: 60,
		},
		{
			name:         "unset duration takes largest up to an hour",
			start:        "09:00",
			ceiling:      120,
			wantMax:      90,
			wantOptions:  []int{30, 45, 60, 90},
			wantSelected: 60,
		},
		{
			name:         "boundary below smallest choice",
			start:        "11:00",
			current:      45,
			ceiling:      120,
			wantMax:      10,
			wantOptions:  []int{30},
			wantSelected: 30,
		},
		{
			name:         "ceiling caps distance",
			start:        "10:00",
			current:      120,
			ceiling:      45,
			wantMax:      30,
			wantOptions:  []int{30},
			wantSelected: 30,
		},
		{
			name:         "unknown start uses ceiling",
			start:        "13:00",
			current:      45,
			ceiling:      60,
			wantMax:      60,
			wantOptions:  []int{30, 45, 60},
			wantSelected: 45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NarrowDuration(slots, tt.start, tt.current, tt.ceiling, "", nil)
			assert.Equal(t, tt.wantMax, got.MaxMinutes)
			assert.Equal(t, tt.wantOptions, got.Options)
			assert.Equal(t, tt.wantSelected, got.Selected)
		})
	}
}

func TestNarrowDuration_CustomChoices(t *testing.T) {
	slots := []domain.AvailabilitySlot{{Time: "14:00", AvailableTeachers: 1}}

	got := NarrowDuration(slots, "14:00", 0, 0, "", []int{120, 20, 50})
	assert.Equal(t, domain.DefaultMaxBookingMinutes, got.MaxMinutes)
	assert.Equal(t, []int{20, 50, 120}, got.Options)
	assert.Equal(t, 50, got.Selected)
	assert.False(t, got.Replaced)
}

func TestNarrowDuration_CappedByClosingTime(t *testing.T) {
	config := domain.DefaultBranchScheduleConfig(1, 2)
	slots := []domain.AvailabilitySlot{
		{Time: "20:00", AvailableTeachers: 1},
		{Time: "20:30", AvailableTeachers: 1},
	}

	tests := []struct {
		name         string
		start        types.TimeString
		current      int
		wantMax      int
		wantOptions  []int
		wantSelected int
	}{
		{name: "half an hour before close", start: "20:30", current: 90, wantMax: 30, wantOptions: []int{30}, wantSelected: 30},
		{name: "hour before close", start: "20:00", current: 0, wantMax: 60, wantOptions: []int{30, 45, 60}, wantSelected: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NarrowDuration(slots, tt.start, tt.current, config.MaxBookingMinutes, config.CloseTime, config.DurationChoices)
			assert.Equal(t, tt.wantMax, got.MaxMinutes)
			assert.Equal(t, tt.wantOptions, got.Options)
			assert.Equal(t, tt.wantSelected, got.Selected)
			for _, d := range got.Options {
				end, err := tt.start.AddMinutes(d)
				assert.NoError(t, err)
				assert.False(t, end.IsAfter(config.CloseTime), "option %d ends after close", d)
			}
		})
	}
}
