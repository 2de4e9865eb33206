package domain

import "github.com/Skymx82/autosoft-sub001/pkg/types"

// Default configuration values
const (
	DefaultOpenTime               types.TimeString = "08:00"
	DefaultCloseTime              types.TimeString = "21:00"
	DefaultSlotGranularityMinutes                  = 30
	DefaultMaxBookingMinutes                       = 120
	DefaultAdvanceBookingDays                      = 0 // 0 = unlimited
	DefaultLessonDurationMinutes                   = 60
)

// DefaultDurationChoices predefined lesson durations offered to the user, ascending
var DefaultDurationChoices = []int{30, 45, 60, 90, 120}

// Business validation constants
const (
	MinSlotGranularityMinutes   = 0
	MaxSlotGranularityMinutes   = 240
	MinBookingMinutes           = 15
	MaxBookingMinutes           = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MaxRecurrenceDays           = 366
	MaxCommentsLength           = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, которые не занимают инструктора и машину
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// AllStatuses все допустимые статусы
var AllStatuses = []BookingStatus{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
