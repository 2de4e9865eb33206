package domain

import (
	"time"

	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// BookingRequest is the base of a booking submission, before recurrence expansion
type BookingRequest struct {
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	InstructorID int64
	StudentID    *int64 // Ученик (урок) или кандидат (экзамен)
	VehicleID    *int64 // Обязателен для урока и экзамена
	EventType    EventType
	Category     *LicenseCategory
	Comments     *string
}

// BaseOccurrence returns the single occurrence described by the request itself
func (r *BookingRequest) BaseOccurrence() Occurrence {
	return Occurrence{Date: r.Date, StartTime: r.StartTime, EndTime: r.EndTime}
}

// RecurrencePattern describes how a booking repeats
type RecurrencePattern struct {
	Frequency       Frequency
	EndDate         time.Time    // Включительно; не используется для custom
	DaysOfWeek      []Weekday    // Только для weekly и biweekly
	CustomTimeSlots []Occurrence // Только для custom
}

// HasDay reports whether the weekday is selected
func (p *RecurrencePattern) HasDay(day Weekday) bool {
	for _, d := range p.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// Occurrence is one concrete bookable date and time window
type Occurrence struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}
