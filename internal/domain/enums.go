package domain

import (
	"fmt"
	"strings"
	"time"
)

// EventType is the kind of planning entry
type EventType string

const (
	EventLesson         EventType = "lesson"
	EventUnavailability EventType = "unavailability"
	EventExam           EventType = "exam"
)

// ParseEventType validates a raw event type
func ParseEventType(s string) (EventType, error) {
	switch EventType(strings.ToLower(strings.TrimSpace(s))) {
	case EventLesson:
		return EventLesson, nil
	case EventUnavailability:
		return EventUnavailability, nil
	case EventExam:
		return EventExam, nil
	}
	return "", NewValidationError("eventType", fmt.Sprintf("unknown event type %q", s))
}

// RequiresStudent returns true for lessons and exams
func (e EventType) RequiresStudent() bool {
	return e == EventLesson || e == EventExam
}

// RequiresVehicle returns true for lessons and exams
func (e EventType) RequiresVehicle() bool {
	return e == EventLesson || e == EventExam
}

// Weekday is a day index, 0=Sunday..6=Saturday
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Valid reports whether the index is within 0..6
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

// WeekdayOf returns the weekday of a date
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// LicenseCategory is a driving license category
type LicenseCategory string

const (
	CategoryAM LicenseCategory = "AM"
	CategoryA1 LicenseCategory = "A1"
	CategoryA2 LicenseCategory = "A2"
	CategoryA  LicenseCategory = "A"
	CategoryB1 LicenseCategory = "B1"
	CategoryB  LicenseCategory = "B"
	CategoryBE LicenseCategory = "BE"
	CategoryC1 LicenseCategory = "C1"
	CategoryC  LicenseCategory = "C"
	CategoryCE LicenseCategory = "CE"
	CategoryD1 LicenseCategory = "D1"
	CategoryD  LicenseCategory = "D"
	CategoryDE LicenseCategory = "DE"
)

var licenseCategories = []LicenseCategory{
	CategoryAM, CategoryA1, CategoryA2, CategoryA,
	CategoryB1, CategoryB, CategoryBE,
	CategoryC1, CategoryC, CategoryCE,
	CategoryD1, CategoryD, CategoryDE,
}

// ParseLicenseCategory validates a raw category, case-insensitive
func ParseLicenseCategory(s string) (LicenseCategory, error) {
	normalized := LicenseCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range licenseCategories {
		if c == normalized {
			return c, nil
		}
	}
	return "", NewValidationError("category", fmt.Sprintf("unknown license category %q", s))
}

// Frequency is the recurrence frequency of a booking series
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyCustom   Frequency = "custom"
)

// ParseFrequency validates a raw frequency
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyBiweekly:
		return FrequencyBiweekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyCustom:
		return FrequencyCustom, nil
	}
	return "", NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", s))
}
