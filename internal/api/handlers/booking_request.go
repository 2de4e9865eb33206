package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// BookingSubmission тело запроса записи и предпросмотра серии
type BookingSubmission struct {
	Date            string          `json:"date"`      // "2025-10-15"
	StartTime       string          `json:"startTime"` // "10:00"
	EndTime         string          `json:"endTime"`
	InstructorID    int64           `json:"instructorId"`
	StudentID       *int64          `json:"studentId,omitempty"`
	VehicleID       *int64          `json:"vehicleId,omitempty"`
	EventType       string          `json:"eventType"`
	LicenseCategory *string         `json:"licenseCategory,omitempty"`
	Comments        *string         `json:"comments,omitempty"`
	IsRecurring     bool            `json:"isRecurring"`
	Recurrence      *RecurrenceBody `json:"recurrence,omitempty"`
}

// RecurrenceBody правило повторения
type RecurrenceBody struct {
	Frequency       string           `json:"frequency"`
	EndDate         string           `json:"endDate,omitempty"`
	DaysOfWeek      []int            `json:"daysOfWeek,omitempty"` // 0 = воскресенье
	CustomTimeSlots []OccurrenceBody `json:"customTimeSlots,omitempty"`
}

// OccurrenceBody одно занятие серии
type OccurrenceBody struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToDomain разбирает строки запроса
// Ошибки - *domain.ValidationError с именем поля
func (s *BookingSubmission) ToDomain() (domain.BookingRequest, *domain.RecurrencePattern, error) {
	var base domain.BookingRequest

	occurrence, err := OccurrenceBody{Date: s.Date, StartTime: s.StartTime, EndTime: s.EndTime}.toDomain("")
	if err != nil {
		return base, nil, err
	}
	base.Date = occurrence.Date
	base.StartTime = occurrence.StartTime
	base.EndTime = occurrence.EndTime

	base.EventType, err = domain.ParseEventType(s.EventType)
	if err != nil {
		return base, nil, err
	}

	base.InstructorID = s.InstructorID
	base.StudentID = s.StudentID
	base.VehicleID = s.VehicleID

	if s.LicenseCategory != nil && strings.TrimSpace(*s.LicenseCategory) != "" {
		category, err := domain.ParseLicenseCategory(*s.LicenseCategory)
		if err != nil {
			return base, nil, err
		}
		base.Category = &category
	}

	if s.Comments != nil {
		if utf8.RuneCountInString(*s.Comments) > domain.MaxCommentsLength {
			return base, nil, domain.NewValidationError("comments",
				fmt.Sprintf("must be at most %d characters", domain.MaxCommentsLength))
		}
		base.Comments = s.Comments
	}

	if !s.IsRecurring || s.Recurrence == nil {
		return base, nil, nil
	}

	pattern, err := s.Recurrence.toDomain()
	if err != nil {
		return base, nil, err
	}

	return base, pattern, nil
}

func (r *RecurrenceBody) toDomain() (*domain.RecurrencePattern, error) {
	frequency, err := domain.ParseFrequency(r.Frequency)
	if err != nil {
		return nil, err
	}

	pattern := &domain.RecurrencePattern{Frequency: frequency}

	if frequency != domain.FrequencyCustom && r.EndDate != "" {
		pattern.EndDate, err = domain.ParseDate("endDate", r.EndDate)
		if err != nil {
			return nil, err
		}
	}

	for _, d := range r.DaysOfWeek {
		pattern.DaysOfWeek = append(pattern.DaysOfWeek, domain.Weekday(d))
	}

	for i, slot := range r.CustomTimeSlots {
		occurrence, err := slot.toDomain(fmt.Sprintf("customTimeSlots[%d].", i))
		if err != nil {
			return nil, err
		}
		pattern.CustomTimeSlots = append(pattern.CustomTimeSlots, occurrence)
	}

	return pattern, nil
}

func (o OccurrenceBody) toDomain(prefix string) (domain.Occurrence, error) {
	var occurrence domain.Occurrence
	var err error

	if occurrence.Date, err = domain.ParseDate(prefix+"date", o.Date); err != nil {
		return occurrence, err
	}
	if occurrence.StartTime, err = domain.ParseTime(prefix+"startTime", o.StartTime); err != nil {
		return occurrence, err
	}
	if occurrence.EndTime, err = domain.ParseTime(prefix+"endTime", o.EndTime); err != nil {
		return occurrence, err
	}

	return occurrence, nil
}
