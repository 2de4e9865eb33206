package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену занятия
type CancelBookingRequest struct {
	Session            domain.SessionContext `json:"-"`
	CancellationReason string                `json:"cancellationReason"`
}

// GetStudentBookingsRequest запрос на получение занятий ученика
type GetStudentBookingsRequest struct {
	Session   domain.SessionContext
	StudentID int64
	Status    *string
}

// GetBranchBookingsRequest запрос на получение планинга бюро
type GetBranchBookingsRequest struct {
	Session         domain.SessionContext
	SchoolID        int64
	BranchID        int64
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	InstructorID    *int64
	VehicleID       *int64
	StudentID       *int64
	EventType       *string
	Status          *string
	IncludeInactive bool // Включить отменённые занятия и неявки
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBranchBookingsRequest) ToDomainFilter() (domain.BranchBookingsFilter, error) {
	filter := domain.BranchBookingsFilter{
		SchoolID:        r.SchoolID,
		BranchID:        &r.BranchID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		InstructorID:    r.InstructorID,
		VehicleID:       r.VehicleID,
		StudentID:       r.StudentID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, domain.NewValidationError("to", "must not be before from")
	}

	if r.EventType != nil {
		eventType, err := domain.ParseEventType(*r.EventType)
		if err != nil {
			return filter, err
		}
		filter.EventType = &eventType
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Фильтр по неактивному статусу подразумевает неактивные занятия
		if status == domain.StatusCancelled || status == domain.StatusNoShow {
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными занятия
type BookingResponse struct {
	ID              int64      `json:"id"`
	SchoolID        int64      `json:"schoolId"`
	BranchID        int64      `json:"branchId"`
	BookingDate     string     `json:"bookingDate"` // "2025-10-15"
	StartTime       string     `json:"startTime"`   // "10:00"
	EndTime         string     `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	InstructorID    int64      `json:"instructorId"`
	StudentID       *int64     `json:"studentId,omitempty"`
	VehicleID       *int64     `json:"vehicleId,omitempty"`
	EventType       string     `json:"eventType"`
	LicenseCategory *string    `json:"licenseCategory,omitempty"`
	Comments        *string    `json:"comments,omitempty"`
	SeriesID        *uuid.UUID `json:"seriesId,omitempty"`
	Status          string     `json:"status"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком занятий
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		SchoolID:           b.SchoolID,
		BranchID:           b.BranchID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationMinutes:    b.DurationMinutes(),
		InstructorID:       b.InstructorID,
		StudentID:          b.StudentID,
		VehicleID:          b.VehicleID,
		EventType:          string(b.EventType),
		Comments:           b.Comments,
		SeriesID:           b.SeriesID,
		Status:             string(b.Status),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.Category != nil {
		category := string(*b.Category)
		resp.LicenseCategory = &category
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
