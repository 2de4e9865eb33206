package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// BookingStatus represents the status of a planning entry
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking is one persisted planning entry: a lesson, an exam or an instructor unavailability
type Booking struct {
	ID           int64
	SchoolID     int64
	BranchID     int64 // Бюро (агентство) автошколы
	BookingDate  time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	InstructorID int64
	StudentID    *int64 // Ученик или кандидат на экзамен
	VehicleID    *int64
	EventType    EventType
	Category     *LicenseCategory
	Comments     *string
	SeriesID     *uuid.UUID // Общий идентификатор занятий одной пакетной записи
	Status       BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its instructor and vehicle
func (b *Booking) IsActive() bool {
	return b.Status == StatusScheduled || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusScheduled
}

// DurationMinutes returns the length of the booking
func (b *Booking) DurationMinutes() int {
	return b.EndTime.Sub(b.StartTime)
}

// Covers returns true if the booking interval [start, end) contains t
func (b *Booking) Covers(t types.TimeString) bool {
	return !t.IsBefore(b.StartTime) && t.IsBefore(b.EndTime)
}

// Overlaps returns true if [start, end) intersects the booking interval.
// Adjacent intervals (one ends where the other starts) do not overlap.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}

// UsesVehicle returns true if the booking holds the given vehicle
func (b *Booking) UsesVehicle(vehicleID int64) bool {
	return b.VehicleID != nil && *b.VehicleID == vehicleID
}

// HasStudent returns true if the booking involves the given student
func (b *Booking) HasStudent(studentID int64) bool {
	return b.StudentID != nil && *b.StudentID == studentID
}

// BranchBookingsFilter фильтр для получения планинга бюро
type BranchBookingsFilter struct {
	SchoolID        int64      // Обязательный параметр
	BranchID        *int64     // Если nil - все бюро автошколы
	StartDate       *time.Time // Начало периода (включительно)
	EndDate         *time.Time // Конец периода (включительно)
	InstructorID    *int64
	VehicleID       *int64
	StudentID       *int64
	EventType       *EventType
	Status          *BookingStatus
	IncludeInactive bool // Включать отменённые и неявки
}

// BusyInterval is a time interval on a given date during which an instructor
// and optionally a vehicle are occupied
type BusyInterval struct {
	InstructorID int64
	VehicleID    *int64
	StartTime    types.TimeString
	EndTime      types.TimeString
}

// BusyIntervalsFromBookings keeps only active bookings
func BusyIntervalsFromBookings(bookings []*Booking) []BusyInterval {
	busy := make([]BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		busy = append(busy, BusyInterval{
			InstructorID: b.InstructorID,
			VehicleID:    b.VehicleID,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
		})
	}
	return busy
}

// Covers returns true if [start, end) contains t
func (i BusyInterval) Covers(t types.TimeString) bool {
	return !t.IsBefore(i.StartTime) && t.IsBefore(i.EndTime)
}
