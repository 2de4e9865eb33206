package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// Request модель запроса на создание одного занятия
type Request struct {
	Session  domain.SessionContext // Школа и бюро берутся из сессии
	Booking  domain.BookingRequest
	SeriesID *uuid.UUID // Общий идентификатор занятий одной пакетной записи

	IsMultipleSubmit    bool // Занятие входит в пакетную запись
	IsLastRecurringSlot bool // Последнее занятие пакетной записи
}

// Response модель ответа с созданным занятием
type Response struct {
	ID           int64
	SchoolID     int64
	BranchID     int64
	BookingDate  time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	InstructorID int64
	StudentID    *int64
	VehicleID    *int64
	EventType    domain.EventType
	Category     *domain.LicenseCategory
	Comments     *string
	SeriesID     *uuid.UUID
	Status       domain.BookingStatus

	IsMultipleSubmit    bool
	IsLastRecurringSlot bool
	RefreshView         bool // Клиенту пора перечитать планинг

	CreatedAt time.Time
	UpdatedAt time.Time
}
