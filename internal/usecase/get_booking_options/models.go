package get_booking_options

import (
	"time"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// Request модель запроса вариантов для формы записи
type Request struct {
	Session         domain.SessionContext
	SchoolID        int64
	BranchID        int64
	Date            time.Time
	StartTime       *types.TimeString // nil - время ещё не выбрано
	DurationMinutes int               // 0 - длительность не выбрана
	InstructorID    *int64
	VehicleID       *int64
	Category        *domain.LicenseCategory
	StudentID       *int64 // Категория берётся у ученика, если не указана
}

// Response модель ответа с суженными вариантами
type Response struct {
	Date      time.Time
	StartTime *types.TimeString
	Slot      *domain.AvailabilitySlot
	Category  *domain.LicenseCategory

	MaxDurationMinutes int
	DurationOptions    []int
	DurationMinutes    int
	DurationReplaced   bool

	Instructors          []*domain.Instructor
	SelectedInstructorID *int64
	InstructorCleared    bool

	Vehicles          []*domain.Vehicle
	SelectedVehicleID *int64
	VehicleCleared    bool
}
