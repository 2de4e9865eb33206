package get_booking_options

import (
	"net/http"

	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	getBookingOptions "github.com/Skymx82/autosoft-sub001/internal/usecase/get_booking_options"
	"github.com/Skymx82/autosoft-sub001/pkg/ptr"
)

// BookingOptionsResponse HTTP response model
type BookingOptionsResponse struct {
	Date      string                 `json:"date"`
	StartTime *string                `json:"startTime,omitempty"`
	Slot      *handlers.SlotResponse `json:"slot,omitempty"`
	Category  *string                `json:"category,omitempty"`

	MaxDurationMinutes int   `json:"maxDurationMinutes"`
	DurationOptions    []int `json:"durationOptions"`
	DurationMinutes    int   `json:"durationMinutes"`
	DurationReplaced   bool  `json:"durationReplaced"`

	Instructors          []handlers.InstructorResponse `json:"instructors"`
	SelectedInstructorID *int64                        `json:"selectedInstructorId,omitempty"`
	InstructorCleared    bool                          `json:"instructorCleared"`

	Vehicles          []handlers.VehicleResponse `json:"vehicles"`
	SelectedVehicleID *int64                     `json:"selectedVehicleId,omitempty"`
	VehicleCleared    bool                       `json:"vehicleCleared"`
}

// parseRequest разбирает путь и query параметры
func parseRequest(r *http.Request, session domain.SessionContext) (*getBookingOptions.Request, error) {
	req := &getBookingOptions.Request{Session: session}

	var err error
	if req.SchoolID, req.BranchID, err = handlers.PathBranch(r); err != nil {
		return nil, err
	}
	if req.Date, err = handlers.RequiredQueryDate(r, "date"); err != nil {
		return nil, err
	}

	if raw := handlers.QueryString(r, "startTime"); raw != nil {
		start, err := domain.ParseTime("startTime", *raw)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	duration, err := handlers.QueryInt64(r, "durationMinutes")
	if err != nil {
		return nil, err
	}
	req.DurationMinutes = int(ptr.Value(duration))

	if req.InstructorID, err = handlers.QueryInt64(r, "instructorId"); err != nil {
		return nil, err
	}
	if req.VehicleID, err = handlers.QueryInt64(r, "vehicleId"); err != nil {
		return nil, err
	}
	if req.StudentID, err = handlers.QueryInt64(r, "studentId"); err != nil {
		return nil, err
	}

	if raw := handlers.QueryString(r, "category"); raw != nil {
		category, err := domain.ParseLicenseCategory(*raw)
		if err != nil {
			return nil, err
		}
		req.Category = &category
	}

	return req, nil
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *getBookingOptions.Response) *BookingOptionsResponse {
	out := &BookingOptionsResponse{
		Date:                 resp.Date.Format(domain.DateFormat),
		Slot:                 handlers.FromDomainSlot(resp.Slot),
		MaxDurationMinutes:   resp.MaxDurationMinutes,
		DurationOptions:      resp.DurationOptions,
		DurationMinutes:      resp.DurationMinutes,
		DurationReplaced:     resp.DurationReplaced,
		Instructors:          handlers.FromDomainInstructors(resp.Instructors),
		SelectedInstructorID: resp.SelectedInstructorID,
		InstructorCleared:    resp.InstructorCleared,
		Vehicles:             handlers.FromDomainVehicles(resp.Vehicles),
		SelectedVehicleID:    resp.SelectedVehicleID,
		VehicleCleared:       resp.VehicleCleared,
	}

	if resp.StartTime != nil {
		out.StartTime = ptr.Ptr(resp.StartTime.String())
	}
	if resp.Category != nil {
		out.Category = ptr.Ptr(string(*resp.Category))
	}
	if out.DurationOptions == nil {
		out.DurationOptions = []int{}
	}

	return out
}
