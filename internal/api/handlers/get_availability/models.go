package get_availability

import (
	"github.com/Skymx82/autosoft-sub001/internal/api/handlers"
	"github.com/Skymx82/autosoft-sub001/internal/domain"
	configModels "github.com/Skymx82/autosoft-sub001/internal/service/config/models"
	getAvailability "github.com/Skymx82/autosoft-sub001/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date        string                        `json:"date"`
	SchoolID    int64                         `json:"schoolId"`
	BranchID    int64                         `json:"branchId"`
	Config      *configModels.ConfigResponse  `json:"config"`
	Slots       []handlers.SlotResponse       `json:"slots"`
	Instructors []handlers.InstructorResponse `json:"instructors"`
	Vehicles    []handlers.VehicleResponse    `json:"vehicles"`
	Busy        []BusyIntervalResponse        `json:"busy"`
}

// BusyIntervalResponse занятый интервал инструктора (и машины)
type BusyIntervalResponse struct {
	InstructorID int64  `json:"instructorId"`
	VehicleID    *int64 `json:"vehicleId,omitempty"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// FromUseCaseResponse конвертирует use case response в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	busy := make([]BusyIntervalResponse, 0, len(resp.Busy))
	for _, b := range resp.Busy {
		busy = append(busy, BusyIntervalResponse{
			InstructorID: b.InstructorID,
			VehicleID:    b.VehicleID,
			StartTime:    b.StartTime.String(),
			EndTime:      b.EndTime.String(),
		})
	}

	return &AvailabilityResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		SchoolID:    resp.SchoolID,
		BranchID:    resp.BranchID,
		Config:      configModels.FromDomainConfig(resp.Config, configModels.LevelOf(resp.Config)),
		Slots:       handlers.FromDomainSlots(resp.Slots),
		Instructors: handlers.FromDomainInstructors(resp.Instructors),
		Vehicles:    handlers.FromDomainVehicles(resp.Vehicles),
		Busy:        busy,
	}
}
