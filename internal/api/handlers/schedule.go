package handlers

import (
	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// OccurrenceResponse одно занятие серии
type OccurrenceResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SlotResponse доступность на момент времени
type SlotResponse struct {
	Time              string  `json:"time"`
	AvailableTeachers int     `json:"availableTeachers"`
	TeacherIDs        []int64 `json:"teacherIds"`
	AvailableVehicles int     `json:"availableVehicles"`
	VehicleIDs        []int64 `json:"vehicleIds"`
}

// InstructorResponse инструктор бюро
type InstructorResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// VehicleResponse машина бюро
type VehicleResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	LicensePlate      string   `json:"licensePlate"`
	LicenseCategories []string `json:"licenseCategories"`
}

func FromDomainOccurrences(occurrences []domain.Occurrence) []OccurrenceResponse {
	out := make([]OccurrenceResponse, 0, len(occurrences))
	for _, o := range occurrences {
		out = append(out, OccurrenceResponse{
			Date:      o.Date.Format(domain.DateFormat),
			StartTime: o.StartTime.String(),
			EndTime:   o.EndTime.String(),
		})
	}
	return out
}

func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	if s == nil {
		return nil
	}
	resp := &SlotResponse{
		Time:              s.Time.String(),
		AvailableTeachers: s.AvailableTeachers,
		TeacherIDs:        s.TeacherIDs,
		AvailableVehicles: s.AvailableVehicles,
		VehicleIDs:        s.VehicleIDs,
	}
	if resp.TeacherIDs == nil {
		resp.TeacherIDs = []int64{}
	}
	if resp.VehicleIDs == nil {
		resp.VehicleIDs = []int64{}
	}
	return resp
}

func FromDomainSlots(slots []domain.AvailabilitySlot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, *FromDomainSlot(&slots[i]))
	}
	return out
}

func FromDomainInstructors(instructors []*domain.Instructor) []InstructorResponse {
	out := make([]InstructorResponse, 0, len(instructors))
	for _, i := range instructors {
		out = append(out, InstructorResponse{ID: i.ID, FullName: i.FullName()})
	}
	return out
}

func FromDomainVehicles(vehicles []*domain.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		categories := make([]string, 0, len(v.LicenseCategories))
		for _, c := range v.LicenseCategories {
			categories = append(categories, string(c))
		}
		out = append(out, VehicleResponse{
			ID:                v.ID,
			Name:              v.Name,
			LicensePlate:      v.LicensePlate,
			LicenseCategories: categories,
		})
	}
	return out
}
