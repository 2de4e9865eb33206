package domain

import "github.com/Skymx82/autosoft-sub001/pkg/types"

// AvailabilitySlot is a point in time on a given date annotated with
// the instructors and vehicles that remain free at that point
type AvailabilitySlot struct {
	Time              types.TimeString
	AvailableTeachers int
	TeacherIDs        []int64
	AvailableVehicles int
	VehicleIDs        []int64
}

// IsClosed returns true if no instructor is free
func (s *AvailabilitySlot) IsClosed() bool {
	return s.AvailableTeachers <= 0
}

// HasTeacher returns true if the instructor is free in this slot
func (s *AvailabilitySlot) HasTeacher(instructorID int64) bool {
	for _, id := range s.TeacherIDs {
		if id == instructorID {
			return true
		}
	}
	return false
}

// HasVehicle returns true if the vehicle is free in this slot
func (s *AvailabilitySlot) HasVehicle(vehicleID int64) bool {
	for _, id := range s.VehicleIDs {
		if id == vehicleID {
			return true
		}
	}
	return false
}
