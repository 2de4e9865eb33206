package availability

import "github.com/Skymx82/autosoft-sub001/internal/domain"

// InstructorSelection инструкторы, которых можно предложить для выбранного слота
type InstructorSelection struct {
	Instructors []*domain.Instructor
	SelectedID  *int64
	Cleared     bool // Выбранный ранее инструктор занят и выбор сброшен
}

// FilterInstructors оставляет инструкторов из TeacherIDs слота
// Без слота (время не выбрано) возвращается весь состав.
func FilterInstructors(roster []*domain.Instructor, slot *domain.AvailabilitySlot, selectedID *int64) InstructorSelection {
	offered := make([]*domain.Instructor, 0, len(roster))
	for _, instructor := range roster {
		if slot == nil || slot.HasTeacher(instructor.ID) {
			offered = append(offered, instructor)
		}
	}

	result := InstructorSelection{Instructors: offered, SelectedID: selectedID}
	if selectedID != nil && !containsInstructor(offered, *selectedID) {
		result.SelectedID = nil
		result.Cleared = true
	}

	return result
}

// VehicleSelection машины, которые можно предложить для занятия
type VehicleSelection struct {
	Vehicles   []*domain.Vehicle
	SelectedID *int64
	Cleared    bool
}

// FilterVehicles оставляет машины, поддерживающие категорию и свободные в слоте
// category == nil отключает фильтр по категории, slot == nil - фильтр по занятости.
func FilterVehicles(
	vehicles []*domain.Vehicle,
	category *domain.LicenseCategory,
	slot *domain.AvailabilitySlot,
	selectedID *int64,
) VehicleSelection {
	offered := make([]*domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if category != nil && !v.Supports(*category) {
			continue
		}
		if slot != nil && !slot.HasVehicle(v.ID) {
			continue
		}
		offered = append(offered, v)
	}

	result := VehicleSelection{Vehicles: offered, SelectedID: selectedID}
	if selectedID != nil && !containsVehicle(offered, *selectedID) {
		result.SelectedID = nil
		result.Cleared = true
	}

	return result
}

func containsInstructor(list []*domain.Instructor, id int64) bool {
	for _, i := range list {
		if i.ID == id {
			return true
		}
	}
	return false
}

func containsVehicle(list []*domain.Vehicle, id int64) bool {
	for _, v := range list {
		if v.ID == id {
			return true
		}
	}
	return false
}
