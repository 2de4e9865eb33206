package availability

import (
	"fmt"
	"sort"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// BuildSlots вычисляет доступность инструкторов и машин на один день
//
// Кандидаты в слоты: время открытия, начала всех занятий внутри окна работы и,
// если SlotGranularityMinutes > 0, сетка с этим шагом от открытия до закрытия.
// Инструктор (машина) занят в слоте T, если у него есть активное занятие с start <= T < end.
func BuildSlots(
	config *domain.BranchScheduleConfig,
	instructors []*domain.Instructor,
	vehicles []*domain.Vehicle,
	busy []domain.BusyInterval,
) ([]domain.AvailabilitySlot, error) {
	candidates, err := candidateTimes(config, busy)
	if err != nil {
		return nil, err
	}

	allTeachers := instructorIDs(instructors)
	allVehicles := vehicleIDs(vehicles)

	slots := make([]domain.AvailabilitySlot, 0, len(candidates))
	for _, t := range candidates {
		busyTeachers, busyVehicles := busyAt(t, busy)

		freeTeachers := complement(allTeachers, busyTeachers)
		freeVehicles := complement(allVehicles, busyVehicles)

		slots = append(slots, domain.AvailabilitySlot{
			Time:              t,
			AvailableTeachers: len(freeTeachers),
			TeacherIDs:        freeTeachers,
			AvailableVehicles: len(freeVehicles),
			VehicleIDs:        freeVehicles,
		})
	}

	return slots, nil
}

// SlotAt возвращает слот, начинающийся ровно в t
func SlotAt(slots []domain.AvailabilitySlot, t types.TimeString) (*domain.AvailabilitySlot, bool) {
	for i := range slots {
		if slots[i].Time.Equal(t) {
			return &slots[i], true
		}
	}
	return nil, false
}

// candidateTimes возвращает отсортированные уникальные моменты внутри [open, close)
func candidateTimes(config *domain.BranchScheduleConfig, busy []domain.BusyInterval) ([]types.TimeString, error) {
	openTime, closeTime := config.OpenTime, config.CloseTime
	if err := openTime.Validate(); err != nil {
		return nil, fmt.Errorf("open time: %w", err)
	}
	if err := closeTime.Validate(); err != nil {
		return nil, fmt.Errorf("close time: %w", err)
	}
	if !openTime.IsBefore(closeTime) {
		return []types.TimeString{}, nil
	}

	seen := make(map[int]types.TimeString)
	add := func(t types.TimeString) {
		if t.IsBefore(openTime) || !t.IsBefore(closeTime) {
			return
		}
		seen[t.Minutes()] = t
	}

	add(openTime)

	for _, interval := range busy {
		add(interval.StartTime)
	}

	if step := config.SlotGranularityMinutes; step > 0 {
		for m := openTime.Minutes() + step; m < closeTime.Minutes(); m += step {
			t, err := types.NewTimeStringFromMinutes(m)
			if err != nil {
				return nil, err
			}
			add(t)
		}
	}

	times := make([]types.TimeString, 0, len(seen))
	for _, t := range seen {
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool {
		return times[i].IsBefore(times[j])
	})

	return times, nil
}

func busyAt(t types.TimeString, busy []domain.BusyInterval) (map[int64]struct{}, map[int64]struct{}) {
	teachers := make(map[int64]struct{})
	vehicles := make(map[int64]struct{})

	for _, interval := range busy {
		if !interval.Covers(t) {
			continue
		}
		teachers[interval.InstructorID] = struct{}{}
		if interval.VehicleID != nil {
			vehicles[*interval.VehicleID] = struct{}{}
		}
	}

	return teachers, vehicles
}

// complement возвращает id из all, которых нет в busy, по возрастанию
func complement(all []int64, busy map[int64]struct{}) []int64 {
	free := make([]int64, 0, len(all))
	for _, id := range all {
		if _, ok := busy[id]; !ok {
			free = append(free, id)
		}
	}
	return free
}

func instructorIDs(instructors []*domain.Instructor) []int64 {
	ids := make([]int64, 0, len(instructors))
	for _, i := range instructors {
		ids = append(ids, i.ID)
	}
	return sortedUnique(ids)
}

func vehicleIDs(vehicles []*domain.Vehicle) []int64 {
	ids := make([]int64, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
	}
	return sortedUnique(ids)
}

func sortedUnique(ids []int64) []int64 {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := ids[:0]
	for _, id := range ids {
		if len(out) > 0 && out[len(out)-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}
