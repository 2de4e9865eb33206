package availability

import (
	"sort"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
	"github.com/Skymx82/autosoft-sub001/pkg/types"
)

// DurationOptions результат сужения длительности под выбранный слот
type DurationOptions struct {
	MaxMinutes int   // Максимальная длительность от выбранного слота
	Options    []int // Допустимые варианты, по возрастанию, никогда не пустой
	Selected   int   // Выбранная длительность после сужения
	Replaced   bool  // true, если выбранная длительность была заменена
}

// NarrowDuration ограничивает длительность занятия ближайшей границей занятости
//
// Граница - первый слот строго позже start, в котором свободных инструкторов меньше,
// чем в выбранном. Максимум = min(расстояние до границы, время до закрытия, ceiling).
// Пустой closeTime не ограничивает. current == 0 означает "длительность не выбрана".
func NarrowDuration(
	slots []domain.AvailabilitySlot,
	start types.TimeString,
	current int,
	ceiling int,
	closeTime types.TimeString,
	choices []int,
) DurationOptions {
	if ceiling <= 0 {
		ceiling = domain.DefaultMaxBookingMinutes
	}
	if len(choices) == 0 {
		choices = domain.DefaultDurationChoices
	}
	sorted := make([]int, len(choices))
	copy(sorted, choices)
	sort.Ints(sorted)

	maxMinutes := ceiling
	if boundary, ok := nextBoundary(slots, start); ok && boundary < maxMinutes {
		maxMinutes = boundary
	}
	if !closeTime.IsZero() {
		if untilClose := closeTime.Sub(start); untilClose < maxMinutes {
			maxMinutes = max(untilClose, 0)
		}
	}

	options := make([]int, 0, len(sorted))
	for _, d := range sorted {
		if d <= maxMinutes {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		options = append(options, sorted[0])
	}

	result := DurationOptions{
		MaxMinutes: maxMinutes,
		Options:    options,
		Selected:   current,
	}

	switch {
	case current <= 0:
		result.Selected = largestUpTo(options, domain.DefaultLessonDurationMinutes)
	case current > maxMinutes:
		result.Selected = options[len(options)-1]
		result.Replaced = result.Selected != current
	}

	return result
}

// nextBoundary возвращает расстояние в минутах до первого более загруженного слота
func nextBoundary(slots []domain.AvailabilitySlot, start types.TimeString) (int, bool) {
	selected, ok := SlotAt(slots, start)
	if !ok {
		return 0, false
	}

	later := make([]domain.AvailabilitySlot, 0, len(slots))
	for _, s := range slots {
		if s.Time.IsAfter(start) {
			later = append(later, s)
		}
	}
	sort.Slice(later, func(i, j int) bool {
		return later[i].Time.IsBefore(later[j].Time)
	})

	for _, s := range later {
		if s.AvailableTeachers < selected.AvailableTeachers {
			return s.Time.Sub(start), true
		}
	}

	return 0, false
}

// largestUpTo возвращает наибольший вариант <= limit или наименьший, если таких нет
func largestUpTo(options []int, limit int) int {
	best := options[0]
	for _, d := range options {
		if d <= limit {
			best = d
		}
	}
	return best
}
