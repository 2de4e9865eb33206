package recurrence

import (
	"fmt"
	"time"

	"github.com/Skymx82/autosoft-sub001/internal/domain"
)

// Expand разворачивает базовый запрос и правило повторения в список конкретных занятий
//
//   - без повторения (или pattern == nil) возвращает одно базовое занятие;
//   - custom возвращает CustomTimeSlots как есть, в исходном порядке;
//   - weekly/biweekly перебирает дни от базовой даты до EndDate включительно
//     и оставляет дни недели из DaysOfWeek (biweekly - только чётные 7-дневные периоды);
//   - monthly сдвигает базовую дату на целое число месяцев, день месяца обрезается
//     до последнего дня короткого месяца. DaysOfWeek для monthly не учитывается:
//     пустой список не сводит серию к одному занятию.
//
// Для периодических правил результат никогда не бывает пустым: если ни одна дата
// не подошла, возвращается базовое занятие. Результат отсортирован по дате.
func Expand(base domain.BookingRequest, pattern *domain.RecurrencePattern, isRecurring bool) ([]domain.Occurrence, error) {
	if !isRecurring || pattern == nil {
		if err := validateBase(base); err != nil {
			return nil, err
		}
		return []domain.Occurrence{base.BaseOccurrence()}, nil
	}

	if pattern.Frequency == domain.FrequencyCustom {
		return expandCustom(pattern.CustomTimeSlots)
	}

	if !isPeriodic(pattern.Frequency) {
		return nil, domain.NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", pattern.Frequency))
	}
	if err := validateBase(base); err != nil {
		return nil, err
	}
	if err := validatePeriodic(base, pattern); err != nil {
		return nil, err
	}

	var occurrences []domain.Occurrence
	switch pattern.Frequency {
	case domain.FrequencyWeekly:
		occurrences = expandWeekly(base, pattern, 1)
	case domain.FrequencyBiweekly:
		occurrences = expandWeekly(base, pattern, 2)
	case domain.FrequencyMonthly:
		occurrences = expandMonthly(base, pattern)
	}

	if len(occurrences) == 0 {
		return []domain.Occurrence{base.BaseOccurrence()}, nil
	}
	return occurrences, nil
}

// expandWeekly перебирает дни по одному: в одной неделе может быть несколько выбранных дней
func expandWeekly(base domain.BookingRequest, pattern *domain.RecurrencePattern, everyNWeeks int) []domain.Occurrence {
	start := dateOnly(base.Date)
	end := dateOnly(pattern.EndDate)

	if end.Before(start) || len(pattern.DaysOfWeek) == 0 {
		return nil
	}

	occurrences := make([]domain.Occurrence, 0)
	offset := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		period := offset / 7
		offset++

		if period%everyNWeeks != 0 {
			continue
		}
		if !pattern.HasDay(domain.WeekdayOf(day)) {
			continue
		}

		occurrences = append(occurrences, domain.Occurrence{
			Date:      day,
			StartTime: base.StartTime,
			EndTime:   base.EndTime,
		})
	}

	return occurrences
}

func expandMonthly(base domain.BookingRequest, pattern *domain.RecurrencePattern) []domain.Occurrence {
	start := dateOnly(base.Date)
	end := dateOnly(pattern.EndDate)

	if end.Before(start) {
		return nil
	}

	occurrences := make([]domain.Occurrence, 0)
	for step := 0; ; step++ {
		day := addMonthsClamped(start, step)
		if day.After(end) {
			break
		}
		occurrences = append(occurrences, domain.Occurrence{
			Date:      day,
			StartTime: base.StartTime,
			EndTime:   base.EndTime,
		})
	}

	return occurrences
}

// expandCustom возвращает слоты без сортировки и без проверки пересечений между ними
func expandCustom(slots []domain.Occurrence) ([]domain.Occurrence, error) {
	if len(slots) == 0 {
		return nil, domain.NewValidationError("customTimeSlots", "at least one slot is required")
	}

	for i, slot := range slots {
		if err := validateOccurrence(fmt.Sprintf("customTimeSlots[%d].", i), slot); err != nil {
			return nil, err
		}
	}

	occurrences := make([]domain.Occurrence, len(slots))
	copy(occurrences, slots)
	return occurrences, nil
}

func isPeriodic(f domain.Frequency) bool {
	return f == domain.FrequencyWeekly || f == domain.FrequencyBiweekly || f == domain.FrequencyMonthly
}

// addMonthsClamped сохраняет день месяца базовой даты; 31 января + 1 месяц = 29 февраля (високосный год)
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())

	lastDay := daysInMonth(firstOfTarget)
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
