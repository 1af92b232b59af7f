package schedule

import "github.com/campus-hub/schedule-agent/internal/model"

// SelectActivePlannings решает, какие planning'и считаются активными
// после загрузки нового расписания.
//
// Правила:
//  1. Из прежнего выбора оставляем только те идентификаторы, которые
//     ещё существуют в новом расписании (порядок прежнего выбора сохраняется).
//  2. Если прежний выбор был пуст или ничего из него не выжило —
//     включаем все planning'и с флагом default в порядке расписания.
//  3. Иначе активен ровно выживший выбор пользователя; новые planning'и
//     автоматически не добавляются.
//
// Расписание без default-planning'ов при пустом прежнем выборе даёт
// пустой результат — это допустимое состояние, а не ошибка.
func SelectActivePlannings(s *model.Schedule, previous []string) []string {
	if s.IsEmpty() {
		return []string{}
	}

	present := make(map[string]struct{}, len(s.Plannings))
	for i := range s.Plannings {
		if id := s.Plannings[i].CanonicalID(); id != "" {
			present[id] = struct{}{}
		}
	}

	survivors := make([]string, 0, len(previous))
	for _, id := range previous {
		if _, ok := present[id]; ok {
			survivors = append(survivors, id)
		}
	}

	if len(previous) == 0 || len(survivors) == 0 {
		return defaultPlanningIDs(s)
	}
	return survivors
}

// defaultPlanningIDs возвращает идентификаторы default-planning'ов
// в порядке их следования в расписании
func defaultPlanningIDs(s *model.Schedule) []string {
	ids := make([]string, 0, len(s.Plannings))
	for i := range s.Plannings {
		p := &s.Plannings[i]
		if !p.Default {
			continue
		}
		if id := p.CanonicalID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
