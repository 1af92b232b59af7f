package schedule

import (
	"sort"

	"github.com/campus-hub/schedule-agent/internal/model"
)

// MergeActiveEvents собирает события всех активных planning'ов в одну
// ленту: дедупликация по каноническому идентификатору события
// (первое вхождение выигрывает, повторы из других planning'ов молча
// отбрасываются) и устойчивая сортировка по времени начала.
//
// События без идентификатора в дедупликации не участвуют и попадают
// в ленту как есть. Пустое расписание даёт пустую ленту.
func MergeActiveEvents(s *model.Schedule, activeIDs []string) []model.Event {
	merged := make([]model.Event, 0)
	if s.IsEmpty() || len(activeIDs) == 0 {
		return merged
	}

	active := make(map[string]struct{}, len(activeIDs))
	for _, id := range activeIDs {
		if id != "" {
			active[id] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	for i := range s.Plannings {
		p := &s.Plannings[i]
		id := p.CanonicalID()
		if id == "" {
			// planning без идентификатора невозможно активировать
			continue
		}
		if _, ok := active[id]; !ok {
			continue
		}
		for _, e := range p.Events {
			eventID := e.CanonicalID()
			if eventID != "" {
				if _, dup := seen[eventID]; dup {
					continue
				}
				seen[eventID] = struct{}{}
			}
			merged = append(merged, e)
		}
	}

	// Устойчивая сортировка: события с одинаковым временем начала
	// сохраняют порядок накопления
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartDateTime.Before(merged[j].StartDateTime)
	})

	return merged
}

// FilterHiddenCourses убирает из ленты события скрытых пользователем
// курсов. Порядок и состав остальных событий не меняется. Событие,
// у курса которого нет идентификатора, скрыть невозможно.
func FilterHiddenCourses(events []model.Event, hidden []model.HiddenCourse) []model.Event {
	visible := make([]model.Event, 0, len(events))
	if len(hidden) == 0 {
		return append(visible, events...)
	}

	hiddenIDs := make(map[string]struct{}, len(hidden))
	for _, h := range hidden {
		if h.ID != "" {
			hiddenIDs[h.ID] = struct{}{}
		}
	}

	for _, e := range events {
		courseID := e.Course.CanonicalID()
		if courseID != "" {
			if _, ok := hiddenIDs[courseID]; ok {
				continue
			}
		}
		visible = append(visible, e)
	}
	return visible
}
