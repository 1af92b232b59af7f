package model

import "fmt"

// Normalize приводит идентификаторы расписания к каноническому виду:
// если новое поле id пустое, подставляем значение из legacy-поля.
// Выполняется один раз при приёме данных, чтобы дальше весь код
// работал с одним видом идентификаторов.
//
// Возвращает список описаний записей, у которых нет вообще никакого
// идентификатора (нарушение контракта со стороны API). Такие записи
// не отбрасываются, но исключаются из дедупликации и фильтрации.
func Normalize(s *Schedule) []string {
	if s == nil {
		return nil
	}

	var problems []string

	for i := range s.Plannings {
		p := &s.Plannings[i]
		p.ID = p.CanonicalID()
		if p.ID == "" {
			problems = append(problems, fmt.Sprintf("planning %q without id or code", p.Label))
		}

		for j := range p.Events {
			e := &p.Events[j]
			e.ID = e.CanonicalID()
			if e.ID == "" {
				problems = append(problems, fmt.Sprintf("event at %s in planning %q without id", e.StartDateTime, p.Label))
			}

			e.Course.ID = e.Course.CanonicalID()
			if e.Course.ID == "" {
				problems = append(problems, fmt.Sprintf("course %q without id or code", e.Course.Label))
			}
		}
	}

	return problems
}
