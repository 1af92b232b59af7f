package export

import (
	"fmt"
	"os"
	"strings"

	ical "github.com/arran4/golang-ical"

	"github.com/campus-hub/schedule-agent/internal/model"
)

// BuildICS собирает iCalendar из видимой ленты событий, чтобы на
// расписание можно было подписаться из обычного календаря.
// События приходят уже отсортированными и отфильтрованными.
func BuildICS(events []model.Event) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//campus-hub//schedule-agent//EN")

	for i := range events {
		e := &events[i]

		uid := e.CanonicalID()
		if uid == "" {
			// событие без идентификатора всё равно выгружаем,
			// ключ строим из времени начала
			uid = fmt.Sprintf("noid-%d", e.StartDateTime.Unix())
		}

		ve := cal.AddEvent(uid + "@schedule-agent")
		ve.SetStartAt(e.StartDateTime)
		ve.SetEndAt(e.EndDateTime)
		ve.SetSummary(e.Course.Label)

		if len(e.Rooms) > 0 {
			labels := make([]string, 0, len(e.Rooms))
			for _, room := range e.Rooms {
				labels = append(labels, room.Label)
			}
			ve.SetLocation(strings.Join(labels, ", "))
		}

		if len(e.Teachers) > 0 {
			names := make([]string, 0, len(e.Teachers))
			for j := range e.Teachers {
				names = append(names, e.Teachers[j].DisplayName())
			}
			ve.SetDescription(strings.Join(names, ", "))
		}

		if e.Course.Online && e.Course.URL != "" {
			ve.SetURL(e.Course.URL)
		}
	}

	return cal.Serialize()
}

// WriteICS выгружает видимую ленту в файл
func WriteICS(path string, events []model.Event) error {
	payload := BuildICS(events)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		return fmt.Errorf("write ics export: %w", err)
	}
	return nil
}
