package schedule

import (
	"testing"
	"time"

	"github.com/campus-hub/schedule-agent/internal/model"
)

var base = time.Date(2026, time.September, 7, 8, 0, 0, 0, time.UTC)

func event(id string, start time.Time, courseID string) model.Event {
	return model.Event{
		ID:            id,
		StartDateTime: start,
		EndDateTime:   start.Add(90 * time.Minute),
		Course:        model.Course{ID: courseID, Label: "course " + courseID},
	}
}

func TestMergeActiveEventsDedupAcrossPlannings(t *testing.T) {
	shared := event("42", base, "math")
	shared.Course.Label = "from P1"
	duplicate := event("42", base.Add(time.Hour), "math")
	duplicate.Course.Label = "from P2"

	s := &model.Schedule{Plannings: []model.Planning{
		{ID: "P1", Events: []model.Event{shared}},
		{ID: "P2", Events: []model.Event{duplicate, event("43", base.Add(2*time.Hour), "phys")}},
	}}

	merged := MergeActiveEvents(s, []string{"P1", "P2"})
	if len(merged) != 2 {
		t.Fatalf("expected 2 events after dedup, got %d", len(merged))
	}

	count := 0
	for _, e := range merged {
		if e.ID == "42" {
			count++
			if e.Course.Label != "from P1" {
				t.Fatalf("first-seen copy must win, got %q", e.Course.Label)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one event with id 42, got %d", count)
	}
}

func TestMergeActiveEventsSortedByStart(t *testing.T) {
	s := &model.Schedule{Plannings: []model.Planning{
		{ID: "P1", Events: []model.Event{
			event("3", base.Add(4*time.Hour), "a"),
			event("1", base, "a"),
			event("2", base.Add(2*time.Hour), "a"),
		}},
	}}

	merged := MergeActiveEvents(s, []string{"P1"})
	for i := 1; i < len(merged); i++ {
		if merged[i].StartDateTime.Before(merged[i-1].StartDateTime) {
			t.Fatalf("merged feed not ordered at index %d", i)
		}
	}
}

func TestMergeActiveEventsSortStability(t *testing.T) {
	// три события с одинаковым временем начала
	s := &model.Schedule{Plannings: []model.Planning{
		{ID: "P1", Events: []model.Event{
			event("a", base, "c1"),
			event("b", base, "c1"),
		}},
		{ID: "P2", Events: []model.Event{
			event("c", base, "c1"),
		}},
	}}

	merged := MergeActiveEvents(s, []string{"P1", "P2"})
	want := []string{"a", "b", "c"}
	if len(merged) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(merged))
	}
	for i, id := range want {
		if merged[i].ID != id {
			t.Fatalf("equal-start events out of accumulation order: position %d is %q, want %q", i, merged[i].ID, id)
		}
	}
}

func TestMergeActiveEventsInactivePlanningsExcluded(t *testing.T) {
	s := &model.Schedule{Plannings: []model.Planning{
		{ID: "P1", Events: []model.Event{event("1", base, "a")}},
		{ID: "P2", Events: []model.Event{event("2", base, "b")}},
	}}

	merged := MergeActiveEvents(s, []string{"P2"})
	if len(merged) != 1 || merged[0].ID != "2" {
		t.Fatalf("expected only events of P2, got %v", merged)
	}
}

func TestMergeActiveEventsEmptyInputs(t *testing.T) {
	if got := MergeActiveEvents(nil, []string{"P1"}); len(got) != 0 {
		t.Fatalf("nil schedule must yield empty feed, got %d events", len(got))
	}
	s := &model.Schedule{Plannings: []model.Planning{
		{ID: "P1", Events: []model.Event{event("1", base, "a")}},
	}}
	if got := MergeActiveEvents(s, nil); len(got) != 0 {
		t.Fatalf("no active plannings must yield empty feed, got %d events", len(got))
	}
}

func TestMergeActiveEventsLegacyEventID(t *testing.T) {
	legacy := model.Event{LegacyADEEventID: 42, StartDateTime: base}
	modern := event("42", base.Add(time.Hour), "a")

	s := &model.Schedule{Plannings: []model.Planning{
		{ID: "P1", Events: []model.Event{legacy}},
		{ID: "P2", Events: []model.Event{modern}},
	}}

	merged := MergeActiveEvents(s, []string{"P1", "P2"})
	if len(merged) != 1 {
		t.Fatalf("legacy numeric id must dedup against modern id: got %d events", len(merged))
	}
}

func TestMergeActiveEventsNoIdentityNeverDeduped(t *testing.T) {
	s := &model.Schedule{Plannings: []model.Planning{
		{ID: "P1", Events: []model.Event{
			{StartDateTime: base},
			{StartDateTime: base.Add(time.Hour)},
		}},
	}}

	merged := MergeActiveEvents(s, []string{"P1"})
	if len(merged) != 2 {
		t.Fatalf("events without identity must all survive, got %d", len(merged))
	}
}

func TestFilterHiddenCoursesRemovesOnlyMatching(t *testing.T) {
	events := []model.Event{
		event("1", base, "math"),
		event("2", base.Add(time.Hour), "phys"),
		event("3", base.Add(2*time.Hour), "math"),
		event("4", base.Add(3*time.Hour), "chem"),
	}

	visible := FilterHiddenCourses(events, []model.HiddenCourse{{ID: "math", Title: "Maths"}})
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible events, got %d", len(visible))
	}
	if visible[0].ID != "2" || visible[1].ID != "4" {
		t.Fatalf("retained events must keep order and identity, got %v, %v", visible[0].ID, visible[1].ID)
	}
}

func TestFilterHiddenCoursesNoMatchIsNoop(t *testing.T) {
	events := []model.Event{
		event("1", base, "math"),
		event("2", base.Add(time.Hour), "phys"),
	}

	visible := FilterHiddenCourses(events, []model.HiddenCourse{{ID: "bio"}})
	if len(visible) != len(events) {
		t.Fatalf("hiding an absent course must be a no-op, got %d events", len(visible))
	}
	for i := range events {
		if visible[i].ID != events[i].ID {
			t.Fatalf("order changed at %d", i)
		}
	}
}

func TestFilterHiddenCoursesLegacyCourseCode(t *testing.T) {
	e := event("1", base, "")
	e.Course = model.Course{Code: "MATH101", Label: "Maths"}

	visible := FilterHiddenCourses([]model.Event{e}, []model.HiddenCourse{{ID: "MATH101"}})
	if len(visible) != 0 {
		t.Fatalf("course code must act as identity for hiding, got %d events", len(visible))
	}
}

func TestFilterHiddenCoursesCourseWithoutIdentityKept(t *testing.T) {
	e := event("1", base, "")
	e.Course = model.Course{Label: "broken"}

	visible := FilterHiddenCourses([]model.Event{e}, []model.HiddenCourse{{ID: ""}})
	if len(visible) != 1 {
		t.Fatalf("event with unidentified course must stay visible")
	}
}
