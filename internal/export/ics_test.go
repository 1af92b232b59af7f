package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/campus-hub/schedule-agent/internal/model"
)

func testEvents() []model.Event {
	start := time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)
	return []model.Event{
		{
			ID:            "1",
			StartDateTime: start,
			EndDateTime:   start.Add(time.Hour),
			Course:        model.Course{ID: "math", Label: "Maths"},
			Rooms:         []model.Room{{ID: "r1", Label: "Amphi A"}},
			Teachers:      []model.EventTeacher{{ID: "t1", FirstName: "Marie", LastName: "Curie"}},
		},
		{
			ID:            "2",
			StartDateTime: start.Add(2 * time.Hour),
			EndDateTime:   start.Add(3 * time.Hour),
			Course:        model.Course{ID: "phys", Label: "Physics", Online: true, URL: "https://example.edu/phys"},
		},
	}
}

func TestBuildICS(t *testing.T) {
	payload := BuildICS(testEvents())

	if !strings.Contains(payload, "BEGIN:VCALENDAR") {
		t.Fatalf("missing calendar envelope")
	}
	if got := strings.Count(payload, "BEGIN:VEVENT"); got != 2 {
		t.Fatalf("expected 2 VEVENTs, got %d", got)
	}
	if !strings.Contains(payload, "SUMMARY:Maths") {
		t.Fatalf("course label must become the summary")
	}
	if !strings.Contains(payload, "LOCATION:Amphi A") {
		t.Fatalf("room label must become the location")
	}
	if !strings.Contains(payload, "1@schedule-agent") {
		t.Fatalf("event id must seed the UID")
	}
}

func TestBuildICSEventWithoutIdentity(t *testing.T) {
	events := []model.Event{{
		StartDateTime: time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC),
		EndDateTime:   time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
		Course:        model.Course{Label: "Unknown"},
	}}

	payload := BuildICS(events)
	if !strings.Contains(payload, "noid-") {
		t.Fatalf("event without identity must still be exported")
	}
}

func TestWriteICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.ics")

	if err := WriteICS(path, testEvents()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if !strings.Contains(string(data), "END:VCALENDAR") {
		t.Fatalf("exported file incomplete")
	}
}
