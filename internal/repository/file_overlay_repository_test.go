package repository

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/campus-hub/schedule-agent/internal/model"
	"github.com/campus-hub/schedule-agent/internal/store"
)

func testState() store.State {
	return store.State{
		Schedule: &model.Schedule{
			Plannings: []model.Planning{
				{
					ID:      "P1",
					Label:   "Licence 1",
					Default: true,
					Events: []model.Event{
						{
							ID:            "1",
							StartDateTime: time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC),
							EndDateTime:   time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
							Course:        model.Course{ID: "math", Label: "Maths"},
						},
					},
				},
			},
		},
		ActivePlanningIDs: []string{"P1"},
		HiddenCourseList:  []model.HiddenCourse{{ID: "chem", Title: "Chemistry"}},
	}
}

func TestFileOverlayRepositoryRoundTrip(t *testing.T) {
	repo := NewFileOverlayRepository(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	state := testState()
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected a snapshot, got nil")
	}
	if !reflect.DeepEqual(*loaded, state) {
		t.Fatalf("restored state differs:\nwant %+v\ngot  %+v", state, *loaded)
	}
}

func TestFileOverlayRepositoryMissingSnapshot(t *testing.T) {
	repo := NewFileOverlayRepository(t.TempDir(), zap.NewNop())

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("missing snapshot must not be an error, got %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected nil snapshot, got %+v", loaded)
	}
}

func TestFileOverlayRepositoryCorruptedSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileOverlayRepository(dir, zap.NewNop())
	ctx := context.Background()

	if err := repo.Save(ctx, testState()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, overlayKey), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt snapshot: %v", err)
	}

	if _, err := repo.Load(ctx); err == nil {
		t.Fatalf("unparseable snapshot must surface an error")
	}
}

func TestFileOverlayRepositorySaveOverwrites(t *testing.T) {
	repo := NewFileOverlayRepository(t.TempDir(), zap.NewNop())
	ctx := context.Background()

	first := testState()
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := first
	second.ActivePlanningIDs = []string{}
	second.HiddenCourseList = []model.HiddenCourse{}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.ActivePlanningIDs) != 0 || len(loaded.HiddenCourseList) != 0 {
		t.Fatalf("save must replace the previous snapshot, got %+v", loaded)
	}
}
