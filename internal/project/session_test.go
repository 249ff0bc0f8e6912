package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestSaveAndLoadResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.boxpack.json")

	item := model.NewItem("Cube", 2, 2, 2, 1)
	settings := model.DefaultSettings()
	settings.AllowRotation = model.RotationAllAxes
	result := model.PackResult{
		Container: model.Dims(10, 10, 10),
		Settings:  settings,
		Containers: []model.ContainerResult{{
			Dimensions: model.Dims(10, 10, 10),
			Placements: []model.Placement{{
				Item:        item,
				Position:    model.Position{X: 1, Y: 2, Z: 3},
				Orientation: model.OrientDHW,
				Placed:      item.Dimensions,
			}},
		}},
		Outcomes: []model.Outcome{{Index: 0, Item: item, Status: model.StatusPlaced, Orientation: model.OrientDHW}},
	}

	if err := SaveResult(path, NewSessionFile("Job", []model.Item{item}, result)); err != nil {
		t.Fatalf("SaveResult failed: %v", err)
	}

	loaded, err := LoadResult(path)
	if err != nil {
		t.Fatalf("LoadResult failed: %v", err)
	}

	if loaded.Name != "Job" {
		t.Errorf("expected name Job, got %q", loaded.Name)
	}
	if loaded.SavedAt == "" {
		t.Error("expected SavedAt to be stamped")
	}
	if loaded.Container != model.Dims(10, 10, 10) {
		t.Errorf("expected container 10x10x10, got %v", loaded.Container)
	}
	if loaded.Settings.AllowRotation != model.RotationAllAxes {
		t.Errorf("expected allAxes, got %s", loaded.Settings.AllowRotation)
	}
	if loaded.Result == nil || len(loaded.Result.Containers) != 1 {
		t.Fatalf("expected result with one container, got %+v", loaded.Result)
	}
	p := loaded.Result.Containers[0].Placements[0]
	if p.Position != (model.Position{X: 1, Y: 2, Z: 3}) {
		t.Errorf("expected position (1,2,3), got %v", p.Position)
	}
	if p.Orientation != model.OrientDHW {
		t.Errorf("expected orientation DHW, got %s", p.Orientation)
	}
}

func TestLoadResultErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadResult(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadResult(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}

	noVersion := filepath.Join(dir, "noversion.json")
	if err := os.WriteFile(noVersion, []byte(`{"name":"x"}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadResult(noVersion); err == nil {
		t.Error("expected error for missing version")
	}
}
