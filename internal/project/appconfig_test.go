package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultContainer = model.Dims(589, 239, 235)
	cfg.DefaultAllowRotation = model.RotationAllAxes
	cfg.DefaultAlgorithm = model.AlgorithmGenetic
	cfg.RecentSessions = []string{"/tmp/a.boxpack.json", "/tmp/b.boxpack.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultContainer != model.Dims(589, 239, 235) {
		t.Errorf("expected container 589x239x235, got %v", loaded.DefaultContainer)
	}
	if loaded.DefaultAllowRotation != model.RotationAllAxes {
		t.Errorf("expected allAxes rotation, got %s", loaded.DefaultAllowRotation)
	}
	if loaded.DefaultAlgorithm != model.AlgorithmGenetic {
		t.Errorf("expected genetic algorithm, got %s", loaded.DefaultAlgorithm)
	}
	if len(loaded.RecentSessions) != 2 {
		t.Errorf("expected 2 recent sessions, got %d", len(loaded.RecentSessions))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultContainer != defaults.DefaultContainer {
		t.Errorf("expected default container %v, got %v", defaults.DefaultContainer, cfg.DefaultContainer)
	}
	if cfg.ServerAddr != ":8080" {
		t.Errorf("expected server addr :8080, got %s", cfg.ServerAddr)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"units":"mm"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Units != "mm" {
		t.Errorf("expected units mm, got %s", cfg.Units)
	}
	if cfg.DefaultHeuristic != model.HeuristicFirstFit {
		t.Errorf("expected default heuristic to survive, got %q", cfg.DefaultHeuristic)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentSessions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := []byte(`{"units":"cm","recent_sessions":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentSessions == nil {
		t.Error("RecentSessions should not be nil after loading")
	}
}

func TestDefaultPaths(t *testing.T) {
	for name, path := range map[string]string{
		"config.json":    DefaultConfigPath(),
		"inventory.json": DefaultInventoryPath(),
		"templates.json": DefaultTemplatePath(),
	} {
		if filepath.Base(path) != name {
			t.Errorf("expected filename %s, got %s", name, filepath.Base(path))
		}
		if dir := filepath.Base(filepath.Dir(path)); dir != ".boxpack" {
			t.Errorf("expected parent dir .boxpack for %s, got %s", name, dir)
		}
	}
}
