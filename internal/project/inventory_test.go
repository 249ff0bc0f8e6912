package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	inv := model.Inventory{
		Containers: []model.ContainerPreset{
			model.NewContainerPreset("Van load", 300, 170, 150, 80),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Containers) != 1 {
		t.Fatalf("expected 1 container, got %d", len(loaded.Containers))
	}
	c := loaded.Containers[0]
	if c.Name != "Van load" {
		t.Errorf("expected name 'Van load', got %q", c.Name)
	}
	if c.Dimensions != model.Dims(300, 170, 150) {
		t.Errorf("expected 300x170x150, got %v", c.Dimensions)
	}
	if c.Price != 80 {
		t.Errorf("expected price 80, got %f", c.Price)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(inv.Containers) == 0 {
		t.Error("expected default containers, got none")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default inventory file to be created")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("[oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportInventory(t *testing.T) {
	tmpDir := t.TempDir()

	existing := model.Inventory{
		Containers: []model.ContainerPreset{
			{ID: "c-001", Name: "Existing crate", Dimensions: model.Dims(10, 10, 10)},
		},
	}

	imported := model.Inventory{
		Containers: []model.ContainerPreset{
			{ID: "c-001", Name: "Duplicate crate", Dimensions: model.Dims(10, 10, 10)}, // same ID, skipped
			{ID: "c-002", Name: "New crate", Dimensions: model.Dims(20, 20, 20)},
		},
	}

	importPath := filepath.Join(tmpDir, "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Containers) != 2 {
		t.Fatalf("expected 2 containers after merge, got %d", len(merged.Containers))
	}
	if merged.Containers[0].Name != "Existing crate" {
		t.Errorf("expected first container to be 'Existing crate', got %q", merged.Containers[0].Name)
	}
	if merged.Containers[1].Name != "New crate" {
		t.Errorf("expected second container to be 'New crate', got %q", merged.Containers[1].Name)
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	merged, err := ImportInventory(filepath.Join(t.TempDir(), "missing.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(merged.Containers) != len(existing.Containers) {
		t.Error("existing inventory should be returned unchanged on error")
	}
}
