package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	items := []model.Item{model.NewItem("Shoe box", 33, 12, 20, 6)}
	settings := model.DefaultSettings()
	settings.AllowRotation = model.RotationVerticalAxis

	tmpl := model.NewItemTemplate("Shoe order", "Standard shoe shipment", model.Dims(60, 45, 45), items, settings)
	store.Add(tmpl)

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	got := loaded.Templates[0]
	if got.Name != "Shoe order" {
		t.Errorf("expected 'Shoe order', got %q", got.Name)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 6 {
		t.Errorf("expected 1 item with quantity 6, got %+v", got.Items)
	}
	if got.Settings.AllowRotation != model.RotationVerticalAxis {
		t.Errorf("expected rotation verticalAxisOnly, got %s", got.Settings.AllowRotation)
	}
	if got.Container != model.Dims(60, 45, 45) {
		t.Errorf("expected container 60x45x45, got %v", got.Container)
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestSaveAndLoadTemplates_Multiple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	c := model.Dims(10, 10, 10)
	store := model.NewTemplateStore()
	store.Add(model.NewItemTemplate("T1", "First", c, nil, model.DefaultSettings()))
	store.Add(model.NewItemTemplate("T2", "Second", c, nil, model.DefaultSettings()))
	store.Add(model.NewItemTemplate("T3", "Third", c, nil, model.DefaultSettings()))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(loaded.Templates))
	}
	if loaded.Templates[1].Items == nil {
		t.Error("template items should be an empty list, not null")
	}
}
