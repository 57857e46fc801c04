package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	pipes := []model.Pipe{model.NewPipe("PE 315", 31.5, 27.8, 1200, 600, 18)}
	tmpl := model.NewJobTemplate("Water Main", "Standard water main order", pipes, model.DefaultContainer(), model.DefaultSettings())
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
	if loaded.Templates[0].Name != "Water Main" {
		t.Errorf("expected 'Water Main', got %q", loaded.Templates[0].Name)
	}
	if len(loaded.Templates[0].Pipes) != 1 {
		t.Errorf("expected 1 pipe, got %d", len(loaded.Templates[0].Pipes))
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

	store := model.NewTemplateStore()
	container := model.DefaultContainer()
	store.Add(model.NewJobTemplate("T1", "First", nil, container, model.DefaultSettings()))
	store.Add(model.NewJobTemplate("T2", "Second", nil, container, model.DefaultSettings()))
	store.Add(model.NewJobTemplate("T3", "Third", nil, container, model.DefaultSettings()))

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
}

func TestLoadTemplates_UnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	data := []byte(`{"version":"2","kind":"templates","data":{"templates":[]}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadTemplates(path)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestSaveTemplates_WritesEnvelope(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "templates.json")
	if err := SaveTemplates(path, model.NewTemplateStore()); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("file is not a document: %v", err)
	}
	if doc.Version != formatVersion || doc.Kind != kindTemplates || doc.SavedAt == "" {
		t.Errorf("unexpected envelope %+v", doc)
	}
}
