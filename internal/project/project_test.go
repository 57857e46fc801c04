package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harbour.pipeload")

	proj := model.NewProject()
	proj.Name = "Harbour"
	proj.Pipes = []model.Pipe{
		model.NewPipe("PE 315", 31.5, 27.8, 1200, 600, 18),
		model.NewPipe("PE 160", 16, 13.08, 1200, 240, 7),
	}
	proj.Settings.MinSpace = 1.2
	proj.Result = &model.CalculationResult{
		Plan: model.ContainerPlan{TotalContainers: 3, LimitingFactor: model.LimitingWeight},
	}

	if err := Save(path, proj); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "Harbour" {
		t.Errorf("expected name Harbour, got %q", loaded.Name)
	}
	if len(loaded.Pipes) != 2 || loaded.Pipes[1].ID != proj.Pipes[1].ID {
		t.Errorf("pipes not preserved: %+v", loaded.Pipes)
	}
	if loaded.Settings.MinSpace != 1.2 {
		t.Errorf("expected MinSpace 1.2, got %f", loaded.Settings.MinSpace)
	}
	if loaded.Container.Label != proj.Container.Label {
		t.Errorf("expected container %q, got %q", proj.Container.Label, loaded.Container.Label)
	}
	if loaded.Result == nil || loaded.Result.Plan.TotalContainers != 3 {
		t.Errorf("expected the saved result, got %+v", loaded.Result)
	}
}

func TestLoadProject_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.pipeload")
	data := []byte(`{"version":"1","kind":"project","data":{"pipes":null,"settings":{"min_space":0.5}}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Pipes == nil {
		t.Error("pipes should not be nil")
	}
	if loaded.Settings.MaxRounds != model.DefaultMaxRounds {
		t.Errorf("expected MaxRounds %d, got %d", model.DefaultMaxRounds, loaded.Settings.MaxRounds)
	}
	if loaded.Name != "legacy" {
		t.Errorf("expected name from file, got %q", loaded.Name)
	}
}

func TestLoadProject_UnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.pipeload")
	if err := os.WriteFile(path, []byte(`{"version":"9","kind":"project","data":{}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
}

func TestLoadProject_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pipeload")
	if err := os.WriteFile(path, []byte("{{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestWithExtension(t *testing.T) {
	tests := map[string]string{
		"orders/harbour":          "orders/harbour.pipeload",
		"orders/harbour.pipeload": "orders/harbour.pipeload",
		"orders/harbour.PIPELOAD": "orders/harbour.PIPELOAD",
		"orders/harbour.json":     "orders/harbour.json.pipeload",
	}
	for in, want := range tests {
		if got := WithExtension(in); got != want {
			t.Errorf("WithExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadProject_RejectsTemplateStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := SaveTemplates(path, model.NewTemplateStore()); err != nil {
		t.Fatalf("SaveTemplates failed: %v", err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrWrongKind) {
		t.Fatalf("expected ErrWrongKind, got %v", err)
	}
}
