package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultPrice = 2400
	cfg.Theme = "dark"

	inv := model.DefaultInventory()
	inv.Containers = append(inv.Containers, model.ContainerPreset{Name: "Flatrack", Width: 240, Height: 200, Length: 1200, WeightCapacity: 30000})

	templates := model.NewTemplateStore()
	templates.Add(model.NewJobTemplate("Depot", "weekly order",
		[]model.Pipe{model.NewPipe("PE 110", 11, 9, 1200, 240, 3.35)},
		model.DefaultContainer(), model.DefaultSettings()))

	if err := ExportAllData(path, cfg, inv, templates); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultPrice != 2400 {
		t.Errorf("expected DefaultPrice=2400, got %f", backup.Config.DefaultPrice)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Inventory.Pipes) != len(inv.Pipes) {
		t.Errorf("expected %d pipe presets, got %d", len(inv.Pipes), len(backup.Inventory.Pipes))
	}
	if len(backup.Inventory.Containers) != 1 || backup.Inventory.Containers[0].Name != "Flatrack" {
		t.Errorf("expected the custom container, got %+v", backup.Inventory.Containers)
	}
	if len(backup.Templates.Templates) != 1 || backup.Templates.Templates[0].Name != "Depot" {
		t.Errorf("expected the Depot template, got %+v", backup.Templates.Templates)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"theme":"dark"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), model.Inventory{}, model.NewTemplateStore()); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataNilCollections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_projects":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after import")
	}
	if backup.Inventory.Pipes == nil || backup.Inventory.Containers == nil {
		t.Error("inventory slices should not be nil after import")
	}
	if backup.Templates.Templates == nil {
		t.Error("templates should not be nil after import")
	}
}
