package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func TestExportDXF_DrawsLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	proj := buildTestProject()

	if err := ExportDXF(path, proj); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen drawing: %v", err)
	}

	expectedCircles := 0
	for _, c := range proj.Result.Layout.Circles {
		expectedCircles++
		if tmpl := proj.Result.TemplateByID(c.TemplateID); tmpl != nil {
			expectedCircles += len(tmpl.Members) - 1
		}
	}

	circles, lines := 0, 0
	for _, e := range d.Entities() {
		switch e.(type) {
		case *entity.Circle:
			circles++
		case *entity.Line:
			lines++
		}
	}
	if circles != expectedCircles {
		t.Errorf("expected %d circles, got %d", expectedCircles, circles)
	}
	if lines != 4 {
		t.Errorf("expected 4 outline lines, got %d", lines)
	}
}

func TestExportDXF_NoResult(t *testing.T) {
	proj := buildTestProject()
	proj.Result = nil

	err := ExportDXF(filepath.Join(t.TempDir(), "layout.dxf"), proj)
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestExportDXF_InvalidContainer(t *testing.T) {
	proj := buildTestProject()
	proj.Container = model.Container{Label: "broken"}

	if err := ExportDXF(filepath.Join(t.TempDir(), "layout.dxf"), proj); err == nil {
		t.Fatal("expected error for a container without cross-section")
	}
}
