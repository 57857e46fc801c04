package export

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PipeLoad/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestProject()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestExportLabels_NoResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	proj := buildTestProject()
	proj.Result = nil

	if err := ExportLabels(path, proj); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestExportLabels_NoContainers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	proj := buildTestProject()
	proj.Result.Plan = model.ContainerPlan{Infeasible: true}

	if err := ExportLabels(path, proj); err == nil {
		t.Fatal("expected error for a plan without containers, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	container := model.DefaultContainer()
	plan := model.ContainerPlan{
		TotalContainers: 2,
		Containers: []model.ContainerLoad{
			{Index: 0, Weight: 18000, Entries: []model.LoadEntry{
				{Label: "PE 315", Count: 20},
				{Label: "PE 200", Count: 20, Nested: true},
			}},
			{Index: 1, Weight: 900, Entries: []model.LoadEntry{
				{Label: "PVC 110", Count: 50},
			}},
		},
	}

	labels := CollectLabelInfos("Harbour", container, plan)
	if len(labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(labels))
	}

	first := labels[0]
	if first.Container != 1 || first.Of != 2 {
		t.Errorf("expected container 1/2, got %d/%d", first.Container, first.Of)
	}
	if first.Pieces != 40 {
		t.Errorf("expected 40 pieces, got %d", first.Pieces)
	}
	if first.ContainerLabel != container.Label {
		t.Errorf("expected container label %q, got %q", container.Label, first.ContainerLabel)
	}
	if len(first.Items) != 2 || !first.Items[1].Nested {
		t.Errorf("expected nested second item, got %+v", first.Items)
	}

	if labels[1].Container != 2 || labels[1].Weight != 900 {
		t.Errorf("unexpected second label: %+v", labels[1])
	}
}

func TestCollectLabelInfos_MatchesPlan(t *testing.T) {
	proj := buildTestProject()
	plan := proj.Result.Plan

	labels := CollectLabelInfos(proj.Name, proj.Container, plan)
	if len(labels) != len(plan.Containers) {
		t.Fatalf("expected %d labels, got %d", len(plan.Containers), len(labels))
	}

	pieces := 0
	for _, l := range labels {
		pieces += l.Pieces
	}
	if pieces != plan.TotalPieces {
		t.Errorf("labels carry %d pieces, plan has %d", pieces, plan.TotalPieces)
	}
}

func TestLabelInfo_JSONRoundTrip(t *testing.T) {
	info := LabelInfo{
		Project:        "Harbour",
		Container:      3,
		Of:             5,
		ContainerLabel: "40ft Standard",
		Pieces:         64,
		Weight:         12500,
		Items:          []LabelItem{{Label: "PE 200", Count: 64, Nested: true}},
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded LabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if decoded.Container != info.Container || decoded.Of != info.Of {
		t.Errorf("container mismatch: got %d/%d", decoded.Container, decoded.Of)
	}
	if len(decoded.Items) != 1 || decoded.Items[0] != info.Items[0] {
		t.Errorf("items mismatch: got %+v", decoded.Items)
	}
}

func TestExportLabels_ManyContainers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	proj := buildTestProject()
	loads := make([]model.ContainerLoad, 35)
	for i := range loads {
		loads[i] = model.ContainerLoad{Index: i, Weight: 1000, Entries: []model.LoadEntry{{Label: "PVC 110", Count: 10}}}
	}
	proj.Result.Plan = model.ContainerPlan{Containers: loads, TotalContainers: len(loads)}

	if err := ExportLabels(path, proj); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}
