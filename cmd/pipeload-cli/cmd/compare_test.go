package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/piwi3910/PipeLoad/internal/engine"
	"github.com/piwi3910/PipeLoad/internal/model"
)

func TestSummarize(t *testing.T) {
	c := model.NewContainer("Box", 100, 100, 600, 0)
	results := []engine.ComparisonResult{{
		Scenario:       engine.ComparisonScenario{Name: "Current Settings", Container: c},
		Containers:     2,
		LimitingFactor: model.LimitingWeight,
		FillRatio:      0.5,
	}}

	got := summarize(results)
	if len(got) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(got))
	}
	if got[0].Name != "Current Settings" || got[0].Container != "Box" || got[0].LimitingFactor != "weight" {
		t.Errorf("unexpected summary %+v", got[0])
	}
}

func TestFormatCompareHuman(t *testing.T) {
	summaries := []scenarioSummary{
		{Name: "Current Settings", Container: "Box", Containers: 3, LimitingFactor: "packing", FillRatio: 0.8, EstimatedCost: 4500},
		{Name: "No Spacing", Container: "Box", Infeasible: true},
	}

	var buf bytes.Buffer
	if err := formatCompareHuman(&buf, summaries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"SCENARIO", "80%", "4500.00", "does not fit"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatContainersHuman(t *testing.T) {
	var buf bytes.Buffer
	if err := formatContainersHuman(&buf, model.ContainerPresets); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(model.ContainerPresets)+1 {
		t.Errorf("expected header plus %d rows, got %d lines", len(model.ContainerPresets), len(lines))
	}
}
