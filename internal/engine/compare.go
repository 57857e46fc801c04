package engine

import (
	"fmt"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// ComparisonScenario defines a named set of settings and a container to compare.
type ComparisonScenario struct {
	Name      string
	Settings  model.Settings
	Container model.Container
}

// ComparisonResult holds the calculation result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Result         model.CalculationResult
	Containers     int
	LimitingFactor model.LimitingFactor
	Infeasible     bool
	FillRatio      float64 // Share of the cross-section covered in the single-container layout
	EstimatedCost  float64
}

// CompareScenarios runs the calculation for each scenario and returns the
// results in scenario order. This enables side-by-side comparison of different
// clearances and container types.
func CompareScenarios(scenarios []ComparisonScenario, pipes []model.Pipe, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		calc := New(scenario.Settings, opts...)
		result := calc.Calculate(pipes, scenario.Container)

		results = append(results, ComparisonResult{
			Scenario:       scenario,
			Result:         result,
			Containers:     result.Plan.TotalContainers,
			LimitingFactor: result.Plan.LimitingFactor,
			Infeasible:     result.Plan.Infeasible,
			FillRatio:      result.Layout.FillRatio(scenario.Container.CrossSection()),
			EstimatedCost:  result.Estimate.EstimatedCost,
		})
	}

	return results
}

// alternativeContainers are tried by BuildDefaultScenarios besides the current one.
var alternativeContainers = []string{"40ft High Cube", "13.6m Tautliner"}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings and container, varying key parameters to show
// what-if alternatives.
func BuildDefaultScenarios(base model.Settings, container model.Container) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:      "Current Settings",
			Settings:  base,
			Container: container,
		},
	}

	// Scenario: pipes touching
	if base.MinSpace > 0 {
		noSpace := base
		noSpace.MinSpace = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:      "No Spacing",
			Settings:  noSpace,
			Container: container,
		})
	}

	// Scenario: half the nesting clearance
	if base.Allowance > 0 {
		tight := base
		tight.Allowance = base.Allowance * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:      fmt.Sprintf("Allowance %.2fcm (half)", tight.Allowance),
			Settings:  tight,
			Container: container,
		})
	}

	for _, name := range alternativeContainers {
		if name == container.Label {
			continue
		}
		preset, ok := model.GetContainerPreset(name)
		if !ok {
			continue
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:      preset.Name,
			Settings:  base,
			Container: preset.ToContainer(),
		})
	}

	return scenarios
}
