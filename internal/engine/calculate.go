package engine

import (
	"go.uber.org/zap"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// Calculator runs the resolver, the packing engine and the aggregator for an order.
type Calculator struct {
	Settings model.Settings
	logger   *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for calculation diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func New(settings model.Settings, opts ...Option) *Calculator {
	c := &Calculator{Settings: settings, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate plans the transport of pipes in containers of the given type.
// The caller's pipes are not modified.
func (c *Calculator) Calculate(pipes []model.Pipe, container model.Container) model.CalculationResult {
	owned := make([]model.Pipe, len(pipes))
	copy(owned, pipes)

	rect := container.CrossSection()
	if !rect.Valid() || container.Length <= 0 {
		failure := "invalid container: width, height and length must be > 0"
		c.logger.Warn("calculation skipped", zap.String("reason", failure))
		return model.CalculationResult{
			Layout:  model.PackingResult{Counts: map[string]int{}, Failure: failure},
			Failure: failure,
		}
	}

	res := Resolve(owned, c.Settings.Allowance)
	c.logger.Debug("pipes resolved",
		zap.Int("pipes", len(owned)),
		zap.Int("groups", len(res.Groups())),
		zap.Int("standalone", len(res.Standalone())),
	)

	layout := c.layout(res.Templates, container)
	c.logger.Debug("cross-section packed",
		zap.Int("circles", layout.Placed()),
		zap.Int("rounds", layout.Rounds),
		zap.Bool("weight_capacity_exceeded", layout.WeightCapacityExceeded),
	)

	cross := make(map[float64]int)
	items := make([]AggregateItem, 0, len(owned))
	for _, p := range owned {
		n, ok := cross[p.ExternalDiameter]
		if !ok {
			n = c.CrossSectionCapacity(p.ExternalDiameter, rect)
			cross[p.ExternalDiameter] = n
		}
		items = append(items, AggregateItem{
			ID:               p.ID,
			Label:            p.Label,
			ExternalDiameter: p.ExternalDiameter,
			InternalDiameter: p.InternalDiameter,
			Length:           p.Length,
			Demand:           p.PieceCount(),
			UnitWeight:       p.UnitWeight(),
			Capacity:         n * alongLength(container.Length, p.Length),
		})
	}

	plan := Aggregate(AggregateInput{
		Items:     items,
		Container: container,
		Spacing:   c.Settings.MinSpace,
		Allowance: c.Settings.Allowance,
	})
	if plan.Infeasible {
		c.logger.Warn("order cannot be loaded",
			zap.Strings("pipes", plan.InfeasibleIDs),
			zap.String("limiting_factor", string(plan.LimitingFactor)),
		)
	} else {
		c.logger.Debug("containers planned",
			zap.Int("total", plan.TotalContainers),
			zap.Int("packing", plan.PackingContainers),
			zap.Int("weight", plan.WeightContainers),
			zap.String("limiting_factor", string(plan.LimitingFactor)),
		)
	}

	estimate := model.CalculateLoadEstimate(owned, res.NestedIn(), container, plan.TotalContainers, c.Settings.PricePerContainer)

	return model.CalculationResult{
		Resolutions:   res.Resolutions,
		Relationships: res.Relationships,
		Templates:     res.Templates,
		Layout:        layout,
		Plan:          plan,
		Estimate:      estimate,
	}
}

// CrossSectionCapacity returns how many pipes of external diameter d fit in
// rect on their own. The row and column formula is used instead of the
// packing engine only when GridFastPath is set and there is no spacing.
func (c *Calculator) CrossSectionCapacity(d float64, rect model.Rectangle) int {
	if c.Settings.GridFastPath && c.Settings.MinSpace == 0 {
		return GridCapacity(rect, d)
	}
	single := []model.PackingTemplate{{ID: "single", Diameter: d}}
	result := Pack(single, rect, PackOptions{
		Spacing:   c.Settings.MinSpace,
		MaxRounds: c.Settings.Rounds(),
	})
	c.warnTruncated(result, "capacity", zap.Float64("diameter", d))
	return result.Placed()
}

// warnTruncated logs layouts cut short by the round cap; their counts are a
// lower bound.
func (c *Calculator) warnTruncated(result model.PackingResult, what string, fields ...zap.Field) {
	if !result.Truncated {
		return
	}
	c.logger.Warn("packing stopped at round cap",
		append([]zap.Field{
			zap.String("layout", what),
			zap.Int("max_rounds", result.Rounds),
			zap.Int("circles", result.Placed()),
		}, fields...)...,
	)
}

// layout packs one container cross-section with every template. Each circle
// stands for a column of units end to end along the container, so template
// weights are scaled by that count and templates longer than the container
// are left out.
func (c *Calculator) layout(templates []model.PackingTemplate, container model.Container) model.PackingResult {
	columns := make([]model.PackingTemplate, 0, len(templates))
	for _, t := range templates {
		along := alongLength(container.Length, t.Length)
		if along == 0 {
			continue
		}
		t.Weight *= float64(along)
		columns = append(columns, t)
	}
	result := Pack(columns, container.CrossSection(), PackOptions{
		Spacing:        c.Settings.MinSpace,
		WeightCapacity: container.WeightCapacity,
		MaxRounds:      c.Settings.Rounds(),
	})
	c.warnTruncated(result, "cross-section")
	return result
}
