package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// AggregateItem is the demand for one pipe type together with how many of
// its units a single empty container holds.
type AggregateItem struct {
	ID               string
	Label            string
	ExternalDiameter float64 // cm
	InternalDiameter float64 // cm
	Length           float64 // cm
	Demand           int     // Units ordered
	UnitWeight       float64 // kg
	Capacity         int     // Units per container when loaded alone
}

// AggregateInput is everything the aggregator needs to plan an order.
type AggregateInput struct {
	Items     []AggregateItem
	Container model.Container
	Spacing   float64
	Allowance float64
}

// Aggregate turns per-type demand and single-container capacities into the
// number of containers needed and a per-container breakdown.
//
// The container count is the larger of the packing bound and the weight bound
// (at least one). The breakdown fills each container with its largest
// remaining pipe type, slides smaller types into the bores of that type, and
// puts the rest into the side and top space the largest type leaves free.
// When the breakdown needs more containers than the bounds, TotalContainers
// follows the breakdown.
func Aggregate(in AggregateInput) model.ContainerPlan {
	items := make([]AggregateItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Demand > 0 {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ExternalDiameter > items[j].ExternalDiameter
	})

	plan := model.ContainerPlan{LimitingFactor: model.LimitingNone}
	weightCap := in.Container.WeightCapacity
	for _, it := range items {
		plan.TotalWeight += float64(it.Demand) * it.UnitWeight
		plan.TotalPieces += it.Demand
	}

	var tooHeavy bool
	for _, it := range items {
		switch {
		case it.Capacity <= 0:
			plan.InfeasibleIDs = append(plan.InfeasibleIDs, it.ID)
		case weightCap > 0 && it.UnitWeight > weightCap:
			plan.InfeasibleIDs = append(plan.InfeasibleIDs, it.ID)
			tooHeavy = true
		}
	}

	if weightCap > 0 {
		plan.WeightContainers = int(math.Ceil(plan.TotalWeight / weightCap))
	}

	if len(plan.InfeasibleIDs) > 0 {
		plan.Infeasible = true
		plan.LimitingFactor = model.LimitingPacking
		if tooHeavy && len(plan.InfeasibleIDs) == countTooHeavy(items, weightCap) {
			plan.LimitingFactor = model.LimitingWeight
		}
		return plan
	}

	for _, it := range items {
		n := int(math.Ceil(float64(it.Demand) / float64(it.Capacity)))
		if n > plan.PackingContainers {
			plan.PackingContainers = n
		}
	}

	total := max(plan.PackingContainers, plan.WeightContainers, 1)
	switch {
	case plan.PackingContainers > plan.WeightContainers:
		plan.LimitingFactor = model.LimitingPacking
	case plan.WeightContainers > plan.PackingContainers:
		plan.LimitingFactor = model.LimitingWeight
	case plan.PackingContainers > 0:
		plan.LimitingFactor = model.LimitingBoth
	}

	plan.Containers = breakdown(items, in, total)
	plan.TotalContainers = max(total, len(plan.Containers))
	return plan
}

func countTooHeavy(items []AggregateItem, weightCap float64) int {
	n := 0
	for _, it := range items {
		if it.Capacity > 0 && weightCap > 0 && it.UnitWeight > weightCap {
			n++
		}
	}
	return n
}

// breakdown fills containers one at a time until all demand is allocated,
// producing at least minContainers containers.
func breakdown(items []AggregateItem, in AggregateInput, minContainers int) []model.ContainerLoad {
	remaining := make([]int, len(items))
	for i, it := range items {
		remaining[i] = it.Demand
	}
	left := func() bool {
		for _, n := range remaining {
			if n > 0 {
				return true
			}
		}
		return false
	}

	var loads []model.ContainerLoad
	for idx := 0; idx < minContainers || left(); idx++ {
		load := fillContainer(items, remaining, in)
		load.Index = idx
		if len(load.Entries) == 0 && left() {
			// Nothing fits any more; stop rather than emit empty containers forever.
			break
		}
		loads = append(loads, load)
	}
	return loads
}

// region is a free rectangle of the cross-section.
type region struct {
	width, height float64
}

// fillContainer allocates one container's worth of demand, decrementing remaining.
func fillContainer(items []AggregateItem, remaining []int, in AggregateInput) model.ContainerLoad {
	var load model.ContainerLoad

	budget := math.Inf(1)
	if in.Container.WeightCapacity > 0 {
		budget = in.Container.WeightCapacity
	}
	take := func(i, want int, nested bool) int {
		it := items[i]
		n := min(want, remaining[i])
		if it.UnitWeight > 0 && !math.IsInf(budget, 1) {
			n = min(n, int(math.Floor(budget/it.UnitWeight+1e-9)))
		}
		if n <= 0 {
			return 0
		}
		remaining[i] -= n
		w := float64(n) * it.UnitWeight
		budget -= w
		load.Weight += w
		if last := len(load.Entries) - 1; last >= 0 && load.Entries[last].TemplateID == it.ID && load.Entries[last].Nested == nested {
			load.Entries[last].Count += n
			load.Entries[last].Weight += w
			return n
		}
		load.Entries = append(load.Entries, model.LoadEntry{
			TemplateID: it.ID,
			Label:      it.Label,
			Count:      n,
			Nested:     nested,
			Weight:     w,
		})
		return n
	}

	dom := -1
	for i := range items {
		if remaining[i] > 0 {
			dom = i
			break
		}
	}
	if dom < 0 {
		return load
	}

	dominant := items[dom]
	placed := take(dom, dominant.Capacity, false)
	bores := placed

	available := dominant.InternalDiameter - 2*in.Allowance
	for i := dom + 1; i < len(items) && bores > 0; i++ {
		if remaining[i] == 0 || items[i].ExternalDiameter > available {
			continue
		}
		bores -= take(i, bores, true)
	}

	side, top := leftoverRegions(dominant, placed, in)
	for i := dom + 1; i < len(items); i++ {
		if remaining[i] == 0 {
			continue
		}
		it := items[i]
		along := alongLength(in.Container.Length, it.Length)
		pitch := it.ExternalDiameter + in.Spacing
		if along == 0 || pitch <= 0 {
			continue
		}

		if cols, rows := fit(side, pitch); cols*rows > 0 {
			n := take(i, cols*rows*along, false)
			usedCols := int(math.Ceil(float64(n) / float64(rows*along)))
			side.width -= float64(usedCols) * pitch
		}
		if remaining[i] == 0 {
			continue
		}
		if cols, rows := fit(top, pitch); cols*rows > 0 {
			n := take(i, cols*rows*along, false)
			usedRows := int(math.Ceil(float64(n) / float64(cols*along)))
			top.height -= float64(usedRows) * pitch
		}
	}

	return load
}

// leftoverRegions derives the free side and top rectangles from the grid
// footprint of placed units of the dominant type.
func leftoverRegions(dominant AggregateItem, placed int, in AggregateInput) (side, top region) {
	w, h := in.Container.Width, in.Container.Height
	pitch := dominant.ExternalDiameter + in.Spacing
	along := alongLength(in.Container.Length, dominant.Length)
	if pitch <= 0 || along == 0 || placed == 0 {
		return region{width: w, height: h}, region{}
	}

	cross := int(math.Ceil(float64(placed) / float64(along)))
	cols := max(int(math.Floor(w/pitch)), 1)

	var usedW, usedH float64
	if cross <= cols {
		usedW = float64(cross) * pitch
		usedH = pitch
	} else {
		usedW = float64(cols) * pitch
		usedH = math.Ceil(float64(cross)/float64(cols)) * pitch
	}
	usedW = math.Min(usedW, w)
	usedH = math.Min(usedH, h)

	return region{width: w - usedW, height: h}, region{width: usedW, height: h - usedH}
}

func fit(r region, pitch float64) (cols, rows int) {
	if r.width <= 0 || r.height <= 0 {
		return 0, 0
	}
	return int(math.Floor(r.width / pitch)), int(math.Floor(r.height / pitch))
}

// alongLength returns how many units of length l fit end to end in a container of length containerLength.
func alongLength(containerLength, l float64) int {
	if l <= 0 || containerLength <= 0 {
		return 0
	}
	return int(math.Floor(containerLength / l))
}
