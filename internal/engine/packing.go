package engine

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/piwi3910/PipeLoad/internal/model"
)

// overlapEpsilon absorbs floating-point error in the distance checks.
const overlapEpsilon = 1e-3

// tangentSteps is the number of samples taken on the upper half of the ring
// around each placed circle (angles 0, π/8, ..., π).
const tangentSteps = 8

// PackOptions controls a single cross-section packing run.
type PackOptions struct {
	Spacing        float64 // Minimum clearance between circle surfaces and to the walls
	WeightCapacity float64 // kg, 0 = unlimited
	MaxRounds      int     // 0 = model.DefaultMaxRounds
}

// candidateMode selects which candidate positions a pass generates.
type candidateMode int

const (
	// modeNook places circles into the lowest nook between placed circles.
	modeNook candidateMode = iota
	// modeStack places circles on the floor, straight above or right beside placed circles.
	modeStack
)

// Pack places as many copies of the templates as fit into rect, one copy of
// every template per round, until a round places nothing. Every circle sits at
// the lowest feasible candidate position, ties going to the smaller x.
//
// Two candidate strategies are run and the layout with more circles is kept;
// ties keep the nook layout. Both are deterministic.
func Pack(templates []model.PackingTemplate, rect model.Rectangle, opts PackOptions) model.PackingResult {
	if !rect.Valid() {
		return model.PackingResult{
			Counts:  map[string]int{},
			Failure: fmt.Sprintf("invalid cross-section %.2f x %.2f: width and height must be > 0", rect.Width, rect.Height),
		}
	}
	if opts.Spacing < 0 {
		opts.Spacing = 0
	}
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = model.DefaultMaxRounds
	}

	sorted := make([]model.PackingTemplate, len(templates))
	copy(sorted, templates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Diameter > sorted[j].Diameter
	})

	nook := newPacker(sorted, rect, opts, modeNook).run()
	stack := newPacker(sorted, rect, opts, modeStack).run()
	if len(stack.Circles) > len(nook.Circles) {
		return stack
	}
	return nook
}

// GridCapacity returns how many circles of diameter d fit in rect when laid
// out in plain rows and columns with no clearance.
func GridCapacity(rect model.Rectangle, d float64) int {
	if d <= 0 || !rect.Valid() {
		return 0
	}
	return int(math.Floor(rect.Width/d)) * int(math.Floor(rect.Height/d))
}

// packer holds the state of one packing pass.
type packer struct {
	templates []model.PackingTemplate
	rect      model.Rectangle
	opts      PackOptions
	mode      candidateMode

	placed  []model.PlacedCircle
	centers []r2.Vec
	index   *spatialGrid
	maxEff  float64

	// byFloor orders placed circles by the y of their lowest point.
	byFloor []int
}

func newPacker(templates []model.PackingTemplate, rect model.Rectangle, opts PackOptions, mode candidateMode) *packer {
	maxEff := 0.0
	for _, t := range templates {
		maxEff = math.Max(maxEff, t.Radius()+opts.Spacing/2)
	}
	return &packer{
		templates: templates,
		rect:      rect,
		opts:      opts,
		mode:      mode,
		index:     newSpatialGrid(2 * maxEff),
		maxEff:    maxEff,
	}
}

func (p *packer) run() model.PackingResult {
	result := model.PackingResult{Counts: make(map[string]int, len(p.templates))}
	for _, t := range p.templates {
		result.Counts[t.ID] = 0
	}

	minSide := p.rect.MinSide()
	for round := 1; round <= p.opts.MaxRounds; round++ {
		result.Rounds = round
		placedThisRound := 0

		for _, t := range p.templates {
			if t.Diameter <= 0 || t.Diameter > minSide {
				continue
			}
			r := t.Radius() + p.opts.Spacing/2
			pos, ok := p.bestPosition(r)
			if !ok {
				continue
			}
			if p.opts.WeightCapacity > 0 && result.TotalWeight+t.Weight > p.opts.WeightCapacity {
				result.WeightCapacityExceeded = true
				continue
			}
			p.add(model.PlacedCircle{
				X:               pos.X,
				Y:               pos.Y,
				Radius:          t.Radius(),
				EffectiveRadius: r,
				TemplateID:      t.ID,
			})
			result.Counts[t.ID]++
			result.TotalWeight += t.Weight
			placedThisRound++
		}

		if placedThisRound == 0 {
			break
		}
		if round == p.opts.MaxRounds {
			result.Truncated = true
		}
	}

	result.Circles = p.placed
	return result
}

func (p *packer) add(c model.PlacedCircle) {
	v := r2.Vec{X: c.X, Y: c.Y}
	idx := len(p.placed)
	p.index.insert(idx, v)
	p.placed = append(p.placed, c)
	p.centers = append(p.centers, v)

	floor := c.Y - c.EffectiveRadius
	at := sort.Search(len(p.byFloor), func(k int) bool {
		j := p.byFloor[k]
		return p.centers[j].Y-p.placed[j].EffectiveRadius > floor
	})
	p.byFloor = append(p.byFloor, 0)
	copy(p.byFloor[at+1:], p.byFloor[at:])
	p.byFloor[at] = idx
}

// bestPosition returns the lowest, then leftmost, feasible centre for a circle
// of effective radius r.
func (p *packer) bestPosition(r float64) (r2.Vec, bool) {
	var (
		best  r2.Vec
		found bool
	)
	consider := func(c r2.Vec) {
		if found && (c.Y > best.Y || (c.Y == best.Y && c.X >= best.X)) {
			return
		}
		if p.feasible(c, r) {
			best, found = c, true
		}
	}

	if len(p.placed) == 0 {
		if 2*r <= p.rect.Width && 2*r <= p.rect.Height {
			return r2.Vec{X: r, Y: r}, true
		}
		return r2.Vec{}, false
	}

	for x := r; x <= p.rect.Width-r; x += r / 2 {
		consider(r2.Vec{X: x, Y: r})
	}

	// Every candidate derived from circle i lies within reach of its centre,
	// so once a circle's lowest reachable y is above the best feasible
	// position found so far, neither it nor any later circle can improve it.
	for _, i := range p.byFloor {
		c := p.placed[i]
		center := p.centers[i]
		reach := c.EffectiveRadius + r
		if found && center.Y-reach-overlapEpsilon > best.Y {
			break
		}

		switch p.mode {
		case modeNook:
			for k := 0; k <= tangentSteps; k++ {
				angle := float64(k) * math.Pi / tangentSteps
				consider(r2.Add(center, r2.Vec{X: reach * math.Cos(angle), Y: reach * math.Sin(angle)}))
			}
			p.nookCandidates(i, r, consider)
		case modeStack:
			consider(r2.Vec{X: center.X, Y: center.Y + reach})
		}

		if right := center.X + reach; right <= p.rect.Width-r {
			consider(r2.Vec{X: right, Y: center.Y})
		}
	}

	return best, found
}

// nookCandidates emits the intersection points of the rings of reach around
// placed circle i and every later placed circle close enough to intersect it.
func (p *packer) nookCandidates(i int, r float64, consider func(r2.Vec)) {
	c1 := p.centers[i]
	r1 := p.placed[i].EffectiveRadius + r
	p.index.near(c1, r1+p.maxEff+r, func(j int) {
		if j <= i {
			return
		}
		c2 := p.centers[j]
		r2j := p.placed[j].EffectiveRadius + r
		delta := r2.Sub(c2, c1)
		d := r2.Norm(delta)
		if d <= math.Abs(r1-r2j) || d >= r1+r2j {
			return
		}
		a := (r1*r1 - r2j*r2j + d*d) / (2 * d)
		h := math.Sqrt(math.Max(0, r1*r1-a*a))
		unit := r2.Scale(1/d, delta)
		mid := r2.Add(c1, r2.Scale(a, unit))
		perp := r2.Vec{X: -unit.Y, Y: unit.X}
		consider(r2.Add(mid, r2.Scale(h, perp)))
		consider(r2.Sub(mid, r2.Scale(h, perp)))
	})
}

// feasible reports whether a circle of effective radius r centred at c stays
// inside the rectangle and clear of every placed circle.
func (p *packer) feasible(c r2.Vec, r float64) bool {
	if c.X < r || c.X > p.rect.Width-r || c.Y < r || c.Y > p.rect.Height-r {
		return false
	}
	free := true
	p.index.near(c, r+p.maxEff, func(j int) {
		if free && r2.Norm(r2.Sub(c, p.centers[j])) < r+p.placed[j].EffectiveRadius-overlapEpsilon {
			free = false
		}
	})
	return free
}

// spatialGrid buckets circle centres into square cells so neighbour queries
// only visit nearby circles.
type spatialGrid struct {
	cell  float64
	cells map[cellKey][]int
}

type cellKey struct{ i, j int }

func newSpatialGrid(cell float64) *spatialGrid {
	if cell <= 0 {
		cell = 1
	}
	return &spatialGrid{cell: cell, cells: make(map[cellKey][]int)}
}

func (g *spatialGrid) key(v r2.Vec) cellKey {
	return cellKey{int(math.Floor(v.X / g.cell)), int(math.Floor(v.Y / g.cell))}
}

func (g *spatialGrid) insert(idx int, v r2.Vec) {
	k := g.key(v)
	g.cells[k] = append(g.cells[k], idx)
}

// near calls fn for every indexed centre within the cells overlapping the
// square of half-size radius around v. It may report centres farther away.
func (g *spatialGrid) near(v r2.Vec, radius float64, fn func(idx int)) {
	lo := g.key(r2.Vec{X: v.X - radius, Y: v.Y - radius})
	hi := g.key(r2.Vec{X: v.X + radius, Y: v.Y + radius})
	for i := lo.i; i <= hi.i; i++ {
		for j := lo.j; j <= hi.j; j++ {
			for _, idx := range g.cells[cellKey{i, j}] {
				fn(idx)
			}
		}
	}
}
