package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// CentimetersPerMeter converts the cm lengths used throughout the model into
// the metre basis of WeightPerMeter and QuantityMeters.
const CentimetersPerMeter = 100.0

var (
	// ErrInvalidPipe is returned when a pipe's dimensions are inconsistent.
	ErrInvalidPipe = errors.New("invalid pipe")
	// ErrInvalidContainer is returned when a container has a non-positive dimension.
	ErrInvalidContainer = errors.New("invalid container")
)

// Telescoping describes how a nested pipe sits inside its outer pipe.
type Telescoping int

const (
	TelescopingNone    Telescoping = iota // Standalone, nothing nested
	TelescopingFull                       // Nested pipe is fully inside the outer pipe's length
	TelescopingPartial                    // Nested pipe sticks out past the outer pipe's ends
)

func (t Telescoping) String() string {
	switch t {
	case TelescopingFull:
		return "Full"
	case TelescopingPartial:
		return "Partial"
	default:
		return "None"
	}
}

// MarshalText encodes the telescoping type as "none", "full" or "partial".
func (t Telescoping) MarshalText() ([]byte, error) {
	switch t {
	case TelescopingNone, TelescopingFull, TelescopingPartial:
		return []byte(strings.ToLower(t.String())), nil
	default:
		return nil, fmt.Errorf("invalid telescoping type %d", int(t))
	}
}

// UnmarshalText accepts the names written by MarshalText in any case.
func (t *Telescoping) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "none":
		*t = TelescopingNone
	case "full":
		*t = TelescopingFull
	case "partial":
		*t = TelescopingPartial
	default:
		return fmt.Errorf("unknown telescoping type %q", text)
	}
	return nil
}

// Point2D represents a 2D coordinate in cm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pipe is one pipe type of an order.
type Pipe struct {
	ID               string  `json:"id"`
	Label            string  `json:"label"`
	ExternalDiameter float64 `json:"external_diameter"` // cm
	InternalDiameter float64 `json:"internal_diameter"` // cm
	Length           float64 `json:"length"`            // cm, standard length of a single unit
	QuantityMeters   float64 `json:"quantity_meters"`   // total length ordered, m
	WeightPerMeter   float64 `json:"weight_per_meter"`  // kg/m
}

func NewPipe(label string, external, internal, length, quantityMeters, weightPerMeter float64) Pipe {
	return Pipe{
		ID:               uuid.New().String()[:8],
		Label:            label,
		ExternalDiameter: external,
		InternalDiameter: internal,
		Length:           length,
		QuantityMeters:   quantityMeters,
		WeightPerMeter:   weightPerMeter,
	}
}

// UnitWeight returns the weight of a single standard-length unit in kg.
func (p Pipe) UnitWeight() float64 {
	return p.Length / CentimetersPerMeter * p.WeightPerMeter
}

// PieceCount returns how many standard-length units cover the ordered quantity.
func (p Pipe) PieceCount() int {
	if p.Length <= 0 || p.QuantityMeters <= 0 {
		return 0
	}
	return int(math.Ceil(p.QuantityMeters * CentimetersPerMeter / p.Length))
}

// WallThickness returns the radial wall thickness in cm.
func (p Pipe) WallThickness() float64 {
	return (p.ExternalDiameter - p.InternalDiameter) / 2
}

// Validate checks the invariants the input layer guarantees before a calculation.
func (p Pipe) Validate() error {
	switch {
	case p.InternalDiameter <= 0:
		return fmt.Errorf("%w %q: internal diameter must be > 0", ErrInvalidPipe, p.Label)
	case p.ExternalDiameter <= p.InternalDiameter:
		return fmt.Errorf("%w %q: external diameter must exceed internal diameter", ErrInvalidPipe, p.Label)
	case p.Length <= 0:
		return fmt.Errorf("%w %q: length must be > 0", ErrInvalidPipe, p.Label)
	case p.QuantityMeters < 0 || p.WeightPerMeter < 0:
		return fmt.Errorf("%w %q: quantity and weight must not be negative", ErrInvalidPipe, p.Label)
	}
	return nil
}

// Rectangle is the cross-section a container presents perpendicular to the pipe axis.
type Rectangle struct {
	Width  float64 `json:"width"`  // cm
	Height float64 `json:"height"` // cm
}

// Valid reports whether both dimensions are positive.
func (r Rectangle) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// MinSide returns the smaller of the two dimensions.
func (r Rectangle) MinSide() float64 {
	return math.Min(r.Width, r.Height)
}

// Area returns the cross-section area in cm².
func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

// Container is a transport volume the pipes are loaded into.
type Container struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	Width          float64 `json:"width"`           // cm
	Height         float64 `json:"height"`          // cm
	Length         float64 `json:"length"`          // cm, along the pipe axis
	WeightCapacity float64 `json:"weight_capacity"` // kg, 0 = unlimited
}

func NewContainer(label string, w, h, l, weightCapacity float64) Container {
	return Container{
		ID:             uuid.New().String()[:8],
		Label:          label,
		Width:          w,
		Height:         h,
		Length:         l,
		WeightCapacity: weightCapacity,
	}
}

// CrossSection returns the width x height face the packing engine fills.
func (c Container) CrossSection() Rectangle {
	return Rectangle{Width: c.Width, Height: c.Height}
}

// Volume returns the container volume in cm³.
func (c Container) Volume() float64 {
	return c.Width * c.Height * c.Length
}

// Validate checks that every dimension is positive and the capacity is not negative.
func (c Container) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Length <= 0 {
		return fmt.Errorf("%w %q: width, height and length must be > 0", ErrInvalidContainer, c.Label)
	}
	if c.WeightCapacity < 0 {
		return fmt.Errorf("%w %q: weight capacity must not be negative", ErrInvalidContainer, c.Label)
	}
	return nil
}

// NestingRelationship records which pipes were telescoped into an outer pipe.
type NestingRelationship struct {
	OuterID   string      `json:"outer_id"`
	NestedIDs []string    `json:"nested_ids"` // Innermost last
	Type      Telescoping `json:"type"`
}

// PipeResolution is the resolver's verdict for a single pipe.
type PipeResolution struct {
	PipeID            string      `json:"pipe_id"`
	Telescoping       Telescoping `json:"telescoping"`
	NestedWith        []string    `json:"nested_with,omitempty"` // Pipes nested inside this one (outer pipes only)
	NestedIn          string      `json:"nested_in,omitempty"`   // Outer pipe hosting this one (nested pipes only)
	EffectiveDiameter float64     `json:"effective_diameter"`    // cm
	EffectiveLength   float64     `json:"effective_length"`      // cm
}

// PackingTemplate is a standalone pipe or a resolved nested group reduced to
// the circle the packing engine places.
type PackingTemplate struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Diameter    float64     `json:"diameter"` // cm
	Length      float64     `json:"length"`   // cm
	Weight      float64     `json:"weight"`   // kg per instance, members included
	Members     []string    `json:"members"`  // Pipe IDs, outer first
	Telescoping Telescoping `json:"telescoping"`
}

// Radius returns half the template diameter.
func (t PackingTemplate) Radius() float64 {
	return t.Diameter / 2
}

// Nested reports whether the template stands for a nested group.
func (t PackingTemplate) Nested() bool {
	return len(t.Members) > 1
}

// PlacedCircle is one template instance positioned in the cross-section.
// Y grows upward from the container floor.
type PlacedCircle struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Radius          float64 `json:"radius"`           // Bare template radius
	EffectiveRadius float64 `json:"effective_radius"` // Radius plus half the spacing
	TemplateID      string  `json:"template_id"`
}

// Center returns the circle centre.
func (c PlacedCircle) Center() Point2D {
	return Point2D{X: c.X, Y: c.Y}
}

// PackingResult is the layout of a single container cross-section.
type PackingResult struct {
	Circles                []PlacedCircle `json:"circles"`
	Counts                 map[string]int `json:"counts"`
	TotalWeight            float64        `json:"total_weight"` // kg
	WeightCapacityExceeded bool           `json:"weight_capacity_exceeded"`
	Rounds                 int            `json:"rounds"`
	Truncated              bool           `json:"truncated,omitempty"` // Stopped by the round cap, not by running out of room
	Failure                string         `json:"failure,omitempty"`
}

// Placed returns the number of circles in the layout.
func (pr PackingResult) Placed() int {
	return len(pr.Circles)
}

// FillRatio returns the share of the rectangle covered by bare circle area.
func (pr PackingResult) FillRatio(rect Rectangle) float64 {
	area := rect.Area()
	if area <= 0 {
		return 0
	}
	var used float64
	for _, c := range pr.Circles {
		used += math.Pi * c.Radius * c.Radius
	}
	return used / area
}

// LimitingFactor names the constraint that drives the container count.
type LimitingFactor string

const (
	LimitingNone    LimitingFactor = "none"
	LimitingPacking LimitingFactor = "packing"
	LimitingWeight  LimitingFactor = "weight"
	LimitingBoth    LimitingFactor = "both"
)

// LoadEntry is a quantity of one pipe type loaded in a container.
type LoadEntry struct {
	TemplateID string  `json:"template_id"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Nested     bool    `json:"nested"` // Carried inside the bore of the container's dominant pipe
	Weight     float64 `json:"weight"` // kg
}

// ContainerLoad is the content of one container of a plan.
type ContainerLoad struct {
	Index   int         `json:"index"`
	Entries []LoadEntry `json:"entries"`
	Weight  float64     `json:"weight"` // kg
}

// Pieces returns the total number of pipe units in the container.
func (cl ContainerLoad) Pieces() int {
	total := 0
	for _, e := range cl.Entries {
		total += e.Count
	}
	return total
}

// ContainerPlan is the multi-container allocation for the full order.
type ContainerPlan struct {
	Containers        []ContainerLoad `json:"containers"`
	TotalContainers   int             `json:"total_containers"`
	PackingContainers int             `json:"packing_containers"`
	WeightContainers  int             `json:"weight_containers"`
	LimitingFactor    LimitingFactor  `json:"limiting_factor"`
	Infeasible        bool            `json:"infeasible"`
	InfeasibleIDs     []string        `json:"infeasible_ids,omitempty"`
	TotalWeight       float64         `json:"total_weight"` // kg
	TotalPieces       int             `json:"total_pieces"`
}

// Settings holds the calculation parameters.
type Settings struct {
	MinSpace          float64 `json:"min_space"`           // Clearance between pipe surfaces, cm
	Allowance         float64 `json:"allowance"`           // Radial clearance for nesting, cm
	GridFastPath      bool    `json:"grid_fast_path"`      // Use the row x column formula when spacing is zero
	MaxRounds         int     `json:"max_rounds"`          // Upper bound on packing rounds
	PricePerContainer float64 `json:"price_per_container"` // Freight price per container, 0 = unknown
}

// DefaultMaxRounds bounds the packing loop when settings leave it unset.
const DefaultMaxRounds = 10000

func DefaultSettings() Settings {
	return Settings{
		MinSpace:          0.5,
		Allowance:         0.5,
		GridFastPath:      false,
		MaxRounds:         DefaultMaxRounds,
		PricePerContainer: 0,
	}
}

// Rounds returns MaxRounds, falling back to DefaultMaxRounds when unset.
func (s Settings) Rounds() int {
	if s.MaxRounds <= 0 {
		return DefaultMaxRounds
	}
	return s.MaxRounds
}

// CalculationResult holds everything derived for one project.
type CalculationResult struct {
	Resolutions   []PipeResolution      `json:"resolutions"`
	Relationships []NestingRelationship `json:"relationships"`
	Templates     []PackingTemplate     `json:"templates"`
	Layout        PackingResult         `json:"layout"` // One container loaded round-robin with every template
	Plan          ContainerPlan         `json:"plan"`
	Estimate      LoadEstimate          `json:"estimate"`
	Failure       string                `json:"failure,omitempty"`
}

// TemplateByID returns the template with the given ID, or nil.
func (cr CalculationResult) TemplateByID(id string) *PackingTemplate {
	for i := range cr.Templates {
		if cr.Templates[i].ID == id {
			return &cr.Templates[i]
		}
	}
	return nil
}

// Project ties everything together for save/load.
type Project struct {
	Name      string             `json:"name"`
	Pipes     []Pipe             `json:"pipes"`
	Container Container          `json:"container"`
	Settings  Settings           `json:"settings"`
	Result    *CalculationResult `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:      "Untitled",
		Pipes:     []Pipe{},
		Container: DefaultContainer(),
		Settings:  DefaultSettings(),
	}
}

// FindPipe returns the pipe with the given ID, or nil.
func (p Project) FindPipe(id string) *Pipe {
	for i := range p.Pipes {
		if p.Pipes[i].ID == id {
			return &p.Pipes[i]
		}
	}
	return nil
}
