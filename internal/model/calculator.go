package model

import "math"

// LoadEstimate holds a quick volume-based sanity check next to the
// geometric plan, plus the freight cost.
type LoadEstimate struct {
	TotalPieces         int     `json:"total_pieces"`
	TotalWeight         float64 `json:"total_weight"`          // kg
	BoundingVolume      float64 `json:"bounding_volume"`       // Σ d² × length over units that need own floor space, cm³
	ContainerVolume     float64 `json:"container_volume"`      // cm³
	ContainersByVolume  float64 `json:"containers_by_volume"`  // Exact fractional lower bound
	MinContainersVolume int     `json:"min_containers_volume"` // Ceiling of the above
	ContainersPlanned   int     `json:"containers_planned"`
	VolumeUtilization   float64 `json:"volume_utilization"` // Percent of the planned volume filled by bounding squares
	PricePerContainer   float64 `json:"price_per_container"`
	EstimatedCost       float64 `json:"estimated_cost"`
}

// CalculateLoadEstimate derives the volume lower bound for an order and prices
// the planned container count. Every unit is counted as the square prism
// bounding its circle; units of pipes in nested (given by ID) only count for
// the pieces that exceed the demand of the outer pipe hosting them.
func CalculateLoadEstimate(pipes []Pipe, nestedIn map[string]string, container Container, planned int, pricePerContainer float64) LoadEstimate {
	est := LoadEstimate{
		ContainerVolume:   container.Volume(),
		ContainersPlanned: planned,
		PricePerContainer: pricePerContainer,
		EstimatedCost:     float64(planned) * pricePerContainer,
	}

	pieces := make(map[string]int, len(pipes))
	for _, p := range pipes {
		pieces[p.ID] = p.PieceCount()
	}

	for _, p := range pipes {
		n := pieces[p.ID]
		est.TotalPieces += n
		est.TotalWeight += float64(n) * p.UnitWeight()

		own := n
		if outer, ok := nestedIn[p.ID]; ok {
			own = n - pieces[outer]
		}
		if own > 0 {
			est.BoundingVolume += float64(own) * p.ExternalDiameter * p.ExternalDiameter * p.Length
		}
	}

	if est.ContainerVolume <= 0 {
		return est
	}
	est.ContainersByVolume = est.BoundingVolume / est.ContainerVolume
	est.MinContainersVolume = int(math.Ceil(est.ContainersByVolume))
	if planned > 0 {
		est.VolumeUtilization = est.BoundingVolume / (est.ContainerVolume * float64(planned)) * 100
	}
	return est
}
