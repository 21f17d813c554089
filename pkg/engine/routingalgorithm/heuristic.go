package routingalgorithm

import (
	"lintang/gridnav/pkg/datastructure"
)

// Heuristic estimasi sisa cost dari `from` ke `to`. minCost = cost tile termurah di grid.
type Heuristic interface {
	Estimate(from, to datastructure.Coordinate, minCost float64) float64
	Name() string
}

// ManhattanHeuristic minCost * (manhattan(from, to) - Offset).
// Offset 1 sama dengan perilaku asli; estimasi di goal sendiri jadi -minCost.
type ManhattanHeuristic struct {
	Offset float64
}

func DefaultHeuristic() ManhattanHeuristic {
	return ManhattanHeuristic{Offset: 1}
}

func (h ManhattanHeuristic) Estimate(from, to datastructure.Coordinate, minCost float64) float64 {
	return minCost * (float64(from.ManhattanDistance(to)) - h.Offset)
}

func (h ManhattanHeuristic) Name() string {
	return "manhattan"
}

// UniformCostHeuristic selalu 0, search jadi uniform-cost (dijkstra).
type UniformCostHeuristic struct{}

func (UniformCostHeuristic) Estimate(_, _ datastructure.Coordinate, _ float64) float64 {
	return 0
}

func (UniformCostHeuristic) Name() string {
	return "uniform-cost"
}
