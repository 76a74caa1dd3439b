package costfunction

import "github.com/lintang-b-s/osmroute/pkg/geo"

// RoadGraph is the part of datastructure.Graph the cost functions read.
type RoadGraph interface {
	GetCoordinate(id int64) (geo.Coordinate, bool)
	GetSpeedLimit(u, v int64) (float64, bool)
}

// CostFunction returns the cost of edge u->v. false means no cost is computable
// and the edge must be treated as absent.
type CostFunction interface {
	GetWeight(u, v int64) (float64, bool)
}

// Heuristic estimates the remaining cost from u to goal. it must never overestimate.
type Heuristic interface {
	Estimate(u, goal int64) float64
}

func endpoints(g RoadGraph, u, v int64) (geo.Coordinate, geo.Coordinate, bool) {
	cu, ok := g.GetCoordinate(u)
	if !ok {
		return geo.Coordinate{}, geo.Coordinate{}, false
	}
	cv, ok := g.GetCoordinate(v)
	if !ok {
		return geo.Coordinate{}, geo.Coordinate{}, false
	}
	return cu, cv, true
}
