package costfunction

import "github.com/lintang-b-s/osmroute/pkg/geo"

// DistanceFunction. great-circle length of u->v in km. the stored speed limit is not read.
type DistanceFunction struct {
	graph RoadGraph
}

func NewDistanceCostFunction(graph RoadGraph) *DistanceFunction {
	return &DistanceFunction{graph: graph}
}

func (df *DistanceFunction) GetWeight(u, v int64) (float64, bool) {
	cu, cv, ok := endpoints(df.graph, u, v)
	if !ok {
		return 0, false
	}
	return geo.GreatCircleDistance(cu, cv), true
}

// GeodesicHeuristic. straight line km from u to goal, admissible for DistanceFunction.
type GeodesicHeuristic struct {
	graph RoadGraph
}

func NewGeodesicHeuristic(graph RoadGraph) *GeodesicHeuristic {
	return &GeodesicHeuristic{graph: graph}
}

// Estimate returns 0 when a coordinate is missing, which keeps the estimate admissible.
func (h *GeodesicHeuristic) Estimate(u, goal int64) float64 {
	cu, cg, ok := endpoints(h.graph, u, goal)
	if !ok {
		return 0
	}
	return geo.GreatCircleDistance(cu, cg)
}
