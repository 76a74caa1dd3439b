package costfunction

import "github.com/lintang-b-s/osmroute/pkg/geo"

// TimeFunction. travel time of u->v in hours: great-circle miles / speed limit (mph) of the edge.
type TimeFunction struct {
	graph RoadGraph
}

func NewTimeCostFunction(graph RoadGraph) *TimeFunction {
	return &TimeFunction{graph: graph}
}

func (tf *TimeFunction) GetWeight(u, v int64) (float64, bool) {
	speed, ok := tf.graph.GetSpeedLimit(u, v)
	if !ok || speed <= 0 {
		return 0, false
	}
	cu, cv, ok := endpoints(tf.graph, u, v)
	if !ok {
		return 0, false
	}
	return geo.GreatCircleDistanceMiles(cu, cv) / speed, true
}
