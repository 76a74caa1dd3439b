package spatialindex

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

// LinearLocator finds the nearest node by scanning the whole coordinate index.
type LinearLocator struct {
	graph *datastructure.Graph
}

func NewLinearLocator(graph *datastructure.Graph) *LinearLocator {
	return &LinearLocator{graph: graph}
}

// NearestNode returns the indexed node closest to c by great-circle distance. ties go to the
// coordinate registered first. false only when the index is empty.
func (l *LinearLocator) NearestNode(c geo.Coordinate) (int64, bool) {
	minDist := math.Inf(1)
	var (
		nearest int64
		found   bool
	)
	l.graph.ForIndexedCoordinates(func(nc geo.Coordinate, id int64) bool {
		dist := geo.GreatCircleDistance(c, nc)
		if !found || dist < minDist {
			minDist = dist
			nearest = id
			found = true
		}
		return true
	})
	return nearest, found
}
