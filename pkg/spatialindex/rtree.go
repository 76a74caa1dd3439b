package spatialindex

import (
	"math"
	"sort"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const maxSearchRounds = 16

// indexedPoint is one entry of the graph coordinate index. pos is its registration order.
type indexedPoint struct {
	coord geo.Coordinate
	id    int64
	pos   int
}

// Rtree answers nearest node queries with an r-tree over the coordinate index.
// results are the same as LinearLocator, including tie breaking.
type Rtree struct {
	tr           *rtree.RTreeG[indexedPoint]
	searchRadius float64
	linear       *LinearLocator
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[indexedPoint]
	return &Rtree{
		tr: &tr,
	}
}

// Build. index every coordinate of the graph as a point. searchRadius (km) is the first radius tried by NearestNode
func (rt *Rtree) Build(graph *datastructure.Graph, searchRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	if searchRadius <= 0 {
		searchRadius = 0.05
	}
	rt.searchRadius = searchRadius
	rt.linear = NewLinearLocator(graph)

	pos := 0
	graph.ForIndexedCoordinates(func(c geo.Coordinate, id int64) bool {
		point := [2]float64{c.Lon, c.Lat}
		rt.tr.Insert(point, point, indexedPoint{coord: c, id: id, pos: pos})
		pos++
		return true
	})

	log.Info("R-tree spatial index built.", zap.Int("points", rt.tr.Len()))
}

// SearchWithinRadius returns the ids of all indexed nodes within radius (km) from (qLat, qLon), in registration order.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []int64 {
	query := geo.NewCoordinate(qLat, qLon)
	candidates, ok := rt.searchBox(query, radius)
	if !ok {
		candidates = rt.all()
	}
	results := make([]indexedPoint, 0, len(candidates))
	for _, p := range candidates {
		if geo.GreatCircleDistance(query, p.coord) <= radius {
			results = append(results, p)
		}
	}
	sortByPos(results)

	ids := make([]int64, len(results))
	for i, p := range results {
		ids[i] = p.id
	}
	return ids
}

// NearestNode doubles the search radius until the closest candidate lies inside the searched circle.
// every point closer than that candidate must then be inside the box too.
func (rt *Rtree) NearestNode(c geo.Coordinate) (int64, bool) {
	if rt.tr.Len() == 0 {
		return 0, false
	}

	radius := rt.searchRadius
	for round := 0; round < maxSearchRounds; round++ {
		candidates, ok := rt.searchBox(c, radius)
		if !ok {
			break
		}
		best, bestDist, found := nearestCandidate(c, candidates)
		if found && bestDist <= radius {
			return best.id, true
		}
		radius *= 2
	}

	return rt.linear.NearestNode(c)
}

func (rt *Rtree) searchBox(c geo.Coordinate, radius float64) ([]indexedPoint, bool) {
	minLat, minLon, maxLat, maxLon, ok := geo.CircleBoundingBox(c.Lat, c.Lon, radius)
	if !ok {
		return nil, false
	}
	candidates := make([]indexedPoint, 0, 16)
	rt.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		func(min, max [2]float64, data indexedPoint) bool {
			candidates = append(candidates, data)
			return true
		})
	return candidates, true
}

func (rt *Rtree) all() []indexedPoint {
	points := make([]indexedPoint, 0, rt.tr.Len())
	rt.tr.Scan(func(min, max [2]float64, data indexedPoint) bool {
		points = append(points, data)
		return true
	})
	return points
}

// nearestCandidate. ties go to the smallest registration position
func nearestCandidate(c geo.Coordinate, candidates []indexedPoint) (indexedPoint, float64, bool) {
	var best indexedPoint
	bestDist := math.Inf(1)
	found := false
	for _, p := range candidates {
		dist := geo.GreatCircleDistance(c, p.coord)
		if !found || dist < bestDist || (dist == bestDist && p.pos < best.pos) {
			best, bestDist, found = p, dist, true
		}
	}
	return best, bestDist, found
}

func sortByPos(points []indexedPoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].pos < points[j].pos
	})
}
