package routing

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/osmroute/pkg/costfunction"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrPathNotFound  = errors.New("no path found")
	ErrNoNearestNode = errors.New("no road node near the coordinate")
)

type RouteMode uint8

const (
	SHORTEST_DISTANCE RouteMode = iota
	FASTEST_TIME
)

func (m RouteMode) String() string {
	switch m {
	case SHORTEST_DISTANCE:
		return "shortest"
	case FASTEST_TIME:
		return "fastest"
	default:
		return "unknown"
	}
}

func ParseRouteMode(s string) (RouteMode, error) {
	switch s {
	case "shortest", "distance":
		return SHORTEST_DISTANCE, nil
	case "fastest", "time":
		return FASTEST_TIME, nil
	default:
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown route mode %q", s)
	}
}

// Route is a resolved query. Distance in km, TravelTime in hours.
// HasTravelTime is false when some edge on the path has no positive speed limit,
// TravelTime is then 0.
type Route struct {
	Mode          RouteMode
	Path          []geo.Coordinate
	Nodes         []int64
	Distance      float64
	TravelTime    float64
	HasTravelTime bool
	Popped        int
}

type Router struct {
	graph   *da.Graph
	locator spatialindex.NearestNodeLocator
	logger  *zap.Logger
	opts    []SearchOption

	distanceCost *costfunction.DistanceFunction
	timeCost     *costfunction.TimeFunction
	heuristic    *costfunction.GeodesicHeuristic
}

func NewRouter(graph *da.Graph, locator spatialindex.NearestNodeLocator, logger *zap.Logger,
	opts ...SearchOption) *Router {
	return &Router{
		graph:        graph,
		locator:      locator,
		logger:       logger,
		opts:         opts,
		distanceCost: costfunction.NewDistanceCostFunction(graph),
		timeCost:     costfunction.NewTimeCostFunction(graph),
		heuristic:    costfunction.NewGeodesicHeuristic(graph),
	}
}

func (r *Router) GetGraph() *da.Graph {
	return r.graph
}

// ShortestDistanceNodePath. A* with the great-circle heuristic, edge cost = great-circle length in km
func (r *Router) ShortestDistanceNodePath(s, t int64) SearchResult[int64] {
	if s == t {
		return SearchResult[int64]{Path: []int64{s}, Found: true}
	}
	return BestFirstSearch(s, t, r.graph.GetNeighbors, r.distanceCost.GetWeight, r.heuristic.Estimate, r.opts...)
}

// FastestTimeNodePath. uniform-cost search, edge cost = great-circle miles / speed limit
func (r *Router) FastestTimeNodePath(s, t int64) SearchResult[int64] {
	if s == t {
		return SearchResult[int64]{Path: []int64{s}, Found: true}
	}
	return BestFirstSearch(s, t, r.graph.GetNeighbors, r.timeCost.GetWeight, nil, r.opts...)
}

func (r *Router) nodePath(mode RouteMode, s, t int64) SearchResult[int64] {
	if mode == FASTEST_TIME {
		return r.FastestTimeNodePath(s, t)
	}
	return r.ShortestDistanceNodePath(s, t)
}

func (r *Router) ShortestDistancePath(start, end geo.Coordinate) ([]geo.Coordinate, bool) {
	route, err := r.Route(SHORTEST_DISTANCE, start, end)
	if err != nil {
		return nil, false
	}
	return route.Path, true
}

func (r *Router) FastestTimePath(start, end geo.Coordinate) ([]geo.Coordinate, bool) {
	route, err := r.Route(FASTEST_TIME, start, end)
	if err != nil {
		return nil, false
	}
	return route.Path, true
}

// Route snaps start and end to their nearest nodes and runs the query of the given mode.
// a missing node or route is reported as an ErrNotFound coded error.
func (r *Router) Route(mode RouteMode, start, end geo.Coordinate) (*Route, error) {
	s, ok := r.locator.NearestNode(start)
	if !ok {
		return nil, util.WrapErrorf(ErrNoNearestNode, util.ErrNotFound, "snapping origin %v", start)
	}
	t, ok := r.locator.NearestNode(end)
	if !ok {
		return nil, util.WrapErrorf(ErrNoNearestNode, util.ErrNotFound, "snapping destination %v", end)
	}

	sp := r.nodePath(mode, s, t)
	if !sp.Found {
		r.logger.Debug("no path found", zap.Int64("source", s), zap.Int64("target", t),
			zap.String("mode", mode.String()), zap.Int("popped", sp.Popped))
		return nil, util.WrapErrorf(ErrPathNotFound, util.ErrNotFound, "%s path from node %d to node %d", mode, s, t)
	}

	coords, ok := r.graph.PathCoordinates(sp.Path)
	if !ok {
		return nil, util.WrapErrorf(ErrPathNotFound, util.ErrInternalServerError, "path from node %d to node %d touches a node without coordinate", s, t)
	}

	route := &Route{
		Mode:   mode,
		Path:   coords,
		Nodes:  sp.Path,
		Popped: sp.Popped,
	}
	if err := r.fillTotals(route); err != nil {
		return nil, err
	}
	r.logger.Debug("route found", zap.String("mode", mode.String()), zap.Int("nodes", len(sp.Path)),
		zap.Int("popped", sp.Popped), zap.Int("expanded", sp.Expanded))
	return route, nil
}

// fillTotals sums distance and travel time along the node path of route.
func (r *Router) fillTotals(route *Route) error {
	route.HasTravelTime = true
	for i := 1; i < len(route.Nodes); i++ {
		u, v := route.Nodes[i-1], route.Nodes[i]
		dist, ok := r.distanceCost.GetWeight(u, v)
		if !ok {
			return util.WrapErrorf(nil, util.ErrInternalServerError, "edge %d->%d has no length", u, v)
		}
		route.Distance += dist

		if !route.HasTravelTime {
			continue
		}
		eta, ok := r.timeCost.GetWeight(u, v)
		if !ok {
			r.logger.Debug("edge has no travel time", zap.Int64("from", u), zap.Int64("to", v))
			route.HasTravelTime = false
			route.TravelTime = 0
			continue
		}
		route.TravelTime += eta
	}
	return nil
}

// ShortestDistancePath answers a shortest-by-distance query with a linear nearest node scan.
func ShortestDistancePath(graph *da.Graph, start, end geo.Coordinate) ([]geo.Coordinate, bool) {
	return NewRouter(graph, spatialindex.NewLinearLocator(graph), zap.NewNop()).ShortestDistancePath(start, end)
}

// FastestTimePath answers a fastest-by-time query with a linear nearest node scan.
func FastestTimePath(graph *da.Graph, start, end geo.Coordinate) ([]geo.Coordinate, bool) {
	return NewRouter(graph, spatialindex.NewLinearLocator(graph), zap.NewNop()).FastestTimePath(start, end)
}

func (r Route) String() string {
	if !r.HasTravelTime {
		return fmt.Sprintf("%s route: %d nodes, %.3f km, unknown travel time", r.Mode, len(r.Nodes), r.Distance)
	}
	return fmt.Sprintf("%s route: %d nodes, %.3f km, %.4f h", r.Mode, len(r.Nodes), r.Distance, r.TravelTime)
}
