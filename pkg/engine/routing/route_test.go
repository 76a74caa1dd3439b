package routing

import (
	"math/rand"
	"testing"

	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	coordA = geo.NewCoordinate(0, 0)
	coordB = geo.NewCoordinate(0, 0.01)
	coordC = geo.NewCoordinate(-0.01, 0.01)
	coordD = geo.NewCoordinate(-0.01, 0)
)

func osmNode(id int64, c geo.Coordinate) osmparser.Node {
	return osmparser.Node{ID: id, Lat: c.Lat, Lon: c.Lon}
}

func osmWay(id int64, tags map[string]string, nodes ...int64) osmparser.Way {
	return osmparser.Way{ID: id, Nodes: nodes, Tags: tags}
}

func buildGraph(t *testing.T, ways []osmparser.Way, nodes []osmparser.Node) *da.Graph {
	t.Helper()
	records := osmparser.NewRecords(ways, nodes)
	g, err := osmparser.Build(records, records)
	require.NoError(t, err)
	return g
}

// A -> B -> C -> D -> A, one way
func clockwiseSquare(t *testing.T) *da.Graph {
	nodes := []osmparser.Node{osmNode(1, coordA), osmNode(2, coordB), osmNode(3, coordC), osmNode(4, coordD)}
	ways := []osmparser.Way{osmWay(1, map[string]string{"highway": "residential", "oneway": "yes"}, 1, 2, 3, 4, 1)}
	return buildGraph(t, ways, nodes)
}

func TestFastestTimePathFollowsOneWayLoop(t *testing.T) {
	g := clockwiseSquare(t)

	path, ok := FastestTimePath(g, coordA, coordC)
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{coordA, coordB, coordC}, path)

	path, ok = FastestTimePath(g, coordC, coordA)
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{coordC, coordD, coordA}, path)

	path, ok = ShortestDistancePath(g, coordB, coordA)
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{coordB, coordC, coordD, coordA}, path)
}

func TestPathQueriesSnapToNearestNode(t *testing.T) {
	g := clockwiseSquare(t)

	path, ok := ShortestDistancePath(g, geo.NewCoordinate(0.0001, -0.0001), geo.NewCoordinate(-0.0099, 0.0102))
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{coordA, coordB, coordC}, path)

	// both ends snap to A
	path, ok = FastestTimePath(g, geo.NewCoordinate(0.001, 0.001), geo.NewCoordinate(0.002, -0.001))
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{coordA}, path)
}

func TestPathQueriesNotFound(t *testing.T) {
	nodes := []osmparser.Node{osmNode(1, coordA), osmNode(2, coordB), osmNode(3, geo.NewCoordinate(1, 1)), osmNode(4, geo.NewCoordinate(1, 1.01))}
	ways := []osmparser.Way{
		osmWay(1, map[string]string{"highway": "primary"}, 1, 2),
		osmWay(2, map[string]string{"highway": "primary"}, 3, 4),
	}
	g := buildGraph(t, ways, nodes)

	_, ok := ShortestDistancePath(g, coordA, geo.NewCoordinate(1, 1.01))
	assert.False(t, ok)
	_, ok = FastestTimePath(g, coordA, geo.NewCoordinate(1, 1.01))
	assert.False(t, ok)

	router := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop())
	_, err := router.Route(SHORTEST_DISTANCE, coordA, geo.NewCoordinate(1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.ErrorIs(t, err, util.ErrNotFound)

	empty := da.NewGraph(nil, nil)
	_, ok = ShortestDistancePath(empty, coordA, coordB)
	assert.False(t, ok)
	_, err = NewRouter(empty, spatialindex.NewLinearLocator(empty), zap.NewNop()).Route(FASTEST_TIME, coordA, coordB)
	assert.ErrorIs(t, err, ErrNoNearestNode)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestPathAvoidsNodesWithoutCoordinate(t *testing.T) {
	// node 3 sits on the straight line but is missing from the node stream
	nodes := []osmparser.Node{osmNode(1, coordA), osmNode(2, coordB), osmNode(4, geo.NewCoordinate(0.004, 0.005))}
	ways := []osmparser.Way{
		osmWay(1, map[string]string{"highway": "residential"}, 1, 3, 2),
		osmWay(2, map[string]string{"highway": "residential"}, 1, 4, 2),
	}
	g := buildGraph(t, ways, nodes)
	require.True(t, g.HasNode(3))

	router := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop())
	for _, mode := range []RouteMode{SHORTEST_DISTANCE, FASTEST_TIME} {
		route, err := router.Route(mode, coordA, coordB)
		require.NoError(t, err, mode.String())
		assert.Equal(t, []int64{1, 4, 2}, route.Nodes, mode.String())
	}
}

func TestShortestAndFastestDiffer(t *testing.T) {
	s := geo.NewCoordinate(0, 0)
	m := geo.NewCoordinate(0.001, 0.01)
	n := geo.NewCoordinate(0.01, 0.01)
	e := geo.NewCoordinate(0, 0.02)
	nodes := []osmparser.Node{osmNode(1, s), osmNode(2, m), osmNode(3, n), osmNode(4, e)}
	ways := []osmparser.Way{
		osmWay(1, map[string]string{"highway": "living_street"}, 1, 2, 4),
		osmWay(2, map[string]string{"highway": "motorway"}, 1, 3, 4),
	}
	g := buildGraph(t, ways, nodes)
	router := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop())

	shortest, err := router.Route(SHORTEST_DISTANCE, s, e)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 4}, shortest.Nodes)
	assert.Equal(t, []geo.Coordinate{s, m, e}, shortest.Path)

	fastest, err := router.Route(FASTEST_TIME, s, e)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 4}, fastest.Nodes)

	assert.Less(t, shortest.Distance, fastest.Distance)
	assert.Less(t, fastest.TravelTime, shortest.TravelTime)

	wantDist := geo.GreatCircleDistance(s, m) + geo.GreatCircleDistance(m, e)
	assert.InDelta(t, wantDist, shortest.Distance, 1e-9)
	assert.InDelta(t, wantDist/1.609344/10, shortest.TravelTime, 1e-9)
	assert.True(t, shortest.HasTravelTime)
	assert.True(t, fastest.HasTravelTime)
}

func TestNodePathShortCircuit(t *testing.T) {
	g := clockwiseSquare(t)
	router := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop())

	sc := router.ShortestDistanceNodePath(2, 2)
	full := BestFirstSearch(int64(2), int64(2), g.GetNeighbors, router.distanceCost.GetWeight, router.heuristic.Estimate)
	assert.Equal(t, []int64{2}, sc.Path)
	assert.Equal(t, sc.Path, full.Path)
	assert.True(t, full.Found)

	assert.Equal(t, []int64{3}, router.FastestTimeNodePath(3, 3).Path)
}

// 1 -> 2 has a stored speed limit of 0, 2 -> 3 is a normal road
func zeroSpeedGraph() *da.Graph {
	nodes := []*da.Node{
		da.NewNode(1, coordA, true, nil, []da.OutEdge{da.NewOutEdge(2, 0)}),
		da.NewNode(2, coordB, true, nil, []da.OutEdge{da.NewOutEdge(3, 30)}),
		da.NewNode(3, coordC, true, nil, nil),
	}
	return da.NewGraph(nodes, []da.IndexEntry{{Coord: coordA, ID: 1}, {Coord: coordB, ID: 2}, {Coord: coordC, ID: 3}})
}

func TestShortestDistancePathIgnoresSpeedLimit(t *testing.T) {
	g := zeroSpeedGraph()

	sp := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop()).ShortestDistanceNodePath(1, 3)
	require.True(t, sp.Found)
	assert.Equal(t, []int64{1, 2, 3}, sp.Path)

	path, ok := ShortestDistancePath(g, coordA, coordC)
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{coordA, coordB, coordC}, path)

	route, err := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop()).Route(SHORTEST_DISTANCE, coordA, coordC)
	require.NoError(t, err)
	assert.False(t, route.HasTravelTime)
	assert.Zero(t, route.TravelTime)
	assert.InDelta(t, geo.GreatCircleDistance(coordA, coordB)+geo.GreatCircleDistance(coordB, coordC), route.Distance, 1e-9)
	assert.Contains(t, route.String(), "unknown travel time")

	// the zero speed edge has no time cost, so there is no fastest route
	_, ok = FastestTimePath(g, coordA, coordC)
	assert.False(t, ok)
	path, ok = FastestTimePath(g, coordB, coordC)
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{coordB, coordC}, path)
}

// randomRoadGraph builds a grid of n*n nodes with random residential and oneway primary ways.
func randomRoadGraph(t *testing.T, rd *rand.Rand, n int) *da.Graph {
	nodes := make([]osmparser.Node, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			id := int64(i*n + j + 1)
			nodes = append(nodes, osmparser.Node{ID: id, Lat: float64(i)*0.001 + rd.Float64()*0.0005, Lon: float64(j)*0.001 + rd.Float64()*0.0005})
		}
	}
	classes := []string{"residential", "primary", "motorway", "living_street", "tertiary_link"}
	ways := make([]osmparser.Way, 0)
	wayID := int64(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			u := int64(i*n + j + 1)
			for _, v := range []int64{u + 1, u + int64(n)} {
				if (v == u+1 && j == n-1) || v > int64(n*n) || rd.Float64() < 0.2 {
					continue
				}
				tags := map[string]string{"highway": classes[rd.Intn(len(classes))]}
				if rd.Float64() < 0.3 {
					tags["oneway"] = "yes"
				}
				ways = append(ways, osmWay(wayID, tags, u, v))
				wayID++
			}
		}
	}
	return buildGraph(t, ways, nodes)
}

func TestHeuristicPreservesOptimality(t *testing.T) {
	rd := rand.New(rand.NewSource(11))
	g := randomRoadGraph(t, rd, 8)
	router := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop())

	for q := 0; q < 100; q++ {
		s, goal := int64(rd.Intn(64)+1), int64(rd.Intn(64)+1)
		if !g.HasNode(s) || !g.HasNode(goal) {
			continue
		}
		astar := router.ShortestDistanceNodePath(s, goal)
		ucs := BestFirstSearch(s, goal, g.GetNeighbors, router.distanceCost.GetWeight, nil)
		linear := BestFirstSearch(s, goal, g.GetNeighbors, router.distanceCost.GetWeight, router.heuristic.Estimate, WithLinearFrontier())

		require.Equal(t, ucs.Found, astar.Found)
		require.Equal(t, ucs.Found, linear.Found)
		if !ucs.Found {
			continue
		}
		assert.InDelta(t, ucs.Cost, astar.Cost, 1e-9)
		assert.Equal(t, astar.Path, linear.Path)
	}
}

func TestShortestDistanceMatchesBruteForce(t *testing.T) {
	rd := rand.New(rand.NewSource(5))
	for iter := 0; iter < 30; iter++ {
		g := randomRoadGraph(t, rd, 3)
		router := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop())

		// same graph with explicit distance weights
		tg := make(testGraph)
		g.ForNodes(func(n *da.Node) {
			for _, e := range n.GetOutEdges() {
				w, ok := router.distanceCost.GetWeight(n.GetID(), e.GetHead())
				require.True(t, ok)
				tg[int(n.GetID())] = append(tg[int(n.GetID())], weightedEdge{to: int(e.GetHead()), weight: w})
			}
		})

		for s := int64(1); s <= 9; s++ {
			for goal := int64(1); goal <= 9; goal++ {
				if !g.HasNode(s) || !g.HasNode(goal) {
					continue
				}
				want := tg.bruteForce(int(s), int(goal))
				got := router.ShortestDistanceNodePath(s, goal)
				if !got.Found {
					assert.True(t, want > 1e18, "%d -> %d should be unreachable", s, goal)
					continue
				}
				assert.InDelta(t, want, got.Cost, 1e-9, "%d -> %d", s, goal)
			}
		}
	}
}

func TestRouterWithRtreeLocator(t *testing.T) {
	rd := rand.New(rand.NewSource(21))
	g := randomRoadGraph(t, rd, 6)
	rt := spatialindex.NewRtree()
	rt.Build(g, 0.01, zap.NewNop())

	linear := NewRouter(g, spatialindex.NewLinearLocator(g), zap.NewNop())
	indexed := NewRouter(g, rt, zap.NewNop())
	for q := 0; q < 30; q++ {
		a := geo.NewCoordinate(rd.Float64()*0.006, rd.Float64()*0.006)
		b := geo.NewCoordinate(rd.Float64()*0.006, rd.Float64()*0.006)
		want, wantOk := linear.FastestTimePath(a, b)
		got, gotOk := indexed.FastestTimePath(a, b)
		assert.Equal(t, wantOk, gotOk)
		assert.Equal(t, want, got)
	}
}

func TestParseRouteMode(t *testing.T) {
	m, err := ParseRouteMode("fastest")
	require.NoError(t, err)
	assert.Equal(t, FASTEST_TIME, m)
	m, err = ParseRouteMode("distance")
	require.NoError(t, err)
	assert.Equal(t, SHORTEST_DISTANCE, m)

	_, err = ParseRouteMode("scenic")
	assert.ErrorIs(t, err, util.ErrBadParamInput)
}
