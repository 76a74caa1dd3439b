package datastructure

import (
	"testing"

	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphCoordinateIndexLastWriteWins(t *testing.T) {
	shared := geo.NewCoordinate(1, 1)
	nodes := []*Node{
		NewNode(1, shared, true, nil, []OutEdge{NewOutEdge(2, 25)}),
		NewNode(2, geo.NewCoordinate(2, 2), true, nil, []OutEdge{NewOutEdge(1, 25), NewOutEdge(3, 25)}),
		NewNode(3, shared, true, nil, nil),
	}
	g := NewGraph(nodes, []IndexEntry{
		{Coord: shared, ID: 1},
		{Coord: geo.NewCoordinate(2, 2), ID: 2},
		{Coord: shared, ID: 3},
	})

	id, ok := g.LookupCoordinate(shared)
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
	assert.Equal(t, 2, g.NumberOfIndexedNodes())
	assert.Equal(t, 3, g.NumberOfNodes())
	assert.Equal(t, 3, g.NumberOfEdges())

	var order []int64
	g.ForIndexedCoordinates(func(c geo.Coordinate, id int64) bool {
		order = append(order, id)
		return true
	})
	// the shared coordinate keeps its first position but maps to the last writer
	assert.Equal(t, []int64{3, 2}, order)
}

func TestGraphAccessors(t *testing.T) {
	nodes := []*Node{
		NewNode(1, geo.NewCoordinate(0, 0), true, map[string]string{"name": "a"}, []OutEdge{NewOutEdge(2, 30), NewOutEdge(9, 30)}),
		NewNode(2, geo.NewCoordinate(0, 1), true, nil, nil),
		NewNode(9, geo.Coordinate{}, false, nil, nil),
	}
	g := NewGraph(nodes, []IndexEntry{
		{Coord: geo.NewCoordinate(0, 0), ID: 1},
		{Coord: geo.NewCoordinate(0, 1), ID: 2},
	})

	assert.Equal(t, []int64{2, 9}, g.GetNeighbors(1))
	assert.Nil(t, g.GetNeighbors(42))

	w, ok := g.GetSpeedLimit(1, 2)
	require.True(t, ok)
	assert.Equal(t, 30.0, w)
	assert.False(t, g.HasEdge(2, 1))

	_, ok = g.GetCoordinate(9)
	assert.False(t, ok, "node 9 never received a coordinate")

	n, ok := g.GetNode(1)
	require.True(t, ok)
	assert.Equal(t, "a", n.GetTags()["name"])

	_, ok = g.PathCoordinates([]int64{1, 9})
	assert.False(t, ok)
	coords, ok := g.PathCoordinates([]int64{1, 2})
	require.True(t, ok)
	assert.Equal(t, []geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1)}, coords)

	bb := g.BoundingBox()
	require.NotNil(t, bb)
	assert.True(t, bb.Contains(geo.NewCoordinate(0, 0.5)))
	assert.False(t, bb.Contains(geo.NewCoordinate(1, 0.5)))
}

func TestEmptyGraph(t *testing.T) {
	g := NewGraph(nil, nil)
	assert.Nil(t, g.BoundingBox())
	assert.Equal(t, 0, g.NumberOfIndexedNodes())
}
