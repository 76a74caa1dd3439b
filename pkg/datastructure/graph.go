package datastructure

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg/geo"
)

// OutEdge is a directed road segment u->head. speedLimit in mph
type OutEdge struct {
	head       int64
	speedLimit float64
}

func NewOutEdge(head int64, speedLimit float64) OutEdge {
	return OutEdge{head: head, speedLimit: speedLimit}
}

func (e OutEdge) GetHead() int64 {
	return e.head
}

func (e OutEdge) GetSpeedLimit() float64 {
	return e.speedLimit
}

type Node struct {
	id       int64
	coord    geo.Coordinate
	hasCoord bool
	tags     map[string]string
	outEdges []OutEdge
	outIdx   map[int64]int // head -> position in outEdges
}

// NewNode. outEdges must not contain two edges with the same head.
func NewNode(id int64, coord geo.Coordinate, hasCoord bool, tags map[string]string, outEdges []OutEdge) *Node {
	if tags == nil {
		tags = make(map[string]string)
	}
	outIdx := make(map[int64]int, len(outEdges))
	for i, e := range outEdges {
		outIdx[e.head] = i
	}
	return &Node{
		id:       id,
		coord:    coord,
		hasCoord: hasCoord,
		tags:     tags,
		outEdges: outEdges,
		outIdx:   outIdx,
	}
}

func (n *Node) GetID() int64 {
	return n.id
}

// GetCoordinate. false if the node never appeared in the node stream
func (n *Node) GetCoordinate() (geo.Coordinate, bool) {
	return n.coord, n.hasCoord
}

func (n *Node) GetTags() map[string]string {
	return n.tags
}

func (n *Node) GetOutEdges() []OutEdge {
	return n.outEdges
}

func (n *Node) GetOutDegree() int {
	return len(n.outEdges)
}

// IndexEntry is one coordinate registration, in the order the builder made it.
type IndexEntry struct {
	Coord geo.Coordinate
	ID    int64
}

// Graph is the routable road graph. it is never mutated after NewGraph returns,
// so it can be shared between concurrent queries.
type Graph struct {
	nodes         map[int64]*Node
	nodeOrder     []int64
	coordIndex    map[geo.Coordinate]int64
	indexedCoords []geo.Coordinate
	numEdges      int
	boundingBox   *BoundingBox
}

// NewGraph. nodes keep the given order. index entries are applied in order: when two
// entries share a coordinate the later id wins, but the coordinate keeps the
// position of its first registration.
func NewGraph(nodes []*Node, index []IndexEntry) *Graph {
	g := &Graph{
		nodes:         make(map[int64]*Node, len(nodes)),
		nodeOrder:     make([]int64, 0, len(nodes)),
		coordIndex:    make(map[geo.Coordinate]int64, len(index)),
		indexedCoords: make([]geo.Coordinate, 0, len(index)),
	}

	for _, n := range nodes {
		if _, ok := g.nodes[n.id]; !ok {
			g.nodeOrder = append(g.nodeOrder, n.id)
		} else {
			g.numEdges -= len(g.nodes[n.id].outEdges)
		}
		g.nodes[n.id] = n
		g.numEdges += len(n.outEdges)
	}

	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, entry := range index {
		if _, ok := g.coordIndex[entry.Coord]; !ok {
			g.indexedCoords = append(g.indexedCoords, entry.Coord)
		}
		g.coordIndex[entry.Coord] = entry.ID

		minLat = math.Min(minLat, entry.Coord.Lat)
		minLon = math.Min(minLon, entry.Coord.Lon)
		maxLat = math.Max(maxLat, entry.Coord.Lat)
		maxLon = math.Max(maxLon, entry.Coord.Lon)
	}
	if len(index) > 0 {
		g.boundingBox = NewBoundingBox(minLat, minLon, maxLat, maxLon)
	}

	return g
}

func (g *Graph) GetNode(id int64) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) GetCoordinate(id int64) (geo.Coordinate, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return geo.Coordinate{}, false
	}
	return n.GetCoordinate()
}

func (g *Graph) GetOutEdges(id int64) []OutEdge {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.outEdges
}

// GetNeighbors returns the heads of the out edges of id, in edge insertion order.
func (g *Graph) GetNeighbors(id int64) []int64 {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	neighbors := make([]int64, len(n.outEdges))
	for i, e := range n.outEdges {
		neighbors[i] = e.head
	}
	return neighbors
}

// GetSpeedLimit returns the weight of edge u->v.
func (g *Graph) GetSpeedLimit(u, v int64) (float64, bool) {
	n, ok := g.nodes[u]
	if !ok {
		return 0, false
	}
	i, ok := n.outIdx[v]
	if !ok {
		return 0, false
	}
	return n.outEdges[i].speedLimit, true
}

func (g *Graph) HasEdge(u, v int64) bool {
	_, ok := g.GetSpeedLimit(u, v)
	return ok
}

// LookupCoordinate returns the node registered for exactly c.
func (g *Graph) LookupCoordinate(c geo.Coordinate) (int64, bool) {
	id, ok := g.coordIndex[c]
	return id, ok
}

// ForIndexedCoordinates visits the coordinate index in registration order. stops when fn returns false.
func (g *Graph) ForIndexedCoordinates(fn func(c geo.Coordinate, id int64) bool) {
	for _, c := range g.indexedCoords {
		if !fn(c, g.coordIndex[c]) {
			return
		}
	}
}

// ForNodes visits every node in build order.
func (g *Graph) ForNodes(fn func(n *Node)) {
	for _, id := range g.nodeOrder {
		fn(g.nodes[id])
	}
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return g.numEdges
}

func (g *Graph) NumberOfIndexedNodes() int {
	return len(g.indexedCoords)
}

// BoundingBox of the indexed coordinates. nil for an empty index
func (g *Graph) BoundingBox() *BoundingBox {
	return g.boundingBox
}

// PathCoordinates maps a node path to coordinates. false if a node has no coordinate.
func (g *Graph) PathCoordinates(path []int64) ([]geo.Coordinate, bool) {
	coords := make([]geo.Coordinate, 0, len(path))
	for _, id := range path {
		c, ok := g.GetCoordinate(id)
		if !ok {
			return nil, false
		}
		coords = append(coords, c)
	}
	return coords, true
}
