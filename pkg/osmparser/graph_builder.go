package osmparser

import (
	"errors"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

const (
	HIGHWAY      = "highway"
	ONEWAY       = "oneway"
	MAXSPEED     = "maxspeed"
	MAXSPEED_MPH = "maxspeed_mph"
)

// nodeRecord is a graph node under construction. the coordinate is filled by the node pass,
// which may never come for nodes missing from the node stream.
type nodeRecord struct {
	id       int64
	coord    geo.Coordinate
	hasCoord bool
	tags     map[string]string
	outEdges []datastructure.OutEdge
	outIdx   map[int64]int
}

func newNodeRecord(id int64) *nodeRecord {
	return &nodeRecord{
		id:     id,
		outIdx: make(map[int64]int),
	}
}

// setEdge records rec->head. an existing edge to head keeps its position and gets the new speed.
func (rec *nodeRecord) setEdge(head int64, speed float64) {
	if i, ok := rec.outIdx[head]; ok {
		rec.outEdges[i] = datastructure.NewOutEdge(head, speed)
		return
	}
	rec.outIdx[head] = len(rec.outEdges)
	rec.outEdges = append(rec.outEdges, datastructure.NewOutEdge(head, speed))
}

type GraphBuilder struct {
	logger *zap.Logger

	records     map[int64]*nodeRecord
	recordOrder []int64
	index       []datastructure.IndexEntry

	acceptedWays, rejectedWays int
	describedNodes             int
}

func NewGraphBuilder(logger *zap.Logger) *GraphBuilder {
	return &GraphBuilder{
		logger:  logger,
		records: make(map[int64]*nodeRecord),
	}
}

// Build builds the road graph with a no-op logger.
func Build(ways WaySource, nodes NodeSource) (*datastructure.Graph, error) {
	return NewGraphBuilder(zap.NewNop()).Build(ways, nodes)
}

// Build consumes every way, then every node, and returns the immutable road graph.
// only errors coming from the sources are returned; inconsistent map data never fails the build.
func (b *GraphBuilder) Build(ways WaySource, nodes NodeSource) (*datastructure.Graph, error) {
	b.reset()

	err := ways.ScanWays(func(w Way) error {
		b.processWay(w)
		return nil
	})
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "scanning ways")
	}

	err = nodes.ScanNodes(func(n Node) error {
		b.processNode(n)
		return nil
	})
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, "scanning nodes")
	}

	graph := b.finalize()

	b.logger.Sugar().Infof("accepted ways: %d, rejected ways: %d", b.acceptedWays, b.rejectedWays)
	b.logger.Info("road graph built",
		zap.Int("nodes", graph.NumberOfNodes()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("indexed_nodes", graph.NumberOfIndexedNodes()),
		zap.Int("nodes_without_coordinate", graph.NumberOfNodes()-b.describedNodes),
	)
	return graph, nil
}

func (b *GraphBuilder) reset() {
	b.records = make(map[int64]*nodeRecord)
	b.recordOrder = b.recordOrder[:0]
	b.index = b.index[:0]
	b.acceptedWays, b.rejectedWays, b.describedNodes = 0, 0, 0
}

func (b *GraphBuilder) record(id int64) *nodeRecord {
	rec, ok := b.records[id]
	if !ok {
		rec = newNodeRecord(id)
		b.records[id] = rec
		b.recordOrder = append(b.recordOrder, id)
	}
	return rec
}

func (b *GraphBuilder) processWay(w Way) {
	if !acceptOsmWay(w) {
		b.rejectedWays++
		return
	}
	b.acceptedWays++

	speed := b.resolveSpeedLimit(w)

	for i, nodeID := range w.Nodes {
		rec := b.record(nodeID)
		if i > 0 {
			b.record(w.Nodes[i-1]).setEdge(rec.id, speed)
		}
	}

	if w.Tags[ONEWAY] == "yes" {
		return
	}
	for i := len(w.Nodes) - 1; i > 0; i-- {
		b.record(w.Nodes[i]).setEdge(w.Nodes[i-1], speed)
	}
}

func (b *GraphBuilder) processNode(n Node) {
	rec, ok := b.records[n.ID]
	if !ok {
		// not part of any accepted way
		return
	}
	if !rec.hasCoord {
		b.describedNodes++
	}
	rec.coord = geo.NewCoordinate(n.Lat, n.Lon)
	rec.hasCoord = true
	rec.tags = make(map[string]string, len(n.Tags))
	for k, v := range n.Tags {
		rec.tags[k] = v
	}
	b.index = append(b.index, datastructure.IndexEntry{Coord: rec.coord, ID: n.ID})
}

func (b *GraphBuilder) finalize() *datastructure.Graph {
	nodes := make([]*datastructure.Node, 0, len(b.recordOrder))
	for _, id := range b.recordOrder {
		rec := b.records[id]
		nodes = append(nodes, datastructure.NewNode(rec.id, rec.coord, rec.hasCoord, rec.tags, rec.outEdges))
	}
	return datastructure.NewGraph(nodes, b.index)
}

func acceptOsmWay(w Way) bool {
	return pkg.IsAllowedHighway(w.Tags[HIGHWAY])
}

// resolveSpeedLimit returns the way speed limit in mph: maxspeed_mph, then maxspeed, then the highway default.
func (b *GraphBuilder) resolveSpeedLimit(w Way) float64 {
	if val, ok := w.Tags[MAXSPEED_MPH]; ok {
		speed, err := util.StringToFloat64(val)
		if err == nil && speed > 0 {
			return speed
		}
		b.logger.Debug("invalid maxspeed_mph tag", zap.Int64("way_id", w.ID), zap.String("value", val))
	}

	if val, ok := w.Tags[MAXSPEED]; ok {
		speed, err := parseMaxSpeed(val)
		if err == nil {
			return speed
		}
		b.logger.Debug("invalid maxspeed tag", zap.Int64("way_id", w.ID), zap.String("value", val), zap.Error(err))
	}

	speed, _ := pkg.DefaultSpeedLimitMph(w.Tags[HIGHWAY])
	return speed
}

var errInvalidMaxSpeed = errors.New("invalid maxspeed")

// parseMaxSpeed parses an osm maxspeed value into mph. values without unit are km/h.
// https://wiki.openstreetmap.org/wiki/Key:maxspeed
func parseMaxSpeed(value string) (float64, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	factor := pkg.KMH_TO_MPH
	for _, unit := range []struct {
		suffix string
		factor float64
	}{
		{"mph", 1},
		{"km/h", pkg.KMH_TO_MPH},
		{"kmh", pkg.KMH_TO_MPH},
		{"kph", pkg.KMH_TO_MPH},
		{"knots", pkg.KNOT_TO_MPH},
	} {
		if strings.HasSuffix(value, unit.suffix) {
			value = strings.TrimSpace(strings.TrimSuffix(value, unit.suffix))
			factor = unit.factor
			break
		}
	}

	speed, err := util.StringToFloat64(value)
	if err != nil || speed <= 0 {
		return 0, errInvalidMaxSpeed
	}
	return speed * factor, nil
}
