package usecases

import (
	"errors"

	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	graph        CoordinateLookup
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	graph CoordinateLookup) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		graph:        graph,
	}
}

func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (*routing.Route, string, error) {
	return rs.route(routing.SHORTEST_DISTANCE, origLat, origLon, dstLat, dstLon)
}

func (rs *RoutingService) FastestPath(origLat, origLon, dstLat, dstLon float64) (*routing.Route, string, error) {
	return rs.route(routing.FASTEST_TIME, origLat, origLon, dstLat, dstLon)
}

func (rs *RoutingService) route(mode routing.RouteMode, origLat, origLon, dstLat, dstLon float64) (*routing.Route, string, error) {
	route, err := rs.engine.Route(mode, geo.NewCoordinate(origLat, origLon), geo.NewCoordinate(dstLat, dstLon))
	if err != nil {
		if errors.Is(err, routing.ErrPathNotFound) {
			rs.log.Info("no path found", zap.String("mode", mode.String()),
				zap.Float64("origin_lat", origLat), zap.Float64("origin_lon", origLon),
				zap.Float64("destination_lat", dstLat), zap.Float64("destination_lon", dstLon))
		}
		return nil, "", err
	}

	pathPolyline := geo.PolylineFromCoords(route.Path)
	return route, pathPolyline, nil
}

func (rs *RoutingService) NearestNode(lat, lon float64) (int64, geo.Coordinate, error) {
	id, ok := rs.spatialIndex.NearestNode(geo.NewCoordinate(lat, lon))
	if !ok {
		return 0, geo.Coordinate{}, util.WrapErrorf(routing.ErrNoNearestNode, util.ErrNotFound, "nearest node of %f,%f", lat, lon)
	}
	coord, ok := rs.graph.GetCoordinate(id)
	if !ok {
		return 0, geo.Coordinate{}, util.WrapErrorf(nil, util.ErrInternalServerError, "node %d has no coordinate", id)
	}
	return id, coord, nil
}
