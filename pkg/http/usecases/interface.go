package usecases

import (
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type RoutingEngine interface {
	Route(mode routing.RouteMode, start, end geo.Coordinate) (*routing.Route, error)
}

type SpatialIndex interface {
	NearestNode(c geo.Coordinate) (int64, bool)
}

type CoordinateLookup interface {
	GetCoordinate(id int64) (geo.Coordinate, bool)
}
