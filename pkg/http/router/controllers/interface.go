package controllers

import (
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type RoutingService interface {
	ShortestPath(origLat, origLon, dstLat, dstLon float64) (*routing.Route, string, error)
	FastestPath(origLat, origLon, dstLat, dstLon float64) (*routing.Route, string, error)
	NearestNode(lat, lon float64) (int64, geo.Coordinate, error)
}
