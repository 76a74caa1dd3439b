package controllers

import (
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

type shortestPathRequest struct {
	OriginLat      float64 `json:"origin_lat" validate:"min=-90,max=90"`
	OriginLon      float64 `json:"origin_lon" validate:"min=-180,max=180"`
	DestinationLat float64 `json:"destination_lat" validate:"min=-90,max=90"`
	DestinationLon float64 `json:"destination_lon" validate:"min=-180,max=180"`
}

type nearestNodeRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// shortestPathResponse. eta in minutes (null when some road on the path has no speed limit), distance in km
type shortestPathResponse struct {
	Mode        string           `json:"mode"`
	Eta         *float64         `json:"eta"`
	Path        string           `json:"path"`
	Dist        float64          `json:"distance"`
	Coordinates []geo.Coordinate `json:"coordinates"`
	Nodes       []int64          `json:"nodes"`
}

func NewShortestPathResponse(route *routing.Route, path string) shortestPathResponse {
	var eta *float64
	if route.HasTravelTime {
		minutes := util.RoundFloat(route.TravelTime*60, 3)
		eta = &minutes
	}
	return shortestPathResponse{
		Mode:        route.Mode.String(),
		Eta:         eta,
		Path:        path,
		Dist:        util.RoundFloat(route.Distance, 3),
		Coordinates: route.Path,
		Nodes:       route.Nodes,
	}
}

type nearestNodeResponse struct {
	NodeID int64   `json:"node_id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

func NewNearestNodeResponse(id int64, c geo.Coordinate) nearestNodeResponse {
	return nearestNodeResponse{NodeID: id, Lat: c.Lat, Lon: c.Lon}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
