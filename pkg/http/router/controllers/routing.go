package controllers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	helper "github.com/lintang-b-s/osmroute/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
	validate       *validator.Validate
	trans          ut.Translator
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		log.Warn("registering validator translations", zap.Error(err))
	}

	return &routingAPI{
		routingService: routingService,
		log:            log,
		validate:       validate,
		trans:          trans,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/shortestPath", api.shortestPath)
	group.GET("/fastestPath", api.fastestPath)
	group.GET("/nearestNode", api.nearestNode)
}

// shortestPath
//
//	@Summary		shortest route by distance between origin and destination
//	@Tags			routing
//	@Produce		application/json
//	@Param			origin_lat		query		number	true	"origin latitude"
//	@Param			origin_lon		query		number	true	"origin longitude"
//	@Param			destination_lat	query		number	true	"destination latitude"
//	@Param			destination_lon	query		number	true	"destination longitude"
//	@Success		200				{object}	shortestPathResponse
//	@Failure		400				{object}	errorResponse
//	@Failure		404				{object}	errorResponse
//	@Router			/shortestPath [get]
func (api *routingAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.route(w, r, routing.SHORTEST_DISTANCE)
}

// fastestPath
//
//	@Summary		fastest route by travel time (speed limits) between origin and destination
//	@Tags			routing
//	@Produce		application/json
//	@Param			origin_lat		query		number	true	"origin latitude"
//	@Param			origin_lon		query		number	true	"origin longitude"
//	@Param			destination_lat	query		number	true	"destination latitude"
//	@Param			destination_lon	query		number	true	"destination longitude"
//	@Success		200				{object}	shortestPathResponse
//	@Failure		400				{object}	errorResponse
//	@Failure		404				{object}	errorResponse
//	@Router			/fastestPath [get]
func (api *routingAPI) fastestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.route(w, r, routing.FASTEST_TIME)
}

func (api *routingAPI) route(w http.ResponseWriter, r *http.Request, mode routing.RouteMode) {
	var (
		request shortestPathRequest
		err     error
	)

	query := r.URL.Query()

	request.OriginLat, err = parseFloatParam(query.Get("origin_lat"), "origin_lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.OriginLon, err = parseFloatParam(query.Get("origin_lon"), "origin_lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.DestinationLat, err = parseFloatParam(query.Get("destination_lat"), "destination_lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.DestinationLon, err = parseFloatParam(query.Get("destination_lon"), "destination_lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	if err := api.validate.Struct(request); err != nil {
		api.BadRequestResponse(w, r, validationError(translateError(err, api.trans)))
		return
	}

	var (
		route        *routing.Route
		pathPolyline string
	)
	if mode == routing.FASTEST_TIME {
		route, pathPolyline, err = api.routingService.FastestPath(request.OriginLat, request.OriginLon,
			request.DestinationLat, request.DestinationLon)
	} else {
		route, pathPolyline, err = api.routingService.ShortestPath(request.OriginLat, request.OriginLon,
			request.DestinationLat, request.DestinationLon)
	}
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route, pathPolyline)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// nearestNode
//
//	@Summary		road graph node closest to a coordinate
//	@Tags			routing
//	@Produce		application/json
//	@Param			lat	query		number	true	"latitude"
//	@Param			lon	query		number	true	"longitude"
//	@Success		200	{object}	nearestNodeResponse
//	@Failure		400	{object}	errorResponse
//	@Failure		404	{object}	errorResponse
//	@Router			/nearestNode [get]
func (api *routingAPI) nearestNode(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestNodeRequest
		err     error
	)
	query := r.URL.Query()

	request.Lat, err = parseFloatParam(query.Get("lat"), "lat")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request.Lon, err = parseFloatParam(query.Get("lon"), "lon")
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate.Struct(request); err != nil {
		api.BadRequestResponse(w, r, validationError(translateError(err, api.trans)))
		return
	}

	id, coord, err := api.routingService.NearestNode(request.Lat, request.Lon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestNodeResponse(id, coord)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func parseFloatParam(value, name string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s is required and must be a valid float", name)
	}
	return f, nil
}
