package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

var (
	mapFile  = flag.String("map", "./data/map.osm.pbf", "openstreetmap extract (.osm.pbf, .osm or .osm.bz2)")
	from     = flag.String("from", "", "origin as lat,lon")
	to       = flag.String("to", "", "destination as lat,lon")
	mode     = flag.String("mode", "fastest", "shortest | fastest")
	locator  = flag.String("locator", engine.LOCATOR_LINEAR, "nearest node locator: linear | rtree")
	linearPQ = flag.Bool("linear_frontier", false, "select frontier entries by linear scan instead of a binary heap")
)

func main() {
	os.Exit(realMain())
}

// realMain returns the process exit code so the deferred logger flush always runs.
func realMain() int {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "creating logger:", err)
		return 1
	}
	defer logger.Sync()

	err = run(logger)
	code := exitCode(err)
	switch code {
	case 2:
		fmt.Fprintln(os.Stderr, "no path:", err)
	case 1:
		logger.Error("route query failed", zap.Error(err))
	}
	return code
}

// exitCode is 0 on success, 2 when no node or path was found and 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, util.ErrNotFound):
		return 2
	default:
		return 1
	}
}

func run(logger *zap.Logger) error {
	origin, err := parseCoordinate(*from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	destination, err := parseCoordinate(*to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	routeMode, err := routing.ParseRouteMode(*mode)
	if err != nil {
		return err
	}

	cfg := engine.DefaultConfig()
	cfg.Locator = *locator
	cfg.LocatorCacheSize = 0
	cfg.LinearFrontier = *linearPQ

	re, err := engine.NewEngine(*mapFile, cfg, logger)
	if err != nil {
		return err
	}

	route, err := re.GetRouter().Route(routeMode, origin, destination)
	if err != nil {
		return err
	}

	fmt.Println(route.String())
	fmt.Printf("polyline: %s\n", geo.PolylineFromCoords(route.Path))
	fmt.Printf("distance: %.3f km\n", route.Distance)
	if route.HasTravelTime {
		fmt.Printf("travel time: %.1f min\n", route.TravelTime*60)
	} else {
		fmt.Println("travel time: unknown")
	}
	for _, c := range route.Path {
		fmt.Printf("%f,%f\n", c.Lat, c.Lon)
	}
	return nil
}

func parseCoordinate(s string) (geo.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, util.WrapErrorf(nil, util.ErrBadParamInput, "coordinate %q must be lat,lon", s)
	}
	lat, err := util.StringToFloat64(parts[0])
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrBadParamInput, "latitude %q", parts[0])
	}
	lon, err := util.StringToFloat64(parts[1])
	if err != nil {
		return geo.Coordinate{}, util.WrapErrorf(err, util.ErrBadParamInput, "longitude %q", parts[1])
	}
	return geo.NewCoordinate(lat, lon), nil
}
