package engine

import (
	"fmt"

	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	LOCATOR_LINEAR = "linear"
	LOCATOR_RTREE  = "rtree"
)

type Config struct {
	Locator           string
	RtreeSearchRadius float64 // km
	LocatorCacheSize  int     // 0 disables the cache
	LinearFrontier    bool
}

func DefaultConfig() Config {
	return Config{
		Locator:           LOCATOR_RTREE,
		RtreeSearchRadius: 0.05,
		LocatorCacheSize:  1 << 16,
	}
}

// ConfigFromViper reads the engine settings registered by util.SetDefaults.
func ConfigFromViper() Config {
	return Config{
		Locator:           viper.GetString("LOCATOR"),
		RtreeSearchRadius: viper.GetFloat64("RTREE_SEARCH_RADIUS_KM"),
		LocatorCacheSize:  viper.GetInt("LOCATOR_CACHE_SIZE"),
		LinearFrontier:    viper.GetBool("LINEAR_FRONTIER"),
	}
}

type Engine struct {
	graph   *datastructure.Graph
	locator spatialindex.NearestNodeLocator
	router  *routing.Router
}

func (e *Engine) GetRouter() *routing.Router {
	return e.router
}

func (e *Engine) GetGraph() *datastructure.Graph {
	return e.graph
}

func (e *Engine) GetLocator() spatialindex.NearestNodeLocator {
	return e.locator
}

// NewEngine builds the road graph from an openstreetmap extract and prepares the router.
func NewEngine(mapFile string, cfg Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting osmroute query engine...")

	logger.Info("Building road graph from ", zap.String("mapFile", mapFile))
	graph, err := osmparser.BuildFromFile(mapFile, logger)
	if err != nil {
		return nil, err
	}

	return NewEngineFromGraph(graph, cfg, logger)
}

func NewEngineFromGraph(graph *datastructure.Graph, cfg Config, logger *zap.Logger) (*Engine, error) {
	var locator spatialindex.NearestNodeLocator
	switch cfg.Locator {
	case LOCATOR_LINEAR:
		locator = spatialindex.NewLinearLocator(graph)
	case LOCATOR_RTREE, "":
		rt := spatialindex.NewRtree()
		rt.Build(graph, cfg.RtreeSearchRadius, logger)
		locator = rt
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown locator %q", cfg.Locator)
	}

	if cfg.LocatorCacheSize > 0 {
		cached, err := spatialindex.NewCachedLocator(locator, cfg.LocatorCacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating locator cache: %w", err)
		}
		locator = cached
	}

	var opts []routing.SearchOption
	if cfg.LinearFrontier {
		opts = append(opts, routing.WithLinearFrontier())
	}

	logger.Info("query engine ready",
		zap.String("locator", cfg.Locator),
		zap.Int("locator_cache_size", cfg.LocatorCacheSize),
		zap.Bool("linear_frontier", cfg.LinearFrontier),
	)

	return &Engine{
		graph:   graph,
		locator: locator,
		router:  routing.NewRouter(graph, locator, logger, opts...),
	}, nil
}
