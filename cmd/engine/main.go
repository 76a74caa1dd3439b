package main

import (
	"context"
	"flag"
	"os"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/http"
	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	mapFile = flag.String("map", "", "openstreetmap extract (.osm.pbf, .osm or .osm.bz2), overrides MAP_FILE")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *mapFile != "" {
		viper.Set("MAP_FILE", *mapFile)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngine(viper.GetString("MAP_FILE"), engine.ConfigFromViper(), logger)
	if err != nil {
		logger.Fatal("building routing engine", zap.Error(err))
	}

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine.GetRouter(), routingEngine.GetLocator(),
		routingEngine.GetGraph())
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, routingService); err != nil {
		logger.Fatal("starting api", zap.Error(err))
	}

	quit, stopSignals := http.ShutdownSignals()
	defer stopSignals()

	signal, err := api.WaitForShutdown(quit)
	cleanup()
	if err != nil {
		logger.Error("api stopped before shutdown", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("osmroute Routing Engine Server Stopped", zap.String("signal", signal.String()))
	if err := api.Wait(); err != nil {
		logger.Error("api shutdown", zap.Error(err))
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
