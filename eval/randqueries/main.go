package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/lintang-b-s/osmroute/pkg/concurrent"
	"github.com/lintang-b-s/osmroute/pkg/costfunction"
	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	log "github.com/lintang-b-s/osmroute/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	mapFile    = flag.String("map", "./data/map.osm.pbf", "openstreetmap extract")
	numQueries = flag.Int("n", 1000, "number of random queries")
	numWorkers = flag.Int("workers", 8, "number of concurrent query workers")
	seed       = flag.Uint64("seed", 42, "random seed")
	outFile    = flag.String("out", "rand_queries_result.csv", "result csv")
)

type spParam struct {
	row  int
	s, t int64
}

type spResult struct {
	row                    int
	found                  bool
	astarCost, ucsCost     float64
	astarPopped, ucsPopped int
	astarMillis, ucsMillis int64
}

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	cfg := engine.DefaultConfig()
	cfg.LocatorCacheSize = 0
	re, err := engine.NewEngine(*mapFile, cfg, logger)
	if err != nil {
		panic(err)
	}
	g := re.GetGraph()
	router := re.GetRouter()
	distance := costfunction.NewDistanceCostFunction(g)

	coords := make([]geo.Coordinate, 0, g.NumberOfIndexedNodes())
	g.ForIndexedCoordinates(func(c geo.Coordinate, id int64) bool {
		coords = append(coords, c)
		return true
	})
	if len(coords) == 0 {
		logger.Fatal("graph has no indexed nodes")
	}
	rect := geo.NewBoundingRect(coords)
	loLat, hiLat := rect.Lo().Lat.Degrees(), rect.Hi().Lat.Degrees()
	loLon, hiLon := rect.Lo().Lng.Degrees(), rect.Hi().Lng.Degrees()

	rd := rand.New(rand.NewSource(*seed))
	randomCoord := func() geo.Coordinate {
		return geo.NewCoordinate(loLat+rd.Float64()*(hiLat-loLat), loLon+rd.Float64()*(hiLon-loLon))
	}

	frontierCapacity := g.NumberOfNodes() / 16

	queries := make([]spParam, 0, *numQueries)
	for i := 0; i < *numQueries; i++ {
		s, okS := re.GetLocator().NearestNode(randomCoord())
		t, okT := re.GetLocator().NearestNode(randomCoord())
		if !okS || !okT {
			continue
		}
		queries = append(queries, spParam{row: i, s: s, t: t})
	}

	calcSP := func(p spParam) spResult {
		before := time.Now()
		astar := router.ShortestDistanceNodePath(p.s, p.t)
		astarDuration := time.Since(before)

		before = time.Now()
		ucs := routing.BestFirstSearch(p.s, p.t, g.GetNeighbors, distance.GetWeight, nil,
			routing.WithFrontierCapacity(frontierCapacity))
		ucsDuration := time.Since(before)

		if (p.row+1)%100 == 0 {
			logger.Sugar().Infof("done query %v", p.row+1)
		}
		return spResult{
			row:         p.row,
			found:       astar.Found,
			astarCost:   astar.Cost,
			ucsCost:     ucs.Cost,
			astarPopped: astar.Popped,
			ucsPopped:   ucs.Popped,
			astarMillis: astarDuration.Milliseconds(),
			ucsMillis:   ucsDuration.Milliseconds(),
		}
	}

	// the graph is read only, queries share it without locking
	workers := concurrent.NewWorkerPool[spParam, spResult](*numWorkers, len(queries))
	for _, q := range queries {
		workers.AddJob(q)
	}
	workers.Close()
	workers.Start(calcSP)

	fout, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	defer w.Flush()
	fmt.Fprintln(w, "row,found,astar_km,ucs_km,astar_popped,ucs_popped,astar_ms,ucs_ms")

	var (
		wg                               sync.WaitGroup
		mismatches, found                int
		totalAstarPopped, totalUcsPopped int
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for res := range workers.CollectResults() {
			fmt.Fprintf(w, "%d,%t,%f,%f,%d,%d,%d,%d\n", res.row, res.found, res.astarCost, res.ucsCost,
				res.astarPopped, res.ucsPopped, res.astarMillis, res.ucsMillis)
			if !res.found {
				continue
			}
			found++
			totalAstarPopped += res.astarPopped
			totalUcsPopped += res.ucsPopped
			if math.Abs(res.astarCost-res.ucsCost) > 1e-9 {
				mismatches++
				logger.Warn("A* and uniform-cost search disagree", zap.Int("row", res.row),
					zap.Float64("astar_km", res.astarCost), zap.Float64("ucs_km", res.ucsCost))
			}
		}
	}()

	workers.Wait()
	wg.Wait()

	logger.Info("random queries done",
		zap.Int("queries", len(queries)),
		zap.Int("found", found),
		zap.Int("cost_mismatches", mismatches),
		zap.Int("astar_popped", totalAstarPopped),
		zap.Int("ucs_popped", totalUcsPopped),
	)
}
