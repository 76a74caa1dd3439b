package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

type fileFormat uint8

const (
	FORMAT_PBF fileFormat = iota
	FORMAT_XML
	FORMAT_XML_BZIP2
)

const (
	wayProgressInterval  = 100000
	nodeProgressInterval = 500000
)

// OsmFile is a WaySource and NodeSource over an openstreetmap extract (.osm.pbf, .osm/.xml or .osm.bz2).
// every scan reopens the file, so ways and nodes are read in two separate passes.
type OsmFile struct {
	path   string
	format fileFormat
	logger *zap.Logger
}

func NewOsmFile(path string, logger *zap.Logger) (*OsmFile, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "opening map file %s", path)
	}
	return &OsmFile{path: path, format: format, logger: logger}, nil
}

func detectFormat(path string) (fileFormat, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".pbf"):
		return FORMAT_PBF, nil
	case strings.HasSuffix(lower, ".bz2"):
		return FORMAT_XML_BZIP2, nil
	case strings.HasSuffix(lower, ".osm"), strings.HasSuffix(lower, ".xml"):
		return FORMAT_XML, nil
	default:
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput, "unsupported map file format: %s", path)
	}
}

type osmScanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var firstErr error
	for i := len(mc) - 1; i >= 0; i-- {
		if err := mc[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f *OsmFile) open(ctx context.Context, skipNodes, skipWays bool) (osmScanner, io.Closer, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, nil, util.WrapErrorf(err, util.ErrInternalServerError, "opening map file %s", f.path)
	}

	switch f.format {
	case FORMAT_PBF:
		// must not be parallel
		scanner := osmpbf.New(ctx, file, 1)
		scanner.SkipNodes = skipNodes
		scanner.SkipWays = skipWays
		scanner.SkipRelations = true
		return scanner, multiCloser{file, scanner}, nil
	case FORMAT_XML_BZIP2:
		bz, err := bzip2.NewReader(file, nil)
		if err != nil {
			file.Close()
			return nil, nil, util.WrapErrorf(err, util.ErrInternalServerError, "opening bzip2 stream %s", f.path)
		}
		scanner := osmxml.New(ctx, bz)
		return scanner, multiCloser{file, bz, scanner}, nil
	default:
		scanner := osmxml.New(ctx, file)
		return scanner, multiCloser{file, scanner}, nil
	}
}

func (f *OsmFile) scan(skipNodes, skipWays bool, visit func(o osm.Object) error) error {
	scanner, closer, err := f.open(context.Background(), skipNodes, skipWays)
	if err != nil {
		return err
	}
	defer closer.Close()

	for scanner.Scan() {
		if err := visit(scanner.Object()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return util.WrapErrorf(err, util.ErrInternalServerError, "reading map file %s", f.path)
	}
	return nil
}

func (f *OsmFile) ScanWays(fn func(w Way) error) error {
	countWays := 0
	err := f.scan(true, false, func(o osm.Object) error {
		way, ok := o.(*osm.Way)
		if !ok {
			return nil
		}
		if (countWays+1)%wayProgressInterval == 0 {
			f.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++
		return fn(convertWay(way))
	})
	if err != nil {
		return err
	}
	f.logger.Info("openstreetmap ways scanned", zap.Int("ways", countWays), zap.String("file", f.path))
	return nil
}

func (f *OsmFile) ScanNodes(fn func(n Node) error) error {
	countNodes := 0
	err := f.scan(false, true, func(o osm.Object) error {
		node, ok := o.(*osm.Node)
		if !ok {
			return nil
		}
		if (countNodes+1)%nodeProgressInterval == 0 {
			f.logger.Sugar().Infof("scanning openstreetmap nodes: %d...", countNodes+1)
		}
		countNodes++
		return fn(convertNode(node))
	})
	if err != nil {
		return err
	}
	f.logger.Info("openstreetmap nodes scanned", zap.Int("nodes", countNodes), zap.String("file", f.path))
	return nil
}

func convertWay(way *osm.Way) Way {
	nodes := make([]int64, 0, len(way.Nodes))
	for _, wn := range way.Nodes {
		nodes = append(nodes, int64(wn.ID))
	}
	return Way{
		ID:    int64(way.ID),
		Nodes: nodes,
		Tags:  way.Tags.Map(),
	}
}

func convertNode(node *osm.Node) Node {
	return Node{
		ID:   int64(node.ID),
		Lat:  node.Lat,
		Lon:  node.Lon,
		Tags: node.Tags.Map(),
	}
}

// BuildFromFile is a shortcut for NewOsmFile + GraphBuilder.Build.
func BuildFromFile(path string, logger *zap.Logger) (*datastructure.Graph, error) {
	file, err := NewOsmFile(path, logger)
	if err != nil {
		return nil, err
	}
	graph, err := NewGraphBuilder(logger).Build(file, file)
	if err != nil {
		return nil, fmt.Errorf("building graph from %s: %w", path, err)
	}
	return graph, nil
}
