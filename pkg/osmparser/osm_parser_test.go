package osmparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testOsmXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="osmroute-test">
  <node id="1" lat="42.3601" lon="-71.0589"><tag k="name" v="downtown"/></node>
  <node id="2" lat="42.3611" lon="-71.0579"/>
  <node id="3" lat="42.3621" lon="-71.0569"/>
  <node id="4" lat="42.3631" lon="-71.0559"/>
  <node id="5" lat="42.3700" lon="-71.0500"/>
  <way id="100">
    <nd ref="1"/><nd ref="2"/><nd ref="3"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="101">
    <nd ref="3"/><nd ref="4"/>
    <tag k="highway" v="primary"/>
    <tag k="oneway" v="yes"/>
    <tag k="maxspeed" v="40 mph"/>
  </way>
  <way id="102">
    <nd ref="4"/><nd ref="5"/>
    <tag k="highway" v="footway"/>
  </way>
</osm>
`

func writeFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(testOsmXML), 0o644))
	return path
}

func writeBzip2Fixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	bw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bw.Write([]byte(testOsmXML))
	require.NoError(t, err)
	require.NoError(t, bw.Close())
	return path
}

func TestBuildFromFile(t *testing.T) {
	testCases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "osm xml", path: func(t *testing.T) string { return writeFixture(t, "map.osm") }},
		{name: "bzip2 osm xml", path: func(t *testing.T) string { return writeBzip2Fixture(t, "map.osm.bz2") }},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildFromFile(tt.path(t), zap.NewNop())
			require.NoError(t, err)

			assert.Equal(t, 4, g.NumberOfNodes())
			assert.Equal(t, 5, g.NumberOfEdges())
			assert.False(t, g.HasNode(5))

			w, ok := g.GetSpeedLimit(3, 4)
			require.True(t, ok)
			assert.Equal(t, 40.0, w)
			assert.False(t, g.HasEdge(4, 3))

			w, ok = g.GetSpeedLimit(2, 1)
			require.True(t, ok)
			assert.Equal(t, 25.0, w)

			id, ok := g.LookupCoordinate(geo.NewCoordinate(42.3601, -71.0589))
			require.True(t, ok)
			assert.Equal(t, int64(1), id)

			n, _ := g.GetNode(1)
			assert.Equal(t, "downtown", n.GetTags()["name"])
		})
	}
}

func TestOsmFileScanWays(t *testing.T) {
	f, err := NewOsmFile(writeFixture(t, "map.xml"), zap.NewNop())
	require.NoError(t, err)

	var ids []int64
	require.NoError(t, f.ScanWays(func(w Way) error {
		ids = append(ids, w.ID)
		return nil
	}))
	assert.Equal(t, []int64{100, 101, 102}, ids)

	var nodeCount int
	require.NoError(t, f.ScanNodes(func(n Node) error {
		nodeCount++
		return nil
	}))
	assert.Equal(t, 5, nodeCount)
}

func TestNewOsmFileErrors(t *testing.T) {
	_, err := NewOsmFile("map.geojson", zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrBadParamInput)

	_, err = NewOsmFile(filepath.Join(t.TempDir(), "missing.osm.pbf"), zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrBadParamInput)
}
