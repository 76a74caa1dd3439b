package spatialindex

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type NearestNodeLocator interface {
	NearestNode(c geo.Coordinate) (int64, bool)
}

// CachedLocator memoizes snapped node ids per query coordinate. safe for concurrent use.
type CachedLocator struct {
	locator NearestNodeLocator
	cache   *lru.Cache[geo.Coordinate, int64]
}

func NewCachedLocator(locator NearestNodeLocator, size int) (*CachedLocator, error) {
	cache, err := lru.New[geo.Coordinate, int64](size)
	if err != nil {
		return nil, err
	}
	return &CachedLocator{locator: locator, cache: cache}, nil
}

func (cl *CachedLocator) NearestNode(c geo.Coordinate) (int64, bool) {
	if id, ok := cl.cache.Get(c); ok {
		return id, true
	}
	id, ok := cl.locator.NearestNode(c)
	if !ok {
		return 0, false
	}
	cl.cache.Add(c, id)
	return id, true
}

func (cl *CachedLocator) Len() int {
	return cl.cache.Len()
}
