// Package search runs filter queries over the catalog: a cached filter
// engine, and per-session runners that apply the simulated search latency
// with last-write-wins semantics.
package search

import (
	"context"
	"slices"
	"time"

	"github.com/karlseguin/ccache/v3"
	"golang.org/x/sync/singleflight"

	"github.com/evcraddock/estate/internal/listing"
	"github.com/evcraddock/estate/internal/logging"
)

// Source provides the full listing set in display order.
type Source interface {
	All() []*listing.Listing
}

// Searcher returns the listings matching criteria. ctx carries the request
// scoped logger; searches are not cancellable.
type Searcher interface {
	Search(ctx context.Context, c listing.Criteria) []*listing.Listing
}

const (
	defaultCacheSize = 500
	// The catalog never changes while the process runs, so entries only
	// leave the cache through size pressure.
	cacheTTL = 24 * time.Hour
)

// Engine filters a fixed source and caches results by canonical criteria.
type Engine struct {
	source Source
	cache  *ccache.Cache[[]*listing.Listing]
	group  singleflight.Group
}

// NewEngine creates an engine over source. Close releases the cache worker.
func NewEngine(source Source) *Engine {
	return &Engine{
		source: source,
		cache:  ccache.New(ccache.Configure[[]*listing.Listing]().MaxSize(defaultCacheSize)),
	}
}

// Search returns the listings matching c, in source order. The returned
// slice belongs to the caller.
func (e *Engine) Search(ctx context.Context, c listing.Criteria) []*listing.Listing {
	key := c.Key()

	if item := e.cache.Get(key); item != nil && !item.Expired() {
		return slices.Clone(item.Value())
	}

	v, _, shared := e.group.Do(key, func() (interface{}, error) {
		result := listing.Filter(e.source.All(), c)
		e.cache.Set(key, result, cacheTTL)
		return result, nil
	})
	logging.FromContext(ctx).Debug("filter cache miss", "key", key, "shared", shared)

	return slices.Clone(v.([]*listing.Listing))
}

// Close stops the cache's background worker.
func (e *Engine) Close() {
	e.cache.Stop()
}
