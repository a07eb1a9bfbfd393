// Package resolve owns the corpus degradation chain: disk cache, then network,
// then the embedded static fallback. It always produces a usable dataset.
package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/uaforge/uaforge/internal/corpus/static"
	"github.com/uaforge/uaforge/internal/metrics"
	"github.com/uaforge/uaforge/internal/persona"
)

// Resolver orchestrates cache, fetcher, and static fallback into exactly one
// authoritative dataset per engine lifetime.
type Resolver struct {
	cache   persona.CorpusCache
	fetcher persona.CorpusFetcher
	clock   persona.Clock
	logger  *zap.Logger
}

// New builds a Resolver. cache and fetcher may be nil, which skips the
// corresponding chain step.
func New(cache persona.CorpusCache, fetcher persona.CorpusFetcher, clock persona.Clock, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{cache: cache, fetcher: fetcher, clock: clock, logger: logger}
}

// Resolve walks the chain and returns the first usable dataset. It never
// fails: cache and network trouble degrade to the embedded corpus, and the
// degradation is logged rather than surfaced.
func (r *Resolver) Resolve(ctx context.Context) persona.CorpusDataset {
	now := r.clock.Now()

	if r.cache != nil {
		if ds, ok := r.cache.Load(now); ok {
			metrics.CacheHits.Inc()
			metrics.ResolutionsTotal.WithLabelValues(string(ds.Source)).Inc()
			r.logger.Debug("corpus resolved from disk cache",
				zap.Int("records", len(ds.Records)),
				zap.Time("retrieved_at", ds.Retrieved))
			return ds
		}
		metrics.CacheMisses.Inc()
	}

	if r.fetcher != nil {
		ds, err := r.fetcher.Fetch(ctx)
		if err == nil {
			metrics.ResolutionsTotal.WithLabelValues(string(ds.Source)).Inc()
			r.logger.Info("corpus resolved from network", zap.Int("records", len(ds.Records)))
			if r.cache != nil {
				// Best-effort persistence; a failed write never fails resolution.
				if storeErr := r.cache.Store(ds); storeErr != nil {
					r.logger.Warn("corpus cache write failed", zap.Error(storeErr))
				}
			}
			return ds
		}
		r.logger.Warn("corpus fetch failed", zap.Error(err))
	}

	ds := static.Dataset(now)
	metrics.ResolutionsTotal.WithLabelValues(string(ds.Source)).Inc()
	r.logger.Warn("corpus resolution degraded to static fallback",
		zap.Int("records", len(ds.Records)))
	return ds
}
