// Package engine exposes the identity-synthesis facade: it resolves the
// corpus once at construction and serves weighted-random identities, per-URL
// header sets, and fixed crawler signatures from it.
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/uaforge/uaforge/internal/clock/system"
	"github.com/uaforge/uaforge/internal/corpus/diskcache"
	"github.com/uaforge/uaforge/internal/corpus/fetch"
	"github.com/uaforge/uaforge/internal/corpus/resolve"
	"github.com/uaforge/uaforge/internal/headers"
	"github.com/uaforge/uaforge/internal/metrics"
	"github.com/uaforge/uaforge/internal/persona"
	"github.com/uaforge/uaforge/internal/sampler"
)

const defaultCacheTTL = 24 * time.Hour

// Config captures the engine construction knobs.
type Config struct {
	// UseDiskCache enables the on-disk corpus cache.
	UseDiskCache bool
	// CachePath overrides the cache file location. Empty selects a per-user
	// cache directory.
	CachePath string
	// CacheTTL bounds cache freshness. Zero selects the 24h default.
	CacheTTL time.Duration
	// CorpusEndpoint is the URL of the remote corpus document. Empty disables
	// network refresh entirely.
	CorpusEndpoint string
	// NetworkTimeout bounds each corpus fetch attempt.
	NetworkTimeout time.Duration
	// FetchAttempts bounds corpus fetch retries.
	FetchAttempts int
}

type options struct {
	logger  *zap.Logger
	cache   persona.CorpusCache
	fetcher persona.CorpusFetcher
	clock   persona.Clock
	rand    rand.Source
}

// Option customizes engine construction.
type Option func(*options)

// WithLogger sets the structured event sink. Absent, the engine is silent.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCache replaces the disk cache (tests inject fakes).
func WithCache(cache persona.CorpusCache) Option {
	return func(o *options) { o.cache = cache }
}

// WithFetcher replaces the network fetcher (tests inject fakes).
func WithFetcher(fetcher persona.CorpusFetcher) Option {
	return func(o *options) { o.fetcher = fetcher }
}

// WithClock replaces the wall clock (tests inject fakes).
func WithClock(clock persona.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithRandSource fixes the sampler's randomness for reproducible draws.
func WithRandSource(src rand.Source) Option {
	return func(o *options) { o.rand = src }
}

// Engine is the thread-safe identity-synthesis facade. Corpus resolution runs
// exactly once, synchronously, inside New; after that every operation is a
// bounded in-memory computation over the immutable resolved dataset.
type Engine struct {
	mu       sync.RWMutex
	closed   bool
	dataset  persona.CorpusDataset
	sampler  *sampler.Sampler
	composer *headers.Composer
	registry *headers.Registry
	logger   *zap.Logger
}

// New resolves the corpus through the cache → network → static chain and
// returns a Ready engine. Cache and network trouble degrade silently; only
// unusable configuration or a zero-weight corpus fail construction.
func New(ctx context.Context, cfg Config, opts ...Option) (*Engine, error) {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		o.clock = system.New()
	}

	if o.cache == nil && cfg.UseDiskCache {
		ttl := cfg.CacheTTL
		if ttl == 0 {
			ttl = defaultCacheTTL
		}
		path := cfg.CachePath
		if path == "" {
			path = defaultCachePath()
		}
		cache, err := diskcache.New(diskcache.Config{Path: path, TTL: ttl}, o.logger)
		if err != nil {
			return nil, err
		}
		o.cache = cache
	} else if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("%w: cache TTL must not be negative", persona.ErrInvalidConfig)
	}

	if o.fetcher == nil && cfg.CorpusEndpoint != "" {
		o.fetcher = fetch.New(fetch.Config{
			Endpoint:    cfg.CorpusEndpoint,
			Timeout:     cfg.NetworkTimeout,
			MaxAttempts: cfg.FetchAttempts,
		}, o.logger)
	}

	resolver := resolve.New(o.cache, o.fetcher, o.clock, o.logger)
	dataset := resolver.Resolve(ctx)

	smp, err := sampler.New(dataset, o.rand)
	if err != nil {
		return nil, fmt.Errorf("resolved corpus is unusable: %w", err)
	}

	return &Engine{
		dataset:  dataset,
		sampler:  smp,
		composer: headers.NewComposer(),
		registry: headers.NewRegistry(),
		logger:   o.logger,
	}, nil
}

// Identity draws a weighted-random User-Agent string.
func (e *Engine) Identity() (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return "", persona.ErrClosed
	}
	record, err := e.sampler.Record()
	if err != nil {
		return "", err
	}
	metrics.IdentitiesSampled.Inc()
	return record.UserAgent, nil
}

// Headers draws an identity and composes the ordered header set that client
// would send navigating to target.
func (e *Engine) Headers(target string) (persona.HeaderList, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, persona.ErrClosed
	}
	profile, err := e.sampler.Profile()
	if err != nil {
		return nil, err
	}
	hdrs, err := e.composer.Compose(profile, target, headers.ModeNavigation)
	if err != nil {
		metrics.ComposeErrors.Inc()
		return nil, err
	}
	metrics.IdentitiesSampled.Inc()
	metrics.HeaderSetsComposed.Inc()
	return hdrs, nil
}

// CrawlerHeaders returns the fixed signature for kind, bypassing the corpus.
func (e *Engine) CrawlerHeaders(kind persona.CrawlerKind) (persona.HeaderList, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return nil, persona.ErrClosed
	}
	profile, err := e.registry.Get(kind)
	if err != nil {
		return nil, err
	}
	return profile.Headers, nil
}

// Source reports which degradation-chain step produced the active corpus.
func (e *Engine) Source() (persona.DatasetSource, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return "", persona.ErrClosed
	}
	return e.dataset.Source, nil
}

// Close releases the engine. Idempotent; every operation after the first
// Close reports ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.logger.Debug("engine closed", zap.String("corpus_source", string(e.dataset.Source)))
	return nil
}

// defaultCachePath places the corpus cache in the per-user cache directory,
// falling back to the system temp directory.
func defaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "uaforge", "corpus.json")
}
