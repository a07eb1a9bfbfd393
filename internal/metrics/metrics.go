// Package metrics exposes Prometheus counters for corpus resolution and
// identity synthesis.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResolutionsTotal counts corpus resolutions by the source that won.
	ResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uaforge_corpus_resolutions_total",
		Help: "Corpus resolutions, labeled by the degradation-chain source that produced the dataset.",
	}, []string{"source"})
	// CacheHits counts disk-cache loads that produced a valid, unexpired corpus.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uaforge_corpus_cache_hits_total",
		Help: "Disk cache loads that returned a usable corpus.",
	})
	// CacheMisses counts disk-cache loads that reported absent.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uaforge_corpus_cache_misses_total",
		Help: "Disk cache loads that found nothing usable (missing, corrupt, or expired).",
	})
	// FetchAttempts counts network fetch attempts, including retries.
	FetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uaforge_corpus_fetch_attempts_total",
		Help: "HTTP attempts to retrieve a fresh corpus.",
	})
	// FetchFailures counts fetch attempts that ended in error.
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uaforge_corpus_fetch_failures_total",
		Help: "Corpus fetch attempts that failed.",
	})
	// IdentitiesSampled counts successful identity draws.
	IdentitiesSampled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uaforge_identities_sampled_total",
		Help: "Client identities drawn from the corpus.",
	})
	// HeaderSetsComposed counts successful header compositions.
	HeaderSetsComposed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uaforge_header_sets_composed_total",
		Help: "Navigation header sets composed.",
	})
	// ComposeErrors counts header compositions rejected for bad input.
	ComposeErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uaforge_compose_errors_total",
		Help: "Header compositions rejected, typically for malformed URLs.",
	})
)
