// Package fetch retrieves a fresh corpus document from a configured remote
// endpoint, with timeout and bounded retry.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/uaforge/uaforge/internal/metrics"
	"github.com/uaforge/uaforge/internal/persona"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxAttempts = 3
)

// Config captures the parameters for the corpus fetcher.
type Config struct {
	// Endpoint is the URL of the corpus document. Empty disables fetching.
	Endpoint string
	// Timeout bounds each HTTP attempt.
	Timeout time.Duration
	// MaxAttempts bounds retries across transient failures.
	MaxAttempts int
}

// document is the wire shape of a corpus endpoint response. Unknown fields are
// tolerated for forward compatibility.
type document struct {
	Records []persona.CorpusRecord `json:"records"`
}

// Fetcher performs GET retrievals of the corpus document.
type Fetcher struct {
	endpoint string
	client   *http.Client
	policy   *retryPolicy
	logger   *zap.Logger
}

// New builds a Fetcher. The client timeout doubles as the per-attempt budget;
// an attempt exceeding it is abandoned and counts against the retry bound.
func New(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
		policy:   newRetryPolicy(cfg.MaxAttempts),
		logger:   logger,
	}
}

// Fetch retrieves and validates a corpus dataset. Any failure after the retry
// bound is returned to the resolver, which falls through to static data.
func (f *Fetcher) Fetch(ctx context.Context) (persona.CorpusDataset, error) {
	if f.endpoint == "" {
		return persona.CorpusDataset{}, errors.New("no corpus endpoint configured")
	}

	var lastErr error
	for attempt := 0; attempt < f.policy.maxAttempts; attempt++ {
		if attempt > 0 {
			wait := f.policy.backoff(attempt - 1)
			f.logger.Debug("retrying corpus fetch",
				zap.Int("attempt", attempt+1), zap.Duration("backoff", wait))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return persona.CorpusDataset{}, fmt.Errorf("corpus fetch canceled: %w", ctx.Err())
			}
		}

		metrics.FetchAttempts.Inc()
		ds, err := f.fetchOnce(ctx)
		if err == nil {
			return ds, nil
		}
		metrics.FetchFailures.Inc()
		lastErr = err
		if !f.policy.shouldRetry(err, attempt+1) {
			break
		}
	}
	return persona.CorpusDataset{}, fmt.Errorf("corpus fetch failed after retries: %w", lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context) (_ persona.CorpusDataset, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return persona.CorpusDataset{}, fmt.Errorf("build corpus request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return persona.CorpusDataset{}, fmt.Errorf("corpus request: %w", err)
	}
	defer func() {
		err = errors.Join(err, resp.Body.Close())
	}()

	if resp.StatusCode != http.StatusOK {
		return persona.CorpusDataset{}, fmt.Errorf("corpus endpoint returned %s", resp.Status)
	}

	var doc document
	if decErr := json.NewDecoder(resp.Body).Decode(&doc); decErr != nil {
		return persona.CorpusDataset{}, fmt.Errorf("decode corpus document: %w", decErr)
	}

	ds := persona.CorpusDataset{
		Records:   doc.Records,
		Retrieved: time.Now().UTC(),
		Source:    persona.SourceNetwork,
	}
	if len(ds.Records) == 0 {
		return persona.CorpusDataset{}, errors.New("corpus document holds no records")
	}
	if ds.TotalWeight() <= 0 {
		return persona.CorpusDataset{}, errors.New("corpus document weights sum to zero")
	}
	return ds, nil
}
