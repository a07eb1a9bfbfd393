// Package diskcache persists a resolved corpus between runs as a single JSON
// document with a retrieval timestamp and a time-to-live.
package diskcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uaforge/uaforge/internal/persona"
)

const (
	// lockStaleAge bounds how long an abandoned lock file can block writers
	// before it is broken (a crashed process never removes its lock).
	lockStaleAge = 30 * time.Second

	lockAttempts = 5
	lockRetryGap = 20 * time.Millisecond
)

// Config captures the parameters for the on-disk corpus cache.
type Config struct {
	// Path is the cache file location.
	Path string
	// TTL is how long a stored corpus stays valid.
	TTL time.Duration
}

// document is the on-disk layout. Decoding tolerates unknown fields so cache
// files written by newer builds still load.
type document struct {
	RetrievedAt time.Time              `json:"retrieved_at"`
	Records     []persona.CorpusRecord `json:"records"`
}

// Cache reads and writes the corpus cache file.
type Cache struct {
	path   string
	ttl    time.Duration
	logger *zap.Logger
}

// New validates the cache location and returns a Cache. An unusable path is a
// configuration error, fatal at construction.
func New(cfg Config, logger *zap.Logger) (*Cache, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("%w: cache path is required", persona.ErrInvalidConfig)
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("%w: cache TTL must be positive, got %s", persona.ErrInvalidConfig, cfg.TTL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dir := filepath.Dir(cfg.Path)
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: stat cache directory: %v", persona.ErrInvalidConfig, err)
		}
		if mkErr := os.MkdirAll(dir, 0o750); mkErr != nil {
			return nil, fmt.Errorf("%w: create cache directory: %v", persona.ErrInvalidConfig, mkErr)
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%w: cache directory path is not a directory", persona.ErrInvalidConfig)
	}

	// Probe for write permission up front rather than failing at first Store.
	probe := filepath.Join(dir, ".writable_probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o600); err != nil {
		return nil, fmt.Errorf("%w: cache directory is not writable: %v", persona.ErrInvalidConfig, err)
	}
	if err := os.Remove(probe); err != nil {
		return nil, fmt.Errorf("%w: clean up probe file: %v", persona.ErrInvalidConfig, err)
	}

	return &Cache{path: cfg.Path, ttl: cfg.TTL, logger: logger}, nil
}

// Load returns the cached corpus if present, parseable, sampleable (positive
// total weight), and younger than the TTL. Every failure mode reports absent; a cache miss is never an
// error. Load takes no lock: a torn read of a concurrently renamed file is
// impossible, and a momentarily locked path simply decodes as absent.
func (c *Cache) Load(now time.Time) (persona.CorpusDataset, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("corpus cache unreadable", zap.String("path", c.path), zap.Error(err))
		}
		return persona.CorpusDataset{}, false
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		c.logger.Warn("corpus cache corrupt", zap.String("path", c.path), zap.Error(err))
		return persona.CorpusDataset{}, false
	}
	if len(doc.Records) == 0 {
		c.logger.Warn("corpus cache holds no records", zap.String("path", c.path))
		return persona.CorpusDataset{}, false
	}
	dataset := persona.CorpusDataset{
		Records:   doc.Records,
		Retrieved: doc.RetrievedAt,
		Source:    persona.SourceDiskCache,
	}
	// A document whose records carry no weight can never be sampled from; treat
	// it like any other corrupt file so resolution moves down the chain.
	if dataset.TotalWeight() <= 0 {
		c.logger.Warn("corpus cache holds no sampleable records", zap.String("path", c.path))
		return persona.CorpusDataset{}, false
	}
	if now.Sub(doc.RetrievedAt) > c.ttl {
		c.logger.Debug("corpus cache expired",
			zap.String("path", c.path),
			zap.Time("retrieved_at", doc.RetrievedAt),
			zap.Duration("ttl", c.ttl))
		return persona.CorpusDataset{}, false
	}

	return dataset, true
}

// Store writes the dataset atomically: serialize to a temp file in the cache
// directory, then rename over the destination. Concurrent writers from other
// engine instances serialize on an advisory lock file; a writer that cannot
// acquire it within its budget drops the write, since persistence is
// best-effort.
func (c *Cache) Store(dataset persona.CorpusDataset) error {
	if len(dataset.Records) == 0 {
		return fmt.Errorf("refusing to cache an empty corpus")
	}

	doc := document{RetrievedAt: dataset.Retrieved, Records: dataset.Records}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal corpus cache: %w", err)
	}

	unlock, err := c.acquireLock()
	if err != nil {
		return err
	}
	defer unlock()

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "corpus-cache-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer func() {
		// Fails once the rename succeeds, which is the normal path.
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("rename temp cache file into place: %w", err)
	}

	c.logger.Debug("corpus cached to disk",
		zap.String("path", c.path), zap.Int("records", len(dataset.Records)))
	return nil
}

// acquireLock takes the advisory write lock via an O_EXCL sibling file. Locks
// older than lockStaleAge are treated as abandoned and broken.
func (c *Cache) acquireLock() (func(), error) {
	lockPath := c.path + ".lock"
	for attempt := 0; attempt < lockAttempts; attempt++ {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create cache lock: %w", err)
		}
		if info, statErr := os.Stat(lockPath); statErr == nil && time.Since(info.ModTime()) > lockStaleAge {
			c.logger.Warn("breaking stale corpus cache lock", zap.String("path", lockPath))
			_ = os.Remove(lockPath)
			continue
		}
		time.Sleep(lockRetryGap)
	}
	return nil, fmt.Errorf("cache lock held by another writer: %s", lockPath)
}
