package engine

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uaforge/uaforge/internal/persona"
)

type countingFetcher struct {
	calls   atomic.Int32
	dataset persona.CorpusDataset
	err     error
}

func (f *countingFetcher) Fetch(context.Context) (persona.CorpusDataset, error) {
	f.calls.Add(1)
	return f.dataset, f.err
}

func networkDataset() persona.CorpusDataset {
	return persona.CorpusDataset{
		Records: []persona.CorpusRecord{
			{Browser: persona.BrowserChrome, Version: "140.0.7339.128", OS: "Windows",
				Device: persona.DeviceDesktop, Weight: 5, ClientHints: true,
				UserAgent: "Mozilla/5.0 net-chrome"},
			{Browser: persona.BrowserFirefox, Version: "142.0", OS: "Linux",
				Device: persona.DeviceDesktop, Weight: 1,
				UserAgent: "Mozilla/5.0 net-firefox"},
		},
		Retrieved: time.Now(),
		Source:    persona.SourceNetwork,
	}
}

func newReadyEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(context.Background(), Config{},
		WithFetcher(&countingFetcher{dataset: networkDataset()}),
		WithRandSource(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func TestNew_NetworkPath(t *testing.T) {
	e := newReadyEngine(t)
	src, err := e.Source()
	require.NoError(t, err)
	assert.Equal(t, persona.SourceNetwork, src)

	ua, err := e.Identity()
	require.NoError(t, err)
	assert.Contains(t, []string{"Mozilla/5.0 net-chrome", "Mozilla/5.0 net-firefox"}, ua)
}

func TestNew_StaticFallbackPath(t *testing.T) {
	e, err := New(context.Background(), Config{},
		WithFetcher(&countingFetcher{err: assert.AnError}))
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	src, err := e.Source()
	require.NoError(t, err)
	assert.Equal(t, persona.SourceStaticFallback, src)

	// Network trouble alone must never break identity synthesis.
	ua, err := e.Identity()
	require.NoError(t, err)
	assert.NotEmpty(t, ua)
}

func TestNew_DiskCachePath(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		UseDiskCache: true,
		CachePath:    filepath.Join(dir, "corpus.json"),
		CacheTTL:     time.Hour,
	}

	// First engine fetches from the network and persists.
	fetcher := &countingFetcher{dataset: networkDataset()}
	e1, err := New(context.Background(), cfg, WithFetcher(fetcher))
	require.NoError(t, err)
	require.NoError(t, e1.Close())
	assert.Equal(t, int32(1), fetcher.calls.Load())

	// Second engine on the same path resolves from disk, no fetch.
	fetcher2 := &countingFetcher{dataset: networkDataset()}
	e2, err := New(context.Background(), cfg, WithFetcher(fetcher2))
	require.NoError(t, err)
	defer func() { _ = e2.Close() }()

	src, err := e2.Source()
	require.NoError(t, err)
	assert.Equal(t, persona.SourceDiskCache, src)
	assert.Zero(t, fetcher2.calls.Load())
}

func TestNew_ZeroWeightCacheFileFallsBackToStatic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.json")
	doc := `{"retrieved_at":"` + time.Now().UTC().Format(time.RFC3339) + `",` +
		`"records":[{"browser":"chrome","version":"140.0","os":"Windows",` +
		`"device":"desktop","weight":0,"user_agent":"ua"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	// A fresh but unsampleable cache file is cache trouble, not a fatal
	// corpus: with no endpoint configured the chain ends at static data.
	e, err := New(context.Background(), Config{
		UseDiskCache: true,
		CachePath:    path,
		CacheTTL:     time.Hour,
	})
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	src, err := e.Source()
	require.NoError(t, err)
	assert.Equal(t, persona.SourceStaticFallback, src)

	ua, err := e.Identity()
	require.NoError(t, err)
	assert.NotEmpty(t, ua)
}

func TestNew_ZeroWeightCorpusFails(t *testing.T) {
	ds := networkDataset()
	for i := range ds.Records {
		ds.Records[i].Weight = 0
	}
	_, err := New(context.Background(), Config{}, WithFetcher(&countingFetcher{dataset: ds}))
	assert.ErrorIs(t, err, persona.ErrCorpusExhausted)
}

func TestNew_UnwritableCachePathFails(t *testing.T) {
	_, err := New(context.Background(), Config{
		UseDiskCache: true,
		CachePath:    "/proc/uaforge-no-such-place/corpus.json",
		CacheTTL:     time.Hour,
	})
	assert.ErrorIs(t, err, persona.ErrInvalidConfig)
}

func TestEngine_Headers(t *testing.T) {
	e := newReadyEngine(t)

	h, err := e.Headers("https://example.com/search?q=go")
	require.NoError(t, err)
	ua, ok := h.Get("user-agent")
	require.True(t, ok)
	assert.NotEmpty(t, ua)

	_, err = e.Headers("not a url")
	assert.ErrorIs(t, err, persona.ErrInvalidInput)
}

func TestEngine_CrawlerHeaders(t *testing.T) {
	e := newReadyEngine(t)

	first, err := e.CrawlerHeaders(persona.CrawlerGoogle)
	require.NoError(t, err)
	second, err := e.CrawlerHeaders(persona.CrawlerGoogle)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = e.CrawlerHeaders(persona.CrawlerKind("nope"))
	assert.ErrorIs(t, err, persona.ErrUnknownCrawler)
}

func TestEngine_UseAfterClose(t *testing.T) {
	e := newReadyEngine(t)
	require.NoError(t, e.Close())
	require.NoError(t, e.Close(), "close is idempotent")

	_, err := e.Identity()
	assert.ErrorIs(t, err, persona.ErrClosed)
	_, err = e.Headers("https://example.com")
	assert.ErrorIs(t, err, persona.ErrClosed)
	_, err = e.CrawlerHeaders(persona.CrawlerGoogle)
	assert.ErrorIs(t, err, persona.ErrClosed)
	_, err = e.Source()
	assert.ErrorIs(t, err, persona.ErrClosed)
}

func TestEngine_ConcurrentIdentityCalls(t *testing.T) {
	fetcher := &countingFetcher{dataset: networkDataset()}
	e, err := New(context.Background(), Config{}, WithFetcher(fetcher))
	require.NoError(t, err)
	defer func() { _ = e.Close() }()

	const goroutines = 32
	const drawsEach = 200

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < drawsEach; i++ {
				if _, err := e.Identity(); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent identity draw failed: %v", err)
	}

	// Resolution ran once at construction; concurrent draws never re-fetch.
	assert.Equal(t, int32(1), fetcher.calls.Load())
}
