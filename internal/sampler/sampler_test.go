package sampler

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uaforge/uaforge/internal/persona"
)

func weightedDataset() persona.CorpusDataset {
	return persona.CorpusDataset{
		Records: []persona.CorpusRecord{
			{Browser: persona.BrowserChrome, Version: "140.0.1.2", OS: "Windows",
				Device: persona.DeviceDesktop, Weight: 6, UserAgent: "ua-chrome", ClientHints: true},
			{Browser: persona.BrowserFirefox, Version: "142.0", OS: "Linux",
				Device: persona.DeviceDesktop, Weight: 3, UserAgent: "ua-firefox"},
			{Browser: persona.BrowserSafari, Version: "18.6", OS: "iOS",
				Device: persona.DeviceMobile, Weight: 1, UserAgent: "ua-safari"},
		},
		Retrieved: time.Now(),
		Source:    persona.SourceStaticFallback,
	}
}

func seeded(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

func TestNew_ZeroWeightCorpus(t *testing.T) {
	ds := persona.CorpusDataset{
		Records: []persona.CorpusRecord{{Weight: 0}, {Weight: 0}},
	}
	_, err := New(ds, seeded(1))
	assert.ErrorIs(t, err, persona.ErrCorpusExhausted)

	_, err = New(persona.CorpusDataset{}, seeded(1))
	assert.ErrorIs(t, err, persona.ErrCorpusExhausted)
}

func TestRecord_AlwaysInsideDataset(t *testing.T) {
	ds := weightedDataset()
	s, err := New(ds, seeded(42))
	require.NoError(t, err)

	known := map[string]bool{}
	for _, r := range ds.Records {
		known[r.UserAgent] = true
	}
	for i := 0; i < 1000; i++ {
		r, err := s.Record()
		require.NoError(t, err)
		assert.True(t, known[r.UserAgent])
	}
}

func TestRecord_FrequencyMatchesWeights(t *testing.T) {
	ds := weightedDataset()
	s, err := New(ds, seeded(7))
	require.NoError(t, err)

	const draws = 50000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		r, err := s.Record()
		require.NoError(t, err)
		counts[r.UserAgent]++
	}

	total := ds.TotalWeight()
	for _, r := range ds.Records {
		expected := r.Weight / total
		observed := float64(counts[r.UserAgent]) / draws
		assert.InDelta(t, expected, observed, 0.02,
			"record %s: expected %.3f observed %.3f", r.UserAgent, expected, observed)
	}
}

func TestRecord_ZeroWeightRecordNeverDrawn(t *testing.T) {
	ds := weightedDataset()
	ds.Records = append(ds.Records, persona.CorpusRecord{
		Weight: 0, UserAgent: "ua-never",
	})
	s, err := New(ds, seeded(3))
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		r, err := s.Record()
		require.NoError(t, err)
		assert.NotEqual(t, "ua-never", r.UserAgent)
	}
}

func TestSampler_DeterministicWithFixedSeed(t *testing.T) {
	ds := weightedDataset()
	a, err := New(ds, seeded(99))
	require.NoError(t, err)
	b, err := New(ds, seeded(99))
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		pa, err := a.Profile()
		require.NoError(t, err)
		pb, err := b.Profile()
		require.NoError(t, err)
		assert.Equal(t, pa, pb)
	}
}

func TestProfile_ConsistentWithRecord(t *testing.T) {
	s, err := New(weightedDataset(), seeded(5))
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		p, err := s.Profile()
		require.NoError(t, err)

		switch p.UserAgent {
		case "ua-chrome":
			assert.Equal(t, persona.BrowserChrome, p.Family)
			assert.Equal(t, "Windows", p.Platform)
			assert.False(t, p.Mobile)
			assert.True(t, p.ClientHints)
			require.Len(t, p.Brands, 3)
			assert.Equal(t, "Chromium", p.Brands[1].Brand)
			assert.Equal(t, "140", p.Brands[1].Version)
			assert.Equal(t, "Google Chrome", p.Brands[2].Brand)
		case "ua-firefox":
			assert.Equal(t, persona.BrowserFirefox, p.Family)
			assert.Equal(t, "Linux", p.Platform)
			assert.False(t, p.ClientHints)
			assert.Empty(t, p.Brands)
		case "ua-safari":
			assert.Equal(t, "iOS", p.Platform)
			assert.True(t, p.Mobile)
			assert.Empty(t, p.Brands)
		default:
			t.Fatalf("profile from outside the dataset: %q", p.UserAgent)
		}

		assert.NotEmpty(t, p.AcceptLanguage)
		assert.Greater(t, p.Viewport.Width, 0)
		assert.Greater(t, p.Viewport.Height, 0)
	}
}

func TestProfile_MobileViewportsAreMobileSized(t *testing.T) {
	ds := persona.CorpusDataset{
		Records: []persona.CorpusRecord{
			{Browser: persona.BrowserSafari, Version: "18.6", OS: "iOS",
				Device: persona.DeviceMobile, Weight: 1, UserAgent: "ua"},
		},
	}
	s, err := New(ds, seeded(11))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		p, err := s.Profile()
		require.NoError(t, err)
		assert.LessOrEqual(t, p.Viewport.Width, 500)
		assert.Greater(t, p.Viewport.Height, p.Viewport.Width, "portrait orientation expected")
	}
}

func TestMajorOf(t *testing.T) {
	assert.Equal(t, "140", majorOf("140.0.7339.128"))
	assert.Equal(t, "142", majorOf("142.0"))
	assert.Equal(t, "18", majorOf("18.6"))
	assert.Equal(t, "99", majorOf("99"))
}

func TestDrawGreaseBrand_ShapeIsStable(t *testing.T) {
	rng := rand.New(seeded(13))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		brand, version := drawGreaseBrand(rng)
		assert.Contains(t, []string{"8", "24", "99"}, version)
		assert.Len(t, brand, len("Not A Brand"))
		seen[brand] = true
	}
	assert.Greater(t, len(seen), 1, "GREASE brand should vary")
}
