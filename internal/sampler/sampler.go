// Package sampler draws weighted-random client identities from a resolved
// corpus and expands them into full profiles.
package sampler

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/uaforge/uaforge/internal/persona"
)

// Sampler performs O(log n) weighted draws over an immutable dataset. The
// cumulative index is built once at construction. The randomness source is
// injectable so draw sequences are reproducible in tests; access to it is
// serialized because rand sources are not safe for concurrent use.
type Sampler struct {
	dataset persona.CorpusDataset
	cum     []float64
	total   float64

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a sampler over dataset. src may be nil, in which case a
// time-seeded PCG source is used. A dataset whose weights sum to zero is
// unusable and reported as corpus exhaustion.
func New(dataset persona.CorpusDataset, src rand.Source) (*Sampler, error) {
	cum := make([]float64, len(dataset.Records))
	var total float64
	for i, r := range dataset.Records {
		w := r.Weight
		if w < 0 {
			w = 0
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: dataset of %d records has zero total weight",
			persona.ErrCorpusExhausted, len(dataset.Records))
	}

	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &Sampler{
		dataset: dataset,
		cum:     cum,
		total:   total,
		rng:     rand.New(src),
	}, nil
}

// Dataset returns the corpus this sampler draws from.
func (s *Sampler) Dataset() persona.CorpusDataset {
	return s.dataset
}

// Record draws one weighted-random corpus record.
func (s *Sampler) Record() (persona.CorpusRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(), nil
}

func (s *Sampler) record() persona.CorpusRecord {
	v := s.rng.Float64() * s.total
	idx := sort.Search(len(s.cum), func(i int) bool { return s.cum[i] > v })
	if idx >= len(s.cum) {
		// Float rounding at the very top of the range.
		idx = len(s.cum) - 1
	}
	return s.dataset.Records[idx]
}

// Profile draws a record and expands it into a full client profile, including
// the bounded locale/viewport/GREASE sub-draws.
func (s *Sampler) Profile() (persona.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return expand(s.record(), s.rng), nil
}
