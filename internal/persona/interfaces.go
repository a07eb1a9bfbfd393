package persona

import (
	"context"
	"time"
)

// CorpusCache persists a resolved corpus between runs. Load fails soft: a
// missing, unreadable, corrupt, or expired cache reports absent, never an
// error.
type CorpusCache interface {
	Load(now time.Time) (CorpusDataset, bool)
	Store(dataset CorpusDataset) error
}

// CorpusFetcher retrieves a fresh corpus from a remote source.
type CorpusFetcher interface {
	Fetch(ctx context.Context) (CorpusDataset, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
