package pipeline

import (
	"sync"
	"sync/atomic"
)

// RunStats tracks aggregate counters across a run. The counters are atomic
// and the bucket map is mutex-guarded because workers update them
// concurrently.
type RunStats struct {
	Scanned      atomic.Int64 // candidate files pulled from the walker
	Extracted    atomic.Int64 // files that yielded an icon
	Duplicates   atomic.Int64 // icons dropped because their digest was already admitted
	Saved        atomic.Int64 // unique icons written (or counted, in dry-run)
	BytesWritten atomic.Int64 // PNG bytes on disk

	mu      sync.Mutex
	buckets map[string]*BucketStats
}

// BucketStats holds per-size-bucket totals for the summary report.
type BucketStats struct {
	Icons int64
	Bytes int64
}

func (s *RunStats) recordBucket(bucket string, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets == nil {
		s.buckets = make(map[string]*BucketStats)
	}
	b := s.buckets[bucket]
	if b == nil {
		b = &BucketStats{}
		s.buckets[bucket] = b
	}
	b.Icons++
	b.Bytes += size
}

// Buckets returns a copy of the per-size totals, keyed by bucket name
// ("64x64", "32x32", ...).
func (s *RunStats) Buckets() map[string]BucketStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]BucketStats, len(s.buckets))
	for k, v := range s.buckets {
		out[k] = *v
	}
	return out
}
