package services

import (
	"sync"
	"time"
)

// Rate limiter buckets, one per provider call type. Each bucket has its own
// independent quota window.
const (
	BucketGeocode  = "geocode"
	BucketDistance = "distance"
)

// SlidingWindowLimiter admits at most limit calls per window, per bucket.
// Admission and timestamp pruning happen under one mutex so concurrent
// callers cannot over-admit. The limiter does not queue or retry; callers
// decide what a denial means.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	now    func() time.Time
	calls  map[string][]time.Time
}

func NewSlidingWindowLimiter(limit int, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		calls:  make(map[string][]time.Time),
	}
}

// TryAcquire records one call against the bucket if the window has room.
// On denial only the pruning persists; no call is recorded.
func (l *SlidingWindowLimiter) TryAcquire(bucket string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	timestamps := l.calls[bucket]
	pruned := timestamps[:0]
	for _, ts := range timestamps {
		if ts.After(cutoff) {
			pruned = append(pruned, ts)
		}
	}

	if len(pruned) >= l.limit {
		l.calls[bucket] = pruned
		return false
	}

	l.calls[bucket] = append(pruned, now)
	return true
}
