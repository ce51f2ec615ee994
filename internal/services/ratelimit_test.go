package services

import (
	"testing"
	"time"
)

// fixedClock lets tests move the limiter's idea of now.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*SlidingWindowLimiter, *fixedClock) {
	clock := &fixedClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewSlidingWindowLimiter(limit, window)
	l.now = clock.now
	return l, clock
}

func TestLimiterAdmitsUpToLimit(t *testing.T) {
	l, _ := newTestLimiter(60, time.Minute)

	for i := 0; i < 60; i++ {
		if !l.TryAcquire(BucketGeocode) {
			t.Fatalf("call %d denied below the limit", i+1)
		}
	}
	if l.TryAcquire(BucketGeocode) {
		t.Fatal("call 61 admitted over the limit")
	}
}

func TestLimiterWindowSlides(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	if !l.TryAcquire(BucketGeocode) {
		t.Fatal("first call denied")
	}
	clock.advance(30 * time.Second)
	if !l.TryAcquire(BucketGeocode) {
		t.Fatal("second call denied")
	}
	if l.TryAcquire(BucketGeocode) {
		t.Fatal("third call admitted with a full window")
	}

	// 31s later the first timestamp has aged out; exactly one slot frees.
	clock.advance(31 * time.Second)
	if !l.TryAcquire(BucketGeocode) {
		t.Fatal("call denied after the oldest timestamp aged out")
	}
	if l.TryAcquire(BucketGeocode) {
		t.Fatal("extra call admitted, denial must not have freed a slot")
	}
}

func TestLimiterDenialRecordsNothing(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)

	if !l.TryAcquire(BucketGeocode) {
		t.Fatal("first call denied")
	}
	for i := 0; i < 5; i++ {
		if l.TryAcquire(BucketGeocode) {
			t.Fatal("admitted over the limit")
		}
	}

	// If denials consumed quota the bucket would still be full here.
	clock.advance(time.Minute + time.Second)
	if !l.TryAcquire(BucketGeocode) {
		t.Fatal("denials consumed quota")
	}
}

func TestLimiterBucketsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	if !l.TryAcquire(BucketGeocode) {
		t.Fatal("geocode call denied")
	}
	if l.TryAcquire(BucketGeocode) {
		t.Fatal("geocode over-admitted")
	}
	if !l.TryAcquire(BucketDistance) {
		t.Fatal("exhausting geocode must not affect distance")
	}
}
