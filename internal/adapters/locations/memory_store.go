package locations

import (
	"context"
	"sync"
	"time"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
)

// FreshnessTTL is how long a stored user location is trusted before it is
// treated as absent.
const FreshnessTTL = time.Hour

// MemoryStore holds the last resolved user location in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	record ports.StoredUserLocation
	saved  bool
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) Save(ctx context.Context, coords domain.Coordinates, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = ports.StoredUserLocation{
		Coordinates: coords,
		Address:     address,
		ResolvedAt:  s.now().UTC(),
	}
	s.saved = true
	return nil
}

func (s *MemoryStore) Load(ctx context.Context) (ports.StoredUserLocation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return ports.StoredUserLocation{}, false, nil
	}
	if s.now().Sub(s.record.ResolvedAt) > FreshnessTTL {
		s.record = ports.StoredUserLocation{}
		s.saved = false
		return ports.StoredUserLocation{}, false, nil
	}
	return s.record, true, nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = ports.StoredUserLocation{}
	s.saved = false
	return nil
}
