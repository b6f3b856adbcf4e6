package cache

import "sync"

// MemoryStore is an in-process ReportStore, used in tests and as a fallback
// when no cache file is configured. A non-zero capacity makes Put return
// ErrStoreFull once the limit is reached, so quota handling is testable.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]Entry
}

func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		capacity: capacity,
		entries:  make(map[int]Entry),
	}
}

func (s *MemoryStore) Get(year int) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[year]
	if !ok {
		return nil, nil
	}
	cp := e
	cp.Payload = append([]byte(nil), e.Payload...)
	return &cp, nil
}

func (s *MemoryStore) Put(year int, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[year]; !exists && s.capacity > 0 && len(s.entries) >= s.capacity {
		return ErrStoreFull
	}
	e.Payload = append([]byte(nil), e.Payload...)
	s.entries[year] = e
	return nil
}

func (s *MemoryStore) Delete(year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, year)
	return nil
}

func (s *MemoryStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int]Entry)
	return nil
}

func (s *MemoryStore) Years() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	years := make([]int, 0, len(s.entries))
	for y := range s.entries {
		years = append(years, y)
	}
	return years, nil
}
