package cache

import (
	"errors"
	"sync"
	"time"
)

// Clock supplies the current time. Injectable so staleness windows are
// testable without real delays.
type Clock func() time.Time

// ErrStoreFull is returned by a ReportStore when the backing storage has no
// room left. Callers evict expired entries and retry once.
var ErrStoreFull = errors.New("report store full")

// Entry is a timestamped payload held by a ReportStore.
type Entry struct {
	Timestamp time.Time
	Payload   []byte
}

// ReportStore persists generated annual reports keyed by year.
type ReportStore interface {
	Get(year int) (*Entry, error)
	Put(year int, e Entry) error
	Delete(year int) error
	DeleteAll() error
	Years() ([]int, error)
}

// Memo is a single-value TTL memo guarding an expensive load.
type Memo[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock Clock

	has   bool
	at    time.Time
	value T
}

func NewMemo[T any](ttl time.Duration, clock Clock) *Memo[T] {
	if clock == nil {
		clock = time.Now
	}
	return &Memo[T]{ttl: ttl, clock: clock}
}

// Get returns the memoized value when it is still within the TTL window.
func (m *Memo[T]) Get() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.has || m.clock().Sub(m.at) >= m.ttl {
		var zero T
		return zero, false
	}
	return m.value, true
}

func (m *Memo[T]) Set(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.at = m.clock()
	m.has = true
}

func (m *Memo[T]) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	m.value = zero
	m.has = false
}
