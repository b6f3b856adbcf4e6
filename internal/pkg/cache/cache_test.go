package cache

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemoTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	memo := NewMemo[string](5*time.Minute, clock.Now)

	_, ok := memo.Get()
	assert.False(t, ok, "empty memo should miss")

	memo.Set("roster")
	got, ok := memo.Get()
	require.True(t, ok)
	assert.Equal(t, "roster", got)

	clock.Advance(4 * time.Minute)
	_, ok = memo.Get()
	assert.True(t, ok, "memo should survive within the TTL window")

	clock.Advance(1 * time.Minute)
	_, ok = memo.Get()
	assert.False(t, ok, "memo should expire at the TTL boundary")
}

func TestMemoInvalidate(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	memo := NewMemo[int](time.Hour, clock.Now)

	memo.Set(42)
	memo.Invalidate()
	_, ok := memo.Get()
	assert.False(t, ok)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0)
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := store.Get(2024)
	require.NoError(t, err)
	assert.Nil(t, got, "missing year should yield nil entry")

	require.NoError(t, store.Put(2024, Entry{Timestamp: ts, Payload: []byte(`{"year":2024}`)}))

	got, err = store.Get(2024)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Timestamp.Equal(ts))
	assert.Equal(t, []byte(`{"year":2024}`), got.Payload)

	// Overwrite replaces in place.
	require.NoError(t, store.Put(2024, Entry{Timestamp: ts, Payload: []byte(`{}`)}))
	got, err = store.Get(2024)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got.Payload)
}

func TestMemoryStoreCapacity(t *testing.T) {
	store := NewMemoryStore(2)
	e := Entry{Timestamp: time.Now(), Payload: []byte("x")}

	require.NoError(t, store.Put(2022, e))
	require.NoError(t, store.Put(2023, e))

	err := store.Put(2024, e)
	assert.ErrorIs(t, err, ErrStoreFull)

	// Rewriting an existing year is not a new slot.
	assert.NoError(t, store.Put(2023, e))

	require.NoError(t, store.Delete(2022))
	assert.NoError(t, store.Put(2024, e))
}

func TestMemoryStoreYearsAndDeleteAll(t *testing.T) {
	store := NewMemoryStore(0)
	e := Entry{Timestamp: time.Now(), Payload: []byte("x")}
	for _, y := range []int{2021, 2022, 2024} {
		require.NoError(t, store.Put(y, e))
	}

	years, err := store.Years()
	require.NoError(t, err)
	sort.Ints(years)
	assert.Equal(t, []int{2021, 2022, 2024}, years)

	require.NoError(t, store.DeleteAll())
	years, err = store.Years()
	require.NoError(t, err)
	assert.Empty(t, years)
}
