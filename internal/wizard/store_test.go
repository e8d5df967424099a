package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetMiss(t *testing.T) {
	s := NewStore(time.Minute, 4)
	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestStorePutGet(t *testing.T) {
	s := NewStore(time.Minute, 4)
	w := New(newFakeBackend(), nil)

	s.Put("a", w)
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Same(t, w, got)
	assert.Equal(t, 1, s.Len())
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(10*time.Millisecond, 4)
	s.Put("a", New(newFakeBackend(), nil))

	time.Sleep(25 * time.Millisecond)
	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStoreGetBumpsExpiry(t *testing.T) {
	s := NewStore(40*time.Millisecond, 4)
	s.Put("a", New(newFakeBackend(), nil))

	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		_, ok := s.Get("a")
		require.True(t, ok, "entry should survive while it keeps being used")
	}
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s := NewStore(time.Minute, 2)
	s.Put("old", New(newFakeBackend(), nil))
	s.Put("new", New(newFakeBackend(), nil))

	_, ok := s.Get("old") // refresh "old" so "new" becomes the eviction target
	require.True(t, ok)

	s.Put("third", New(newFakeBackend(), nil))
	assert.Equal(t, 2, s.Len())

	_, ok = s.Get("new")
	assert.False(t, ok)
	_, ok = s.Get("old")
	assert.True(t, ok)
}

func TestStoreCleanExpired(t *testing.T) {
	s := NewStore(10*time.Millisecond, 8)
	s.Put("a", New(newFakeBackend(), nil))
	s.Put("b", New(newFakeBackend(), nil))

	time.Sleep(25 * time.Millisecond)
	s.Put("c", New(newFakeBackend(), nil))

	removed := s.CleanExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(time.Minute, 4)
	s.Put("a", New(newFakeBackend(), nil))
	s.Delete("a")
	_, ok := s.Get("a")
	assert.False(t, ok)
}
