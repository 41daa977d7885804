package cache

import (
	"strconv"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	c := New[string, int](100)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Capacity() != 100 {
		t.Errorf("expected capacity 100, got %d", c.Capacity())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestNew_DefaultCapacity(t *testing.T) {
	c := New[string, int](0)
	if c.Capacity() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, c.Capacity())
	}
}

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](10)

	// Set a value
	c.Set("key1", 42)

	// Get existing key
	val, ok := c.Get("key1")
	if !ok {
		t.Error("expected key1 to exist")
	}
	if val != 42 {
		t.Errorf("expected 42, got %d", val)
	}

	// Get non-existing key
	_, ok = c.Get("nonexistent")
	if ok {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](10)
	createCalled := 0

	// First call should create
	val := c.GetOrCreate("key1", func() int {
		createCalled++
		return 100
	})
	if val != 100 {
		t.Errorf("expected 100, got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create called once, got %d", createCalled)
	}

	// Second call should return cached
	val = c.GetOrCreate("key1", func() int {
		createCalled++
		return 200
	})
	if val != 100 {
		t.Errorf("expected cached 100, got %d", val)
	}
	if createCalled != 1 {
		t.Errorf("expected create still called once, got %d", createCalled)
	}
}

func TestCacheEviction(t *testing.T) {
	c := New[string, int](3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so "b" becomes the oldest.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to exist")
	}

	// Inserting a fourth entry evicts the least recently used.
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %s to survive eviction", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}
}

func TestCacheUpdateExisting(t *testing.T) {
	c := New[string, int](2)

	c.Set("a", 1)
	c.Set("a", 2)
	if c.Len() != 1 {
		t.Errorf("updating a key must not grow the cache, got %d entries", c.Len())
	}
	if val, _ := c.Get("a"); val != 2 {
		t.Errorf("expected updated value 2, got %d", val)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](10)

	c.Set("a", 1)
	if !c.Delete("a") {
		t.Error("expected Delete to report removal")
	}
	if c.Delete("a") {
		t.Error("expected second Delete to report absence")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected deleted key to be gone")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](10)

	for i := 0; i < 5; i++ {
		c.Set(strconv.Itoa(i), i)
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	// The cache must remain usable.
	c.Set("x", 1)
	if val, ok := c.Get("x"); !ok || val != 1 {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheStats(t *testing.T) {
	c := New[string, int](2)

	c.Set("a", 1)
	c.Get("a")       // hit
	c.Get("missing") // miss
	c.Set("b", 2)
	c.Set("c", 3) // evicts

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("expected 1 miss, got %d", stats.Misses)
	}
	if stats.Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", stats.Evictions)
	}
	if stats.Len != 2 {
		t.Errorf("expected len 2, got %d", stats.Len)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[string, int](128)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := strconv.Itoa(i % 32)
				c.Set(key, i)
				c.Get(key)
				c.GetOrCreate(key, func() int { return i })
			}
		}(g)
	}
	wg.Wait()
}
