package cache

import (
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheBasicOperations(t *testing.T) {
	cache := NewMemoryCache(1024)

	if err := cache.Put("a", []byte("hello")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := cache.Get("a")
	if !ok || string(got) != "hello" {
		t.Errorf("Get(a) = %q, %v", got, ok)
	}
	if _, ok := cache.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
	if cache.Size() != 5 {
		t.Errorf("Size() = %d, want 5", cache.Size())
	}

	cache.Delete("a")
	if cache.Contains("a") {
		t.Error("a should be deleted")
	}
	if cache.Size() != 0 {
		t.Errorf("Size() after delete = %d, want 0", cache.Size())
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	cache := NewMemoryCache(10)

	_ = cache.Put("a", make([]byte, 4))
	_ = cache.Put("b", make([]byte, 4))

	// Touch a so b is least recently used.
	cache.Get("a")

	if err := cache.Put("c", make([]byte, 4)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if cache.Contains("b") {
		t.Error("b should have been evicted")
	}
	if !cache.Contains("a") || !cache.Contains("c") {
		t.Error("a and c should be cached")
	}
	if got := cache.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestMemoryCacheReplace(t *testing.T) {
	cache := NewMemoryCache(10)

	_ = cache.Put("a", make([]byte, 8))
	_ = cache.Put("a", make([]byte, 3))

	if cache.Size() != 3 {
		t.Errorf("Size() = %d, want 3", cache.Size())
	}
	if got := cache.Stats().ItemCount; got != 1 {
		t.Errorf("ItemCount = %d, want 1", got)
	}
}

func TestMemoryCacheItemTooLarge(t *testing.T) {
	cache := NewMemoryCache(4)

	if err := cache.Put("big", make([]byte, 5)); !errors.Is(err, ErrItemTooLarge) {
		t.Errorf("Put error = %v, want ErrItemTooLarge", err)
	}
	if cache.Contains("big") {
		t.Error("oversized item should not be cached")
	}
}

func TestMemoryCacheStats(t *testing.T) {
	cache := NewMemoryCache(100)
	_ = cache.Put("a", []byte("x"))

	cache.Get("a")
	cache.Get("a")
	cache.Get("a")
	cache.Get("b")

	stats := cache.Stats()
	if stats.Hits != 3 || stats.Misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 3/1", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0.75 {
		t.Errorf("HitRate = %v, want 0.75", stats.HitRate)
	}
	if stats.Capacity != 100 {
		t.Errorf("Capacity = %d, want 100", stats.Capacity)
	}
}

func TestMemoryCacheClearAndPrune(t *testing.T) {
	cache := NewMemoryCache(100)
	_ = cache.Put("a", []byte("x"))
	_ = cache.Put("b", []byte("y"))

	if n := cache.Prune(time.Hour); n != 0 {
		t.Errorf("Prune(1h) removed %d fresh entries", n)
	}
	if n := cache.Prune(-time.Second); n != 2 {
		t.Errorf("Prune(-1s) removed %d, want 2", n)
	}

	_ = cache.Put("c", []byte("z"))
	cache.Clear()
	if cache.Size() != 0 || cache.Contains("c") {
		t.Error("Clear should empty the cache")
	}
}
