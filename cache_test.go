package genmapgrid

import (
	"fmt"
	"testing"
)

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache[int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)

	// Touch "a" so "b" becomes the oldest entry.
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	c.Put("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to survive eviction", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCachePutRefreshesExisting(t *testing.T) {
	c := NewCache[string](2)
	c.Put("a", "one")
	c.Put("b", "two")
	c.Put("a", "uno") // refresh, "b" is now oldest
	c.Put("c", "three")

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted after a was refreshed")
	}
	if v, _ := c.Get("a"); v != "uno" {
		t.Errorf("Get(a) = %q, want updated value", v)
	}
}

func TestCacheZeroCapacityStillHoldsOne(t *testing.T) {
	c := NewCache[int](0)
	c.Put("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1", v, ok)
	}
	c.Put("b", 2)
	if _, ok := c.Get("a"); ok {
		t.Error("capacity one should hold a single entry")
	}
}

func TestCacheKeyCoversEveryOption(t *testing.T) {
	base := NewGenerationOptions("key-seed").Normalized()
	keys := map[string]string{"base": CacheKey(base)}

	variants := map[string]func(o GenerationOptions) GenerationOptions{
		"seed":    func(o GenerationOptions) GenerationOptions { o.Seed = "other-seed"; return o },
		"width":   func(o GenerationOptions) GenerationOptions { o.Width = 2048; return o },
		"height":  func(o GenerationOptions) GenerationOptions { o.Height = 1024; return o },
		"sea":     func(o GenerationOptions) GenerationOptions { o.SeaLevel = 0.56; return o },
		"climate": func(o GenerationOptions) GenerationOptions { o.Climate = ClimateArid; return o },
		"cellsX":  func(o GenerationOptions) GenerationOptions { o.CellsX = 150; return o },
		"cellsY":  func(o GenerationOptions) GenerationOptions { o.CellsY = 100; return o },
		"quality": func(o GenerationOptions) GenerationOptions { o.Quality = "high"; return o },
	}
	for name, mutate := range variants {
		keys[name] = CacheKey(mutate(base))
	}

	seen := make(map[string]string)
	for name, key := range keys {
		if prev, ok := seen[key]; ok {
			t.Errorf("options %q and %q share cache key %q", prev, name, key)
		}
		seen[key] = name
	}
}

func TestCacheKeyStable(t *testing.T) {
	o := NewGenerationOptions("stable")
	if CacheKey(o) != CacheKey(o) {
		t.Error("CacheKey should be deterministic")
	}
	// Normalization happens inside the key derivation.
	raw := o
	raw.SeaLevel = -5
	norm := o
	norm.SeaLevel = 0
	if CacheKey(raw) != CacheKey(norm) {
		t.Error("CacheKey should normalize its input")
	}
}

func TestLayersCacheKeySeparatesFidelity(t *testing.T) {
	o := NewGenerationOptions("fidelity")
	if layersCacheKey(o, FidelityDisplay) == layersCacheKey(o, FidelitySimulation) {
		t.Error("display and simulation layers must not share a cache key")
	}
}

func TestCacheKeySeaLevelPrecision(t *testing.T) {
	a := NewGenerationOptions("sea")
	a.SeaLevel = 0.50
	b := NewGenerationOptions("sea")
	b.SeaLevel = 0.56
	if CacheKey(a) == CacheKey(b) {
		t.Errorf("sea levels 0.50 and 0.56 share key %s", CacheKey(a))
	}
}

func BenchmarkCachePutGet(b *testing.B) {
	c := NewCache[int](64)
	for i := 0; i < b.N; i++ {
		k := fmt.Sprintf("key-%d", i%128)
		c.Put(k, i)
		c.Get(k)
	}
}
