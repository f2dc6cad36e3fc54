package cas

import (
	"testing"

	"github.com/brewin-lang/brewin/ast"
)

func TestLRUCache_BasicOperation(t *testing.T) {
	underlying := NewMemoryCAS()
	cache := NewLRUCache(underlying, 3) // Small cache for testing

	hash, err := cache.Put(parseUntyped(t, factSource))
	if err != nil {
		t.Fatalf("Failed to put program: %v", err)
	}

	// ref plus two functions fill the cache
	if _, err := Retrieve[*ast.Node](cache, hash); err != nil {
		t.Fatalf("Failed to retrieve program: %v", err)
	}
	stats := cache.Stats()
	if stats.Size != 3 {
		t.Errorf("Cache should have 3 entries, got %d", stats.Size)
	}
	if stats.Misses == 0 {
		t.Errorf("First retrieval should miss")
	}

	before := stats.Hits
	if _, err := Retrieve[*ast.Node](cache, hash); err != nil {
		t.Fatalf("Failed to retrieve program again: %v", err)
	}
	stats = cache.Stats()
	if stats.Hits <= before {
		t.Errorf("Second retrieval should hit, hits %d -> %d", before, stats.Hits)
	}

	hash2, err := cache.Put(parseUntyped(t, otherMainSource))
	if err != nil {
		t.Fatalf("Failed to put second program: %v", err)
	}
	n, err := Retrieve[*ast.Node](cache, hash2)
	if err != nil {
		t.Fatalf("Failed to retrieve second program: %v", err)
	}
	if len(n.List("functions")) != 2 {
		t.Errorf("Expected 2 functions, got %d", len(n.List("functions")))
	}

	stats = cache.Stats()
	if stats.Size > stats.MaxSize {
		t.Errorf("Cache size %d exceeds max size %d after eviction", stats.Size, stats.MaxSize)
	}
}

func TestLRUCache_Has(t *testing.T) {
	cache := NewLRUCache(NewMemoryCAS(), 10)

	hash, err := cache.Put(ast.NewNode("nil", 1))
	if err != nil {
		t.Fatalf("Failed to put node: %v", err)
	}
	if !cache.Has(hash) {
		t.Errorf("Cache should report hash exists")
	}
	if cache.Has(Hash(99999)) {
		t.Errorf("Cache should report non-existent hash doesn't exist")
	}
}

func TestLRUCache_Refs(t *testing.T) {
	underlying := NewMemoryCAS()
	cache := NewLRUCache(underlying, 0)

	if err := cache.SetRef(Hash(1), Hash(2)); err != nil {
		t.Fatalf("SetRef: %v", err)
	}
	target, ok, err := underlying.GetRef(Hash(1))
	if err != nil || !ok || target != Hash(2) {
		t.Errorf("Ref should pass through to underlying store, got %v %v %v", target, ok, err)
	}
	if cache.Stats().MaxSize != 1000 {
		t.Errorf("Default max size should be 1000")
	}
}
