package lru

import (
	"slices"
	"testing"
)

func TestCache(t *testing.T) {
	var evicted []string
	c := New(2, func(k string, _ int) { evicted = append(evicted, k) })

	c.Add("a", 1)
	c.Add("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %t", v, ok)
	}
	c.Add("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry was not evicted")
	}
	if !slices.Equal(evicted, []string{"b"}) {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestAddKeepsExisting(t *testing.T) {
	c := New[string, int](4, nil)
	if got := c.Add("a", 1); got != 1 {
		t.Errorf("Add() = %d, want 1", got)
	}
	if got := c.Add("a", 2); got != 1 {
		t.Errorf("second Add() = %d, want stored 1", got)
	}
}

func TestRemove(t *testing.T) {
	called := false
	c := New(4, func(string, int) { called = true })
	c.Add("a", 1)
	c.Remove("a")
	c.Remove("missing")
	if _, ok := c.Get("a"); ok || c.Len() != 0 {
		t.Error("entry was not removed")
	}
	if called {
		t.Error("Remove must not call onEvict")
	}
}

func TestMinimalSize(t *testing.T) {
	c := New[int, int](0, nil)
	c.Add(1, 1)
	c.Add(2, 2)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get(2); !ok {
		t.Error("last added entry must stay")
	}
}
