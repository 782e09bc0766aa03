package cache_test

import (
	"testing"

	"github.com/veryl-lang/veryl-go/internal/cache"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetMissOnEmptyCache(t *testing.T) {
	c := openTestCache(t)
	if _, ok, err := c.Get("file:///a.veryl", "h1"); err != nil || ok {
		t.Fatalf("Get on empty cache = ok:%v err:%v, want miss", ok, err)
	}
}

func TestPutThenGetHit(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("file:///a.veryl", "h1", `[]`, 1000); err != nil {
		t.Fatalf("Put: %v", err)
	}
	diags, ok, err := c.Get("file:///a.veryl", "h1")
	if err != nil || !ok {
		t.Fatalf("Get = ok:%v err:%v, want hit", ok, err)
	}
	if diags != `[]` {
		t.Errorf("diagnostics = %q, want []", diags)
	}
}

func TestGetMissOnHashChange(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("file:///a.veryl", "h1", `[]`, 1000); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, err := c.Get("file:///a.veryl", "h2"); err != nil || ok {
		t.Fatalf("Get after hash change = ok:%v err:%v, want miss", ok, err)
	}
}

func TestPutOverwritesPriorEntry(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("file:///a.veryl", "h1", `[]`, 1000); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Put("file:///a.veryl", "h2", `["x"]`, 2000); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, ok, _ := c.Get("file:///a.veryl", "h1"); ok {
		t.Errorf("stale hash still hits after overwrite")
	}
	diags, ok, err := c.Get("file:///a.veryl", "h2")
	if err != nil || !ok || diags != `["x"]` {
		t.Errorf("Get after overwrite = %q ok:%v err:%v", diags, ok, err)
	}
}

func TestInvalidate(t *testing.T) {
	c := openTestCache(t)
	if err := c.Put("file:///a.veryl", "h1", `[]`, 1000); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Invalidate("file:///a.veryl"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, err := c.Get("file:///a.veryl", "h1"); err != nil || ok {
		t.Fatalf("Get after Invalidate = ok:%v err:%v, want miss", ok, err)
	}
}
