package cache

import (
	"path/filepath"
	"testing"
)

type examplePage struct {
	Items    []string
	NextPage *string
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachePutGetRoundTrip(t *testing.T) {
	c := openTestCache(t)

	want := examplePage{Items: []string{"a", "b"}}
	if err := c.Put("http://example/page1", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got examplePage
	found, err := c.Get("http://example/page1", &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if len(got.Items) != 2 || got.Items[0] != "a" || got.Items[1] != "b" {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheMiss(t *testing.T) {
	c := openTestCache(t)

	var dest examplePage
	found, err := c.Get("http://example/missing", &dest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected a miss for a key never written")
	}
}

func TestCacheGetRemovesEntryItCannotDecode(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("http://example/bad", examplePage{Items: []string{"x"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// A destination type the stored JSON can't unmarshal into (a number
	// where the entry holds an object) exercises the same "corrupted
	// entry" path Get uses for a malformed envelope: report a miss and
	// remove the entry so it doesn't keep failing on every future lookup.
	var wrongShape int
	found, err := c.Get("http://example/bad", &wrongShape)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected unmarshal failure into an incompatible destination to report a miss")
	}

	var dest examplePage
	found, err = c.Get("http://example/bad", &dest)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("expected the entry to have been removed after the first failed read")
	}
}

func TestCacheable(t *testing.T) {
	tests := []struct {
		name                                        string
		itemCount, pageSize                         int
		hasNextPage, allItemsTerminal, wantCacheable bool
	}{
		{"full page, next page, all terminal", 100, 100, true, true, true},
		{"no next page", 100, 100, false, true, false},
		{"partial page", 50, 100, true, true, false},
		{"not all terminal", 100, 100, true, false, false},
		{"empty page", 0, 100, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cacheable(tt.itemCount, tt.pageSize, tt.hasNextPage, tt.allItemsTerminal)
			if got != tt.wantCacheable {
				t.Errorf("Cacheable(%d, %d, %v, %v) = %v, want %v",
					tt.itemCount, tt.pageSize, tt.hasNextPage, tt.allItemsTerminal, got, tt.wantCacheable)
			}
		})
	}
}
