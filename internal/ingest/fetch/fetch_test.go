package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"stormlightlabs.org/mmoldb/internal/ingest/cache"
)

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCanonicalURLIsStableAndOrderIndependentOfArgOrder(t *testing.T) {
	f := &Fetcher{BaseURL: "https://mmolb.com/api", Kind: "game", PageSize: 100}

	first := f.canonicalURL(nil, nil)
	second := f.canonicalURL(nil, nil)
	if first != second {
		t.Fatalf("canonicalURL(nil, nil) not stable: %q vs %q", first, second)
	}

	page := "cursor-1"
	withPage := f.canonicalURL(&page, nil)
	u, err := url.Parse(withPage)
	if err != nil {
		t.Fatalf("parse canonical URL: %v", err)
	}
	q := u.Query()
	if q.Get("kind") != "game" || q.Get("count") != "100" || q.Get("page") != "cursor-1" {
		t.Errorf("unexpected query params: %v", q)
	}
}

func TestFetchPageServesFromNetworkOnCacheMiss(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_ = json.NewEncoder(w).Encode(Page{
			Items: []Entity{{Kind: "game", EntityID: "g1"}},
		})
	}))
	defer srv.Close()

	c := openTestCache(t)
	f := &Fetcher{
		HTTP:     srv.Client(),
		BaseURL:  srv.URL,
		Kind:     "game",
		PageSize: 1,
		Cache:    c,
		IsTerminal: func(kind string, data json.RawMessage) bool {
			return true
		},
	}

	got, err := f.FetchPage(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].EntityID != "g1" {
		t.Fatalf("unexpected page: %+v", got)
	}
	if hits != 1 {
		t.Fatalf("expected exactly one network hit, got %d", hits)
	}
}

func TestFetchPageCachesOnlyCacheablePages(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		nextPage := "p2"
		_ = json.NewEncoder(w).Encode(Page{
			Items:    []Entity{{Kind: "game", EntityID: "g1"}, {Kind: "game", EntityID: "g2"}},
			NextPage: &nextPage,
		})
	}))
	defer srv.Close()

	c := openTestCache(t)
	f := &Fetcher{
		HTTP:       srv.Client(),
		BaseURL:    srv.URL,
		Kind:       "game",
		PageSize:   2,
		Cache:      c,
		IsTerminal: func(kind string, data json.RawMessage) bool { return true },
	}

	if _, err := f.FetchPage(context.Background(), nil, nil); err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if _, err := f.FetchPage(context.Background(), nil, nil); err != nil {
		t.Fatalf("FetchPage (second call): %v", err)
	}
	if hits != 1 {
		t.Fatalf("expected the second call to be served from cache, got %d network hits", hits)
	}
}

func TestFetchPageSurfacesUpstream5xxAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := &Fetcher{HTTP: srv.Client(), BaseURL: srv.URL, Kind: "game", PageSize: 10}
	if _, err := f.FetchPage(context.Background(), nil, nil); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}

func TestStreamStopsAfterPageWithNoNextPage(t *testing.T) {
	var pages int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		if pages < 3 {
			next := "more"
			_ = json.NewEncoder(w).Encode(Page{Items: nil, NextPage: &next})
			return
		}
		_ = json.NewEncoder(w).Encode(Page{Items: nil, NextPage: nil})
	}))
	defer srv.Close()

	f := &Fetcher{HTTP: srv.Client(), BaseURL: srv.URL, Kind: "game", PageSize: 10}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count := 0
	for res := range f.Stream(ctx, nil) {
		if res.err != nil {
			t.Fatalf("unexpected stream error: %v", res.err)
		}
		count++
	}
	if count != 3 {
		t.Fatalf("received %d pages, want 3", count)
	}
}

func TestStreamStopsOnFirstError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := &Fetcher{HTTP: srv.Client(), BaseURL: srv.URL, Kind: "game", PageSize: 10}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var results []pageResult
	for res := range f.Stream(ctx, nil) {
		results = append(results, res)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly one emitted result before stopping, got %d", len(results))
	}
	if results[0].err == nil {
		t.Fatal("expected the lone result to carry the upstream error")
	}
}
