// Package fetch is the paged fetcher: it builds canonical
// upstream request URLs, consults the on-disk cache before hitting the
// network, and eagerly fetches the next page while the caller processes
// the current one. Rate limiting reuses the same redis_rate-based approach
// as the inbound middleware elsewhere in this module, applied here to the
// outbound client instead of an inbound server.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"stormlightlabs.org/mmoldb/internal/ingest/cache"
)

// Entity mirrors one item in a Chron-style paged response: a versioned
// snapshot of one upstream entity.
type Entity struct {
	Kind       string          `json:"kind"`
	EntityID   string          `json:"entity_id"`
	ValidFrom  time.Time       `json:"valid_from"`
	ValidUntil *time.Time      `json:"valid_until"`
	Data       json.RawMessage `json:"data"`
}

// Page is one page of a paged entity feed.
type Page struct {
	Items    []Entity `json:"items"`
	NextPage *string  `json:"next_page"`
}

// TerminalCheck reports whether a raw entity payload represents a game (or
// other entity) that can never change again, used to decide cacheability.
type TerminalCheck func(kind string, data json.RawMessage) bool

// Limiter caps the fetcher's outbound request rate. UpstreamLimiter wraps
// redis_rate.Limiter; NoopLimiter never blocks and is the one `ingest run`
// wires in. A nil Limiter is skipped.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Fetcher fetches pages of one entity kind from an upstream Chron-style
// feed, transparently caching terminal full pages.
type Fetcher struct {
	HTTP      *http.Client
	BaseURL   string
	Kind      string
	PageSize  int
	Cache     *cache.Cache
	Limiter   Limiter
	IsTerminal TerminalCheck
	Log       *log.Logger
}

// canonicalURL builds the request URL for one page the same way on every
// call so it is a stable cache key.
func (f *Fetcher) canonicalURL(page *string, startAt *time.Time) string {
	v := url.Values{}
	v.Set("kind", f.Kind)
	v.Set("count", strconv.Itoa(f.PageSize))
	if page != nil {
		v.Set("page", *page)
	}
	if startAt != nil {
		v.Set("after", startAt.UTC().Format(time.RFC3339Nano))
	}
	return f.BaseURL + "?" + v.Encode()
}

// FetchPage returns one page, from cache if a cacheable entry exists,
// otherwise from the network -- caching the result afterward if it
// qualifies per cache.Cacheable.
func (f *Fetcher) FetchPage(ctx context.Context, page *string, startAt *time.Time) (Page, error) {
	reqURL := f.canonicalURL(page, startAt)

	if f.Cache != nil {
		var cached Page
		found, err := f.Cache.Get(reqURL, &cached)
		if err != nil {
			f.logf("cache lookup failed for %s: %v", reqURL, err)
		} else if found {
			f.logf("serving page from cache: %s", reqURL)
			return cached, nil
		}
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return Page{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Page{}, fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, reqURL)
	}

	var result Page
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Page{}, fmt.Errorf("decode page: %w", err)
	}

	if f.Cache != nil {
		allTerminal := true
		for _, item := range result.Items {
			if f.IsTerminal != nil && !f.IsTerminal(item.Kind, item.Data) {
				allTerminal = false
				break
			}
		}
		if cache.Cacheable(len(result.Items), f.PageSize, result.NextPage != nil, allTerminal) {
			if err := f.Cache.Put(reqURL, result); err != nil {
				f.logf("failed to cache page %s: %v", reqURL, err)
			}
		} else {
			f.logf("not caching page %s: not eligible", reqURL)
		}
	}

	return result, nil
}

func (f *Fetcher) logf(format string, args ...any) {
	if f.Log == nil {
		return
	}
	f.Log.Debugf(format, args...)
}

// pageResult is what an in-flight eager fetch produces.
type pageResult struct {
	page Page
	err  error
}

// Stream returns a channel of successive pages starting after startAt,
// fetching the next page eagerly (in its own goroutine) while the caller
// is still consuming the current one -- mirroring the tokio::spawn-ahead
// pattern the upstream paged client uses. The channel is closed after the
// first error or after a page with no NextPage.
func (f *Fetcher) Stream(ctx context.Context, startAt *time.Time) <-chan pageResult {
	out := make(chan pageResult)

	go func() {
		defer close(out)

		var nextPage *string
		first := true
		for {
			var (
				page Page
				err  error
			)
			if first {
				page, err = f.FetchPage(ctx, nil, startAt)
				first = false
			} else {
				page, err = f.FetchPage(ctx, nextPage, nil)
			}

			select {
			case out <- pageResult{page: page, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
			if page.NextPage == nil {
				return
			}
			nextPage = page.NextPage
		}
	}()

	return out
}
