// Package cache is the on-disk response cache for the paged fetcher.
// It wraps a single bbolt file the way internal/cache wraps Redis
// elsewhere in this module: Get/Put plus a cacheability predicate, with an envelope
// version byte so the entry format can change without invalidating the
// whole store.
package cache

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketName = []byte("pages")

// envelopeV0 is the only entry format so far. A version byte precedes the
// JSON payload on disk so a future format change can coexist with old
// entries instead of requiring a migration.
const envelopeV0 byte = 0

// Cache is a single bbolt-backed store keyed by canonical request URL.
// Safe for concurrent use; bbolt serializes writers internally and allows
// unlimited concurrent readers.
type Cache struct {
	db *bbolt.DB
}

// Open creates or opens the cache file at path, creating the page bucket if
// it doesn't already exist.
func Open(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open cache db at %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create page bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get looks up url and decodes its entry into dest. Returns (false, nil) on
// a plain miss. A corrupted entry is treated as a miss too, but is removed
// from the store first so it doesn't keep failing on every future lookup.
func (c *Cache) Get(url string, dest any) (bool, error) {
	var raw []byte
	err := c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		v := b.Get([]byte(url))
		if v == nil {
			return nil
		}
		raw = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("read cache entry: %w", err)
	}
	if raw == nil {
		return false, nil
	}

	if len(raw) < 1 || raw[0] != envelopeV0 {
		c.remove(url)
		return false, nil
	}
	if err := json.Unmarshal(raw[1:], dest); err != nil {
		c.remove(url)
		return false, nil
	}
	return true, nil
}

func (c *Cache) remove(url string) {
	_ = c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(url))
	})
}

// Put stores value under url, replacing any existing entry.
func (c *Cache) Put(url string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	entry := make([]byte, 0, len(payload)+1)
	entry = append(entry, envelopeV0)
	entry = append(entry, payload...)

	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(url), entry)
	})
}

// Cacheable decides whether a fetched page is safe to cache: a page is
// only cached once it can never change -- full-sized (so a
// live page that might still grow isn't frozen prematurely), with a
// non-null next page token, and with every item in a terminal state.
func Cacheable(itemCount, pageSize int, hasNextPage bool, allItemsTerminal bool) bool {
	if !hasNextPage {
		return false
	}
	if itemCount != pageSize {
		return false
	}
	return allItemsTerminal
}
