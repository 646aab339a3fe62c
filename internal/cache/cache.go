// Package cache keeps recent extraction results keyed by document content.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"fjacquet/docfields/internal/models"

	gocache "github.com/patrickmn/go-cache"
)

// ResultCache is a content-addressed TTL cache of extracted records.
type ResultCache struct {
	cache *gocache.Cache
}

// New creates a ResultCache whose entries expire after ttl.
func New(ttl, cleanupInterval time.Duration) *ResultCache {
	return &ResultCache{cache: gocache.New(ttl, cleanupInterval)}
}

// Key derives the cache key for an upload from its content and the
// requested document type.
func Key(content []byte, requested models.DocumentType) string {
	sum := sha256.Sum256(content)
	return requested.String() + ":" + hex.EncodeToString(sum[:])
}

// Get returns a copy of the cached record for key.
func (c *ResultCache) Get(key string) (models.ExtractedRecord, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	rec, ok := val.(models.ExtractedRecord)
	if !ok {
		return nil, false
	}
	return clone(rec), true
}

// Set stores rec under key with the default TTL.
func (c *ResultCache) Set(key string, rec models.ExtractedRecord) {
	c.cache.SetDefault(key, clone(rec))
}

// Len returns the number of cached entries, including expired ones not yet cleaned up.
func (c *ResultCache) Len() int {
	return c.cache.ItemCount()
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	c.cache.Flush()
}

// clone copies the record's maps so callers cannot mutate cached state.
// String slices are shared; records never modify them in place.
func clone(rec models.ExtractedRecord) models.ExtractedRecord {
	return models.ExtractedRecord(cloneMap(rec))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			out[k] = cloneMap(val)
		case models.ExtractedRecord:
			out[k] = clone(val)
		default:
			out[k] = v
		}
	}
	return out
}
