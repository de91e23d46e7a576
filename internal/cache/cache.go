// Package cache provides the layered extraction cache. PDF extraction, and
// OCR in particular, is by far the most expensive stage of a run, so
// extracted documents are cached keyed on file identity and catalog version.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ojocivico/planscore/internal/model"
)

// Cache defines the byte-level cache interface
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ExtractionKey derives the cache key for one source file. Size and mtime are
// part of the key so a replaced PDF under the same name never serves stale
// text, and the catalog version is included because normalization rules live
// in the catalog.
func ExtractionKey(path string, size int64, modTime time.Time, catalogVersion string) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%s", path, size, modTime.UnixNano(), catalogVersion)))
	return "planscore:v1:" + hex.EncodeToString(h[:])
}

// DocumentCache wraps a byte cache with document encoding.
type DocumentCache struct {
	inner Cache
	ttl   time.Duration
}

// NewDocumentCache creates a document cache over inner.
func NewDocumentCache(inner Cache, ttl time.Duration) *DocumentCache {
	return &DocumentCache{inner: inner, ttl: ttl}
}

// Get returns the cached document for key, if present and decodable.
func (c *DocumentCache) Get(key string) (*model.Document, bool) {
	data, ok := c.inner.Get(key)
	if !ok {
		return nil, false
	}
	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		// Treat a corrupt entry as a miss and drop it.
		_ = c.inner.Delete(key)
		return nil, false
	}
	return &doc, true
}

// Set stores doc under key.
func (c *DocumentCache) Set(key string, doc *model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return c.inner.Set(key, data, c.ttl)
}
