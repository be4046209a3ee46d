package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/waritt/goldbooks/internal/books"
)

// Cached wraps an Extractor with a bounded LRU cache keyed by a content
// fingerprint of the image. The cache is a performance optimization only:
// failures are never cached, and eviction loses nothing but a repeat call.
type Cached struct {
	inner Extractor
	cache *lru.Cache[string, books.Receipt]
}

func NewCached(inner Extractor, size int) (*Cached, error) {
	cache, err := lru.New[string, books.Receipt](size)
	if err != nil {
		return nil, fmt.Errorf("ocr cache: %w", err)
	}
	return &Cached{inner: inner, cache: cache}, nil
}

func (c *Cached) Extract(ctx context.Context, image []byte, contentType string) (*books.Receipt, error) {
	key := fingerprint(image, contentType)
	if cached, ok := c.cache.Get(key); ok {
		receipt := cached
		return &receipt, nil
	}

	receipt, err := c.inner.Extract(ctx, image, contentType)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, *receipt)
	return receipt, nil
}

// Len reports the number of cached extractions.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func fingerprint(image []byte, contentType string) string {
	h := sha256.New()
	h.Write(image)
	h.Write([]byte{0})
	h.Write([]byte(contentType))
	return hex.EncodeToString(h.Sum(nil))
}
