package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

// Cached remembers successful translations for ttl. Failures are never cached.
type Cached struct {
	next  Translator
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewCached(next Translator, maxCost int64, ttl time.Duration) (*Cached, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6, // keys tracked for admission frequency
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &Cached{next: next, cache: cache, ttl: ttl}, nil
}

func (c *Cached) Translate(ctx context.Context, text string, source, target detector.Lang) (string, error) {
	cacheKey := generateCacheKey(text, source, target)

	if cachedTranslation, found := c.cache.Get(cacheKey); found {
		return cachedTranslation.(string), nil
	}

	translation, err := c.next.Translate(ctx, text, source, target)
	if err != nil {
		return "", err
	}

	c.cache.SetWithTTL(cacheKey, translation, int64(len(translation)), c.ttl)
	return translation, nil
}

// Close stops the cache's background goroutines.
func (c *Cached) Close() {
	c.cache.Close()
}

func generateCacheKey(content string, source, target detector.Lang) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", content, source, target)))
	return hex.EncodeToString(hash[:])
}
