package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type cachedGenerator struct {
	next  IGenerator
	cache *expirable.LRU[string, string]
}

// NewCachedGenerator memoises successful generations by prompt hash. Failed
// calls are never cached so the next request reaches the provider again.
func NewCachedGenerator(next IGenerator, size int, ttl time.Duration) IGenerator {
	if size <= 0 || ttl <= 0 {
		return next
	}
	return &cachedGenerator{
		next:  next,
		cache: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (g *cachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)
	if cached, ok := g.cache.Get(key); ok {
		return cached, nil
	}
	res, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	g.cache.Add(key, res)
	return res, nil
}

func promptKey(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(hash[:])
}
