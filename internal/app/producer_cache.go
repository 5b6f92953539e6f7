package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"reviewz/internal/domain"
)

// CachedProducer is a cache-aside wrapper around a Producer. Cache errors
// are ignored; producer errors are returned unchanged and never cached.
type CachedProducer struct {
	inner domain.Producer
	cache domain.Cache
	ttl   time.Duration
}

func NewCachedProducer(inner domain.Producer, c domain.Cache, ttl time.Duration) *CachedProducer {
	return &CachedProducer{inner: inner, cache: c, ttl: ttl}
}

func (p *CachedProducer) Produce(ctx context.Context, in domain.ReviewInput) (domain.StructuredReview, error) {
	key := producerKey(in)
	var r domain.StructuredReview
	if key != "" {
		if ok, _ := p.cache.Get(ctx, key, &r); ok {
			return r, nil
		}
	}

	r, err := p.inner.Produce(ctx, in)
	if err != nil {
		return domain.StructuredReview{}, err
	}
	if key != "" {
		_ = p.cache.Set(ctx, key, r, int(p.ttl.Seconds()))
	}
	return r, nil
}

// producerKey hashes the normalized input; "" means the input is not cacheable.
func producerKey(in domain.ReviewInput) string {
	b, err := json.Marshal(in.Normalize())
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return "review:v1:" + hex.EncodeToString(sum[:])
}
