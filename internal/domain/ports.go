package domain

import "context"

// Producer turns raw review input into a candidate structured review.
// The candidate is not trusted; callers run it through validation.
type Producer interface {
	Produce(ctx context.Context, in ReviewInput) (StructuredReview, error)
}

// ProducerFunc adapts a plain function to Producer.
type ProducerFunc func(ctx context.Context, in ReviewInput) (StructuredReview, error)

func (f ProducerFunc) Produce(ctx context.Context, in ReviewInput) (StructuredReview, error) {
	return f(ctx, in)
}

type EntityExtractor interface {
	ExtractEntities(ctx context.Context, in ReviewInput) (NamedEntities, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}
