package app_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"reviewz/internal/app"
	"reviewz/internal/domain"
	"reviewz/internal/schema"
	"reviewz/internal/validator"
)

// ---- stubs ----

type stubProducer struct {
	review domain.StructuredReview
	err    error
	calls  int32
}

func (p *stubProducer) Produce(ctx context.Context, in domain.ReviewInput) (domain.StructuredReview, error) {
	atomic.AddInt32(&p.calls, 1)
	return p.review, p.err
}

type stubExtractor struct {
	entities domain.NamedEntities
	err      error
}

func (x *stubExtractor) ExtractEntities(ctx context.Context, in domain.ReviewInput) (domain.NamedEntities, error) {
	return x.entities, x.err
}

func countingValidator(n *int32) app.ValidateFunc {
	return func(c any, in *domain.ReviewInput) validator.Result {
		atomic.AddInt32(n, 1)
		return validator.Validate(c, in)
	}
}

func ptr[T any](v T) *T { return &v }

func goodReview() domain.StructuredReview {
	return domain.StructuredReview{
		HotelName:    "Grand Plaza Hotel",
		Location:     ptr("Chicago"),
		Rating:       3.5,
		Sentiment:    domain.SentimentMixed,
		Aspects:      domain.Aspects{Cleanliness: ptr(5.0), Value: ptr(2.0)},
		Highlights:   []string{"spotless room", "friendly staff"},
		Issues:       []string{"pricey", "wifi kept dropping"},
		ReviewerType: domain.ReviewerUnknown,
		Summary:      "Great location and clean rooms, but overpriced with weak wifi.",
	}
}

func input() domain.ReviewInput {
	return domain.ReviewInput{
		HotelName: ptr("Grand Plaza Hotel"),
		Location:  ptr("Chicago"),
		Review:    "I stayed at the Grand Plaza Hotel in downtown Chicago for 3 nights.",
		Score:     ptr(4.0),
	}
}

// ---- tests ----

func TestProcessReview_OK(t *testing.T) {
	p := &stubProducer{review: goodReview()}
	svc := app.NewReviewService(p)

	out, err := svc.ProcessReview(context.Background(), input())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.RunID == "" {
		t.Fatalf("expected a run id")
	}
	if out.Review.HotelName != "Grand Plaza Hotel" || !out.Validation.IsValid {
		t.Fatalf("unexpected result: %+v", out)
	}
	if out.Entities != nil {
		t.Fatalf("entities should be absent without an extractor")
	}
}

func TestProcessReview_ReturnsWarnings(t *testing.T) {
	r := goodReview()
	r.Rating = 1
	svc := app.NewReviewService(&stubProducer{review: r})

	out, err := svc.ProcessReview(context.Background(), input())
	if err != nil {
		t.Fatalf("warnings must not fail the workflow: %v", err)
	}
	if !out.Validation.Has(validator.RatingMismatch) {
		t.Fatalf("expected RATING_MISMATCH, got %+v", out.Validation.Warnings)
	}
}

func TestProcessReview_ProducerErrorPropagates(t *testing.T) {
	boom := errors.New("quota exceeded")
	var validated int32
	svc := app.NewReviewService(&stubProducer{err: boom}, app.WithValidator(countingValidator(&validated)))

	out, err := svc.ProcessReview(context.Background(), input())
	if err != boom {
		t.Fatalf("expected the producer error unchanged, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected no result")
	}
	if atomic.LoadInt32(&validated) != 0 {
		t.Fatalf("validator must not run after a producer failure")
	}
}

func TestProcessReview_SchemaInvalid(t *testing.T) {
	r := goodReview()
	r.Rating = 6
	r.Sentiment = "ecstatic"
	svc := app.NewReviewService(&stubProducer{review: r})

	out, err := svc.ProcessReview(context.Background(), input())
	if out != nil {
		t.Fatalf("expected no result, got %+v", out)
	}
	var vf *app.ValidationFailedError
	if !errors.As(err, &vf) {
		t.Fatalf("expected *ValidationFailedError, got %T (%v)", err, err)
	}
	schemaMsg := vf.Result.Errors[0].Message
	if !strings.Contains(err.Error(), schemaMsg) {
		t.Fatalf("error %q should contain %q", err.Error(), schemaMsg)
	}
	if !strings.HasPrefix(err.Error(), "validation failed: ") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestProcessReview_NilListsAreEmpty(t *testing.T) {
	r := domain.StructuredReview{
		HotelName:    "Grand Plaza",
		Rating:       3,
		Sentiment:    domain.SentimentNeutral,
		ReviewerType: domain.ReviewerSolo,
		Summary:      "An unremarkable but fine stay.",
	}
	out, err := app.NewReviewService(&stubProducer{review: r}).ProcessReview(context.Background(), domain.ReviewInput{Review: "It was fine."})
	if err != nil {
		t.Fatalf("nil highlights/issues must not fail the schema: %v", err)
	}
	if !out.Validation.IsValid || len(out.Validation.Errors) != 0 {
		t.Fatalf("unexpected validation: %+v", out.Validation)
	}
}

func TestProcessReview_ProducerSchemaFailure(t *testing.T) {
	_, perr := schema.Parse([]byte(`{"rating":3,"sentiment":"neutral","highlights":[],"issues":[],"reviewerType":"solo"}`))
	var validated int32
	svc := app.NewReviewService(&stubProducer{err: perr}, app.WithValidator(countingValidator(&validated)))

	out, err := svc.ProcessReview(context.Background(), input())
	if out != nil {
		t.Fatalf("expected no result, got %+v", out)
	}
	var vf *app.ValidationFailedError
	if !errors.As(err, &vf) {
		t.Fatalf("expected *ValidationFailedError, got %T (%v)", err, err)
	}
	if vf.Result.IsValid || len(vf.Result.Errors) != 1 || vf.Result.Errors[0].Kind != validator.SchemaValidationFailed {
		t.Fatalf("unexpected result: %+v", vf.Result)
	}
	if !strings.Contains(err.Error(), "hotelName: required field missing") {
		t.Fatalf("error should name the missing field: %q", err.Error())
	}
	if atomic.LoadInt32(&validated) != 0 {
		t.Fatalf("validator should not run on a producer schema failure")
	}
}

func TestProcessReview_WithEntities(t *testing.T) {
	x := &stubExtractor{entities: domain.NamedEntities{
		Locations: []string{"downtown Chicago"},
		Amenities: []string{"breakfast", "WiFi"},
	}}
	svc := app.NewReviewService(&stubProducer{review: goodReview()}, app.WithEntityExtractor(x))

	out, err := svc.ProcessReview(context.Background(), input())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Entities == nil || len(out.Entities.Amenities) != 2 {
		t.Fatalf("expected entities, got %+v", out.Entities)
	}
}

func TestProcessReview_ExtractorErrorPropagates(t *testing.T) {
	boom := errors.New("extractor timeout")
	svc := app.NewReviewService(
		&stubProducer{review: goodReview()},
		app.WithEntityExtractor(&stubExtractor{err: boom}),
	)
	if _, err := svc.ProcessReview(context.Background(), input()); err != boom {
		t.Fatalf("expected extractor error, got %v", err)
	}
}

func TestProcessReview_RunsCollaboratorsConcurrently(t *testing.T) {
	started := make(chan struct{})
	p := domain.ProducerFunc(func(ctx context.Context, in domain.ReviewInput) (domain.StructuredReview, error) {
		select {
		case <-started:
			return goodReview(), nil
		case <-time.After(2 * time.Second):
			return domain.StructuredReview{}, errors.New("extractor never started")
		}
	})
	x := extractorFunc(func(ctx context.Context, in domain.ReviewInput) (domain.NamedEntities, error) {
		close(started)
		return domain.NamedEntities{}, nil
	})
	svc := app.NewReviewService(p, app.WithEntityExtractor(x))
	if _, err := svc.ProcessReview(context.Background(), input()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestProcessReview_EmptyReview(t *testing.T) {
	p := &stubProducer{review: goodReview()}
	in := input()
	in.Review = "  "
	_, err := app.NewReviewService(p).ProcessReview(context.Background(), in)
	if !errors.Is(err, domain.ErrEmptyReview) {
		t.Fatalf("expected ErrEmptyReview, got %v", err)
	}
	if atomic.LoadInt32(&p.calls) != 0 {
		t.Fatalf("producer must not be called for empty input")
	}
}

type extractorFunc func(ctx context.Context, in domain.ReviewInput) (domain.NamedEntities, error)

func (f extractorFunc) ExtractEntities(ctx context.Context, in domain.ReviewInput) (domain.NamedEntities, error) {
	return f(ctx, in)
}
