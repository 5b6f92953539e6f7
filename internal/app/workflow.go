package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"reviewz/internal/adapters/observability"
	"reviewz/internal/domain"
	"reviewz/internal/schema"
	"reviewz/internal/validator"
)

// WorkflowResult is what ProcessReview hands back on success.
type WorkflowResult struct {
	RunID      string                  `json:"runId"`
	Review     domain.StructuredReview `json:"review"`
	Entities   *domain.NamedEntities   `json:"entities,omitempty"`
	Validation validator.Result        `json:"validation"`
}

// ValidationFailedError is returned when the produced review fails validation.
type ValidationFailedError struct {
	Result validator.Result
}

func (e *ValidationFailedError) Error() string {
	return "validation failed: " + strings.Join(e.Result.ErrorMessages(), ", ")
}

type ValidateFunc func(candidate any, in *domain.ReviewInput) validator.Result

type ReviewService struct {
	producer  domain.Producer
	extractor domain.EntityExtractor
	validate  ValidateFunc
	log       zerolog.Logger
}

type Option func(*ReviewService)

// WithEntityExtractor enables entity extraction alongside production.
func WithEntityExtractor(x domain.EntityExtractor) Option {
	return func(s *ReviewService) { s.extractor = x }
}

func WithValidator(fn ValidateFunc) Option {
	return func(s *ReviewService) { s.validate = fn }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *ReviewService) { s.log = l }
}

func NewReviewService(p domain.Producer, opts ...Option) *ReviewService {
	s := &ReviewService{producer: p, validate: validator.Validate, log: log.Logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ProcessReview produces a structured review for in, validates it, and
// returns the result. Producer and extractor errors are returned as-is,
// except a producer *schema.Failure, which counts as failed validation.
// A review that fails validation yields a *ValidationFailedError.
func (s *ReviewService) ProcessReview(ctx context.Context, in domain.ReviewInput) (*WorkflowResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	l := s.log.With().Str("run_id", runID).Logger()

	var (
		review   domain.StructuredReview
		entities *domain.NamedEntities
	)

	// producer and extractor are independent; first failure cancels the other
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := s.producer.Produce(gctx, in)
		if err != nil {
			return err
		}
		review = r
		return nil
	})
	if s.extractor != nil {
		g.Go(func() error {
			e, err := s.extractor.ExtractEntities(gctx, in)
			if err != nil {
				return err
			}
			entities = &e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var sf *schema.Failure
		if errors.As(err, &sf) {
			return nil, s.invalid(l, validator.SchemaFailure(sf))
		}
		observability.ObserveWorkflow("collaborator_error")
		l.Warn().Err(err).Msg("collaborator call failed")
		return nil, err
	}
	l.Debug().Str("hotel", review.HotelName).Bool("entities", entities != nil).Msg("review produced")

	res := s.validate(review, &in)
	for _, w := range res.Warnings {
		observability.ObserveWarning(w.Kind.String())
	}
	if !res.IsValid {
		return nil, s.invalid(l, res)
	}

	observability.ObserveWorkflow("ok")
	l.Info().
		Str("hotel", review.HotelName).
		Int("warnings", len(res.Warnings)).
		Msg("review processed")

	return &WorkflowResult{
		RunID:      runID,
		Review:     review,
		Entities:   entities,
		Validation: res,
	}, nil
}

func (s *ReviewService) invalid(l zerolog.Logger, res validator.Result) error {
	observability.ObserveWorkflow("invalid")
	l.Warn().Strs("errors", res.ErrorMessages()).Msg("review failed validation")
	return &ValidationFailedError{Result: res}
}
