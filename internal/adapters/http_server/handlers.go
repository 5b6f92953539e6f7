package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"reviewz/internal/adapters/observability"
	"reviewz/internal/app"
	"reviewz/internal/domain"
	"reviewz/internal/validator"
)

// ReviewProcessor runs the full produce-and-validate workflow.
type ReviewProcessor interface {
	ProcessReview(ctx context.Context, in domain.ReviewInput) (*app.WorkflowResult, error)
}

type Handlers struct {
	Reviews  ReviewProcessor
	Validate app.ValidateFunc // defaults to validator.Validate
}

type problem struct {
	Type       string            `json:"type"`
	Title      string            `json:"title"`
	Status     int               `json:"status"`
	Detail     string            `json:"detail,omitempty"`
	Validation *validator.Result `json:"validation,omitempty"`
}

type validateRequest struct {
	Candidate json.RawMessage     `json:"candidate"`
	Input     *domain.ReviewInput `json:"input,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Validate == nil {
		h.Validate = validator.Validate
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/reviews/validate", h.validate)
	s.mux.Post("/v1/reviews", h.process)
}

func writeProblem(w http.ResponseWriter, p problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response body")
		writeProblem(w, problem{Title: "Internal Error", Status: http.StatusInternalServerError})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

func (h *Handlers) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := decodeBody(r, &req); err != nil {
		writeProblem(w, problem{Title: "Invalid body", Status: http.StatusBadRequest, Detail: err.Error()})
		return
	}
	if len(req.Candidate) == 0 {
		writeProblem(w, problem{Title: "Invalid body", Status: http.StatusBadRequest, Detail: "candidate is required"})
		return
	}
	writeJSON(w, http.StatusOK, h.Validate(req.Candidate, req.Input))
}

func (h *Handlers) process(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	if err := decodeBody(r, &in); err != nil {
		writeProblem(w, problem{Title: "Invalid body", Status: http.StatusBadRequest, Detail: err.Error()})
		return
	}
	if err := in.Validate(); err != nil {
		writeProblem(w, problem{Title: "Invalid input", Status: http.StatusBadRequest, Detail: err.Error()})
		return
	}

	out, err := h.Reviews.ProcessReview(r.Context(), in)
	if err != nil {
		writeProcessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeProcessError(w http.ResponseWriter, err error) {
	var vf *app.ValidationFailedError
	switch {
	case errors.As(err, &vf):
		writeProblem(w, problem{
			Title:      "Review failed validation",
			Status:     http.StatusUnprocessableEntity,
			Detail:     err.Error(),
			Validation: &vf.Result,
		})
	case errors.Is(err, domain.ErrEmptyReview):
		writeProblem(w, problem{Title: "Invalid input", Status: http.StatusBadRequest, Detail: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, problem{Title: "Upstream timeout", Status: http.StatusGatewayTimeout, Detail: err.Error()})
	default:
		log.Error().Err(err).Str("err_type", observability.LabelErr(err)).Msg("review workflow failed")
		writeProblem(w, problem{Title: "Upstream failure", Status: http.StatusBadGateway, Detail: err.Error()})
	}
}
