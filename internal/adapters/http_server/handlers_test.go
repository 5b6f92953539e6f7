package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	server "reviewz/internal/adapters/http_server"
	"reviewz/internal/app"
	"reviewz/internal/domain"
	"reviewz/internal/validator"
)

type stubProcessor struct {
	out *app.WorkflowResult
	err error
	got domain.ReviewInput
}

func (s *stubProcessor) ProcessReview(ctx context.Context, in domain.ReviewInput) (*app.WorkflowResult, error) {
	s.got = in
	return s.out, s.err
}

func newTestServer(p server.ReviewProcessor) http.Handler {
	srv := server.New(5 * time.Second)
	srv.MountHandlers(&server.Handlers{Reviews: p})
	return srv.Mux()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

const candidate = `{"hotelName":"Grand Plaza","location":"Chicago","rating":2,"sentiment":"positive",` +
	`"aspects":{},"highlights":[],"issues":["noisy"],"reviewerType":"solo","summary":"Noisy but fine."}`

func TestHealthz(t *testing.T) {
	rr := do(t, newTestServer(&stubProcessor{}), "GET", "/healthz", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected healthz: %d %q", rr.Code, rr.Body.String())
	}
}

func TestValidate_Warnings(t *testing.T) {
	body := `{"candidate":` + candidate + `,"input":{"hotelName":"Grand Plaza","location":"Unknown","review":"x","score":5}}`
	rr := do(t, newTestServer(&stubProcessor{}), "POST", "/v1/reviews/validate", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var res validator.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, k := range []validator.WarningKind{
		validator.RatingMismatch,
		validator.SentimentRatingMismatchPositiveLow,
		validator.SentimentMissingHighlights,
	} {
		if !res.Has(k) {
			t.Errorf("expected %s in %+v", k, res.Warnings)
		}
	}
	if res.Has(validator.LocationMismatch) {
		t.Errorf("placeholder location must skip the location check")
	}
}

func TestValidate_SchemaFailure(t *testing.T) {
	rr := do(t, newTestServer(&stubProcessor{}), "POST", "/v1/reviews/validate", `{"candidate":{"rating":11}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"kind":"SCHEMA_VALIDATION_FAILED"`) ||
		!strings.Contains(rr.Body.String(), `"isValid":false`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestValidate_MissingCandidate(t *testing.T) {
	rr := do(t, newTestServer(&stubProcessor{}), "POST", "/v1/reviews/validate", `{}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestProcess_OK(t *testing.T) {
	p := &stubProcessor{out: &app.WorkflowResult{
		RunID:      "run-1",
		Review:     domain.StructuredReview{HotelName: "Grand Plaza"},
		Validation: validator.Result{IsValid: true, Errors: []validator.Error{}, Warnings: []validator.Warning{}},
	}}
	rr := do(t, newTestServer(p), "POST", "/v1/reviews", `{"hotelName":"Unknown Hotel","review":"Lovely stay","score":0}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if p.got.HotelName != nil || p.got.Score != nil || p.got.Review != "Lovely stay" {
		t.Fatalf("input not normalized: %+v", p.got)
	}
	if !strings.Contains(rr.Body.String(), `"runId":"run-1"`) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestProcess_EmptyReview(t *testing.T) {
	rr := do(t, newTestServer(&stubProcessor{}), "POST", "/v1/reviews", `{"review":"   "}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestProcess_ErrorMapping(t *testing.T) {
	invalid := validator.Result{Errors: []validator.Error{{Kind: validator.SchemaValidationFailed, Message: "schema validation failed: rating: must be between 1 and 5"}}}
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &app.ValidationFailedError{Result: invalid}, http.StatusUnprocessableEntity},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"upstream", errors.New("gemini: quota exceeded"), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, newTestServer(&stubProcessor{err: tc.err}), "POST", "/v1/reviews", `{"review":"fine"}`)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tc.err.Error()) {
				t.Fatalf("detail should carry the error: %s", rr.Body.String())
			}
		})
	}
}

type blockingProcessor struct{}

func (blockingProcessor) ProcessReview(ctx context.Context, in domain.ReviewInput) (*app.WorkflowResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProcess_RequestTimeout(t *testing.T) {
	srv := server.New(50 * time.Millisecond)
	srv.MountHandlers(&server.Handlers{Reviews: blockingProcessor{}})

	rr := do(t, srv.Mux(), "POST", "/v1/reviews", `{"review":"fine"}`)
	if rr.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d: %q", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var p struct {
		Title  string `json:"title"`
		Status int    `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Status != http.StatusGatewayTimeout || p.Title != "Upstream timeout" {
		t.Fatalf("unexpected problem: %+v", p)
	}
}

func TestProcess_BodyTooLarge(t *testing.T) {
	big := `{"review":"` + strings.Repeat("a", 2<<20) + `"}`
	rr := do(t, newTestServer(&stubProcessor{}), "POST", "/v1/reviews", big)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized body, got %d", rr.Code)
	}
}
