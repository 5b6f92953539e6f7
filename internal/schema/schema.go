// Package schema checks that an untrusted candidate has the exact shape of a
// structured review and converts it into domain.StructuredReview.
//
// Values are never coerced: a rating sent as "4" is rejected, not parsed.
// Keys the schema does not know about are ignored.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"reviewz/internal/domain"
)

const (
	MinRating = 1
	MaxRating = 5
)

const (
	reasonMissing = "required field missing"
	reasonRange   = "must be between 1 and 5"
)

// Issue is one violated constraint. Path is dotted, e.g. "aspects.cleanliness"
// or "highlights.2"; it is empty for the candidate itself.
type Issue struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Reason
	}
	return i.Path + ": " + i.Reason
}

// Failure lists every issue found in a candidate.
type Failure struct {
	Issues []Issue `json:"issues"`
}

func (f *Failure) Error() string {
	parts := make([]string, len(f.Issues))
	for i, is := range f.Issues {
		parts[i] = is.String()
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// Parse validates candidate against the structured review schema. Accepted
// candidate forms are raw JSON ([]byte, json.RawMessage), a decoded JSON
// object (map[string]any), domain.StructuredReview (nil lists read as empty),
// or any value that marshals to JSON. On failure the error is a *Failure.
func Parse(candidate any) (domain.StructuredReview, error) {
	doc, err := toDocument(candidate)
	if err != nil {
		return domain.StructuredReview{}, &Failure{Issues: []Issue{{Reason: err.Error()}}}
	}

	p := &parser{}
	out := p.review(doc)
	if len(p.issues) > 0 {
		return domain.StructuredReview{}, &Failure{Issues: p.issues}
	}
	return out, nil
}

func toDocument(candidate any) (any, error) {
	var raw []byte
	switch c := candidate.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return c, nil
	case json.RawMessage:
		raw = c
	case []byte:
		raw = c
	case *domain.StructuredReview:
		if c == nil {
			return nil, nil
		}
		return toDocument(withEmptyLists(*c))
	case domain.StructuredReview:
		b, err := json.Marshal(withEmptyLists(c))
		if err != nil {
			return nil, fmt.Errorf("candidate is not JSON-compatible: %v", err)
		}
		raw = b
	default:
		b, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("candidate is not JSON-compatible: %v", err)
		}
		raw = b
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}
	return doc, nil
}

// withEmptyLists treats nil highlights and issues on a typed review as the
// empty lists they stand for, so they encode as [] rather than null.
func withEmptyLists(r domain.StructuredReview) domain.StructuredReview {
	if r.Highlights == nil {
		r.Highlights = []string{}
	}
	if r.Issues == nil {
		r.Issues = []string{}
	}
	return r
}

type parser struct {
	issues []Issue
}

func (p *parser) fail(path, reason string) {
	p.issues = append(p.issues, Issue{Path: path, Reason: reason})
}

func (p *parser) review(doc any) domain.StructuredReview {
	var r domain.StructuredReview
	obj, ok := doc.(map[string]any)
	if !ok {
		p.fail("", "expected object, received "+typeName(doc))
		return r
	}

	r.HotelName, _ = p.str(obj, "hotelName", "hotelName")
	if v, present := obj["location"]; present {
		if s, ok := v.(string); ok {
			r.Location = &s
		} else {
			p.fail("location", "expected string, received "+typeName(v))
		}
	}
	if v, ok := p.number(obj, "rating", "rating"); ok {
		r.Rating = *v
	}
	if s, ok := p.str(obj, "sentiment", "sentiment"); ok {
		r.Sentiment = domain.Sentiment(s)
		if !oneOf(r.Sentiment, domain.Sentiments) {
			p.fail("sentiment", "must be one of "+list(domain.Sentiments))
		}
	}
	r.Aspects = p.aspects(obj)
	r.Highlights = p.strings(obj, "highlights")
	r.Issues = p.strings(obj, "issues")
	if s, ok := p.str(obj, "reviewerType", "reviewerType"); ok {
		r.ReviewerType = domain.ReviewerType(s)
		if !oneOf(r.ReviewerType, domain.ReviewerTypes) {
			p.fail("reviewerType", "must be one of "+list(domain.ReviewerTypes))
		}
	}
	r.Summary, _ = p.str(obj, "summary", "summary")
	return r
}

func (p *parser) aspects(obj map[string]any) domain.Aspects {
	var a domain.Aspects
	v, present := obj["aspects"]
	if !present {
		p.fail("aspects", reasonMissing)
		return a
	}
	m, ok := v.(map[string]any)
	if !ok {
		p.fail("aspects", "expected object, received "+typeName(v))
		return a
	}
	fields := []struct {
		key string
		dst **float64
	}{
		{"cleanliness", &a.Cleanliness},
		{"service", &a.Service},
		{"location", &a.Location},
		{"value", &a.Value},
		{"amenities", &a.Amenities},
	}
	for _, f := range fields {
		if _, present := m[f.key]; !present {
			continue
		}
		if n, ok := p.number(m, f.key, "aspects."+f.key); ok {
			*f.dst = n
		}
	}
	return a
}

func (p *parser) str(obj map[string]any, key, path string) (string, bool) {
	v, present := obj[key]
	if !present {
		p.fail(path, reasonMissing)
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		p.fail(path, "expected string, received "+typeName(v))
		return "", false
	}
	return s, true
}

func (p *parser) number(obj map[string]any, key, path string) (*float64, bool) {
	v, present := obj[key]
	if !present {
		p.fail(path, reasonMissing)
		return nil, false
	}
	n, ok := v.(float64)
	if !ok {
		p.fail(path, "expected number, received "+typeName(v))
		return nil, false
	}
	if n < MinRating || n > MaxRating {
		p.fail(path, reasonRange)
		return nil, false
	}
	return &n, true
}

func (p *parser) strings(obj map[string]any, key string) []string {
	v, present := obj[key]
	if !present {
		p.fail(key, reasonMissing)
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		p.fail(key, "expected array, received "+typeName(v))
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, e := range arr {
		s, ok := e.(string)
		if !ok {
			p.fail(fmt.Sprintf("%s.%d", key, i), "expected string, received "+typeName(e))
			continue
		}
		out = append(out, s)
	}
	return out
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func list[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
