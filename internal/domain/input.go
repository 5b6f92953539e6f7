package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// Placeholder values older callers send when a field was not provided.
const (
	PlaceholderHotelName = "Unknown Hotel"
	PlaceholderLocation  = "Unknown"
)

var ErrEmptyReview = errors.New("review text is required")

// ReviewInput is the raw request context for a single review.
// Nil pointers mean the caller did not supply that field.
type ReviewInput struct {
	HotelName *string  `json:"hotelName,omitempty"`
	Location  *string  `json:"location,omitempty"`
	Review    string   `json:"review"`
	Score     *float64 `json:"score,omitempty"`
}

// UnmarshalJSON accepts the placeholder wire form ("Unknown Hotel",
// "Unknown", score 0) and maps those values to absent fields.
func (in *ReviewInput) UnmarshalJSON(b []byte) error {
	type wire ReviewInput
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*in = ReviewInput(w).Normalize()
	return nil
}

// Normalize returns a copy with placeholder values replaced by nil. Only the
// exact sentinels count; an empty string is a provided value.
func (in ReviewInput) Normalize() ReviewInput {
	out := in
	if in.HotelName != nil && *in.HotelName == PlaceholderHotelName {
		out.HotelName = nil
	}
	if in.Location != nil && *in.Location == PlaceholderLocation {
		out.Location = nil
	}
	if in.Score != nil && *in.Score == 0 {
		out.Score = nil
	}
	return out
}

// Validate checks the request itself, not the structured review.
func (in ReviewInput) Validate() error {
	if strings.TrimSpace(in.Review) == "" {
		return ErrEmptyReview
	}
	if in.Score != nil && (*in.Score < 0 || *in.Score > 5) {
		return errors.New("score must be between 0 and 5")
	}
	return nil
}

// HotelNameOr returns the hotel name or def when absent.
func (in ReviewInput) HotelNameOr(def string) string {
	if in.HotelName == nil {
		return def
	}
	return *in.HotelName
}

// LocationOr returns the location or def when absent.
func (in ReviewInput) LocationOr(def string) string {
	if in.Location == nil {
		return def
	}
	return *in.Location
}

// ScoreOr returns the score or def when absent.
func (in ReviewInput) ScoreOr(def float64) float64 {
	if in.Score == nil {
		return def
	}
	return *in.Score
}
