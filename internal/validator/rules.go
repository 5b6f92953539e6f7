package validator

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"reviewz/internal/domain"
)

const (
	maxRatingDrift     = 1.0
	neutralRating      = 3.0
	detailedSummaryLen = 100
	minSummaryLen      = 10
	maxSummaryLen      = 500
)

type rule struct {
	kind    WarningKind
	context bool // needs request input
	check   func(r domain.StructuredReview, in *domain.ReviewInput) (Warning, bool)
}

// battery runs in this order; warnings appear in the result in the same order.
var battery = []rule{
	{HotelNameMismatch, true, checkHotelName},
	{LocationMismatch, true, checkLocation},
	{RatingMismatch, true, checkRating},
	{HotelNameGeneric, false, checkGenericName},
	{SentimentRatingMismatchPositiveLow, false, checkPositiveLow},
	{SentimentRatingMismatchNegativeHigh, false, checkNegativeHigh},
	{SentimentMissingHighlights, false, checkMissingHighlights},
	{SentimentMissingIssues, false, checkMissingIssues},
	{SentimentShouldBeMixed, false, checkShouldBeMixed},
	{MissingAspectRatings, false, checkAspectCoverage},
	{SummaryTooShort, false, checkSummaryShort},
	{SummaryTooLong, false, checkSummaryLong},
}

// ---- context cross-checks ----

func checkHotelName(r domain.StructuredReview, in *domain.ReviewInput) (Warning, bool) {
	if in.HotelName == nil || strings.EqualFold(*in.HotelName, r.HotelName) {
		return Warning{}, false
	}
	return Warning{
		Message: fmt.Sprintf("Hotel name mismatch: expected %q, got %q", *in.HotelName, r.HotelName),
		Details: map[string]any{"expected": *in.HotelName, "actual": r.HotelName},
	}, true
}

// An absent candidate location compares as "", which every input contains.
func checkLocation(r domain.StructuredReview, in *domain.ReviewInput) (Warning, bool) {
	if in.Location == nil {
		return Warning{}, false
	}
	expected := strings.ToLower(*in.Location)
	got := ""
	if r.Location != nil {
		got = strings.ToLower(*r.Location)
	}
	if strings.Contains(got, expected) || strings.Contains(expected, got) {
		return Warning{}, false
	}
	actual := "none"
	if r.Location != nil {
		actual = *r.Location
	}
	return Warning{
		Message: fmt.Sprintf("Location mismatch: expected %q, got %q", *in.Location, actual),
		Details: map[string]any{"expected": *in.Location, "actual": actual},
	}, true
}

func checkRating(r domain.StructuredReview, in *domain.ReviewInput) (Warning, bool) {
	if in.Score == nil || *in.Score <= 0 {
		return Warning{}, false
	}
	diff := math.Abs(r.Rating - *in.Score)
	if diff <= maxRatingDrift {
		return Warning{}, false
	}
	return Warning{
		Message: fmt.Sprintf("Rating mismatch: user score %g, parsed rating %g (diff: %g)", *in.Score, r.Rating, diff),
		Details: map[string]any{"expected": *in.Score, "actual": r.Rating, "diff": diff},
	}, true
}

// ---- business rules ----

func checkGenericName(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	name := strings.ToLower(r.HotelName)
	generic := strings.Contains(name, "unknown") ||
		(strings.Contains(name, "hotel") && len(strings.Fields(name)) == 1)
	if !generic {
		return Warning{}, false
	}
	return Warning{
		Message: "Hotel name appears generic or incomplete",
		Details: map[string]any{"hotelName": r.HotelName},
	}, true
}

func checkPositiveLow(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	if r.Sentiment != domain.SentimentPositive || r.Rating >= neutralRating {
		return Warning{}, false
	}
	return Warning{
		Message: "Positive sentiment but low rating - possible mismatch",
		Details: map[string]any{"sentiment": r.Sentiment, "rating": r.Rating},
	}, true
}

func checkNegativeHigh(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	if r.Sentiment != domain.SentimentNegative || r.Rating <= neutralRating {
		return Warning{}, false
	}
	return Warning{
		Message: "Negative sentiment but high rating - possible mismatch",
		Details: map[string]any{"sentiment": r.Sentiment, "rating": r.Rating},
	}, true
}

func checkMissingHighlights(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	if r.Sentiment != domain.SentimentPositive || len(r.Highlights) > 0 {
		return Warning{}, false
	}
	return Warning{Message: "Positive sentiment but no highlights extracted"}, true
}

func checkMissingIssues(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	if r.Sentiment != domain.SentimentNegative || len(r.Issues) > 0 {
		return Warning{}, false
	}
	return Warning{Message: "Negative sentiment but no issues extracted"}, true
}

func checkShouldBeMixed(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	if len(r.Highlights) == 0 || len(r.Issues) == 0 || r.Sentiment == domain.SentimentMixed {
		return Warning{}, false
	}
	return Warning{
		Message: `Both highlights and issues present - sentiment might be better as "mixed"`,
		Details: map[string]any{
			"sentiment":  r.Sentiment,
			"highlights": len(r.Highlights),
			"issues":     len(r.Issues),
		},
	}, true
}

func checkAspectCoverage(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	n := summaryLen(r)
	if r.Aspects.Count() > 0 || n <= detailedSummaryLen {
		return Warning{}, false
	}
	return Warning{
		Message: "Detailed review but no aspect ratings extracted",
		Details: map[string]any{"summaryLength": n},
	}, true
}

func checkSummaryShort(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	n := summaryLen(r)
	if n >= minSummaryLen {
		return Warning{}, false
	}
	return Warning{
		Message: "Summary is very short - might be incomplete",
		Details: map[string]any{"summaryLength": n},
	}, true
}

func checkSummaryLong(r domain.StructuredReview, _ *domain.ReviewInput) (Warning, bool) {
	n := summaryLen(r)
	if n <= maxSummaryLen {
		return Warning{}, false
	}
	return Warning{
		Message: "Summary is very long - should be more concise",
		Details: map[string]any{"summaryLength": n},
	}, true
}

// summaryLen counts characters, not bytes.
func summaryLen(r domain.StructuredReview) int {
	return utf8.RuneCountInString(r.Summary)
}
