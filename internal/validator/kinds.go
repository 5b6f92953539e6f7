package validator

import "fmt"

// ErrorKind classifies fatal validation problems.
type ErrorKind int

const (
	SchemaValidationFailed ErrorKind = iota + 1
)

var errorKindNames = map[ErrorKind]string{
	SchemaValidationFailed: "SCHEMA_VALIDATION_FAILED",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	if _, ok := errorKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown error kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *ErrorKind) UnmarshalText(b []byte) error {
	for kind, name := range errorKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown error kind %q", string(b))
}

// WarningKind classifies advisory findings. The set is closed; every kind
// is produced by exactly one rule in the battery.
type WarningKind int

const (
	HotelNameMismatch WarningKind = iota + 1
	LocationMismatch
	RatingMismatch
	HotelNameGeneric
	SentimentRatingMismatchPositiveLow
	SentimentRatingMismatchNegativeHigh
	SentimentMissingHighlights
	SentimentMissingIssues
	SentimentShouldBeMixed
	MissingAspectRatings
	SummaryTooShort
	SummaryTooLong
)

var warningKindNames = [...]string{
	HotelNameMismatch:                   "HOTEL_NAME_MISMATCH",
	LocationMismatch:                    "LOCATION_MISMATCH",
	RatingMismatch:                      "RATING_MISMATCH",
	HotelNameGeneric:                    "HOTEL_NAME_GENERIC",
	SentimentRatingMismatchPositiveLow:  "SENTIMENT_RATING_MISMATCH_POSITIVE_LOW",
	SentimentRatingMismatchNegativeHigh: "SENTIMENT_RATING_MISMATCH_NEGATIVE_HIGH",
	SentimentMissingHighlights:          "SENTIMENT_MISSING_HIGHLIGHTS",
	SentimentMissingIssues:              "SENTIMENT_MISSING_ISSUES",
	SentimentShouldBeMixed:              "SENTIMENT_SHOULD_BE_MIXED",
	MissingAspectRatings:                "MISSING_ASPECT_RATINGS",
	SummaryTooShort:                     "SUMMARY_TOO_SHORT",
	SummaryTooLong:                      "SUMMARY_TOO_LONG",
}

// WarningKinds returns every warning kind in evaluation order.
func WarningKinds() []WarningKind {
	out := make([]WarningKind, 0, len(warningKindNames)-1)
	for k := HotelNameMismatch; int(k) < len(warningKindNames); k++ {
		out = append(out, k)
	}
	return out
}

func (k WarningKind) valid() bool {
	return k >= HotelNameMismatch && int(k) < len(warningKindNames)
}

func (k WarningKind) String() string {
	if !k.valid() {
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
	return warningKindNames[k]
}

func (k WarningKind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("unknown warning kind %d", int(k))
	}
	return []byte(warningKindNames[k]), nil
}

func (k *WarningKind) UnmarshalText(b []byte) error {
	for _, kind := range WarningKinds() {
		if warningKindNames[kind] == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown warning kind %q", string(b))
}
