package domain

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// Sentiments lists every allowed sentiment, in schema order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral, SentimentMixed}

type ReviewerType string

const (
	ReviewerBusiness ReviewerType = "business"
	ReviewerLeisure  ReviewerType = "leisure"
	ReviewerFamily   ReviewerType = "family"
	ReviewerCouple   ReviewerType = "couple"
	ReviewerSolo     ReviewerType = "solo"
	ReviewerUnknown  ReviewerType = "unknown"
)

// ReviewerTypes lists every allowed reviewer type, in schema order.
var ReviewerTypes = []ReviewerType{
	ReviewerBusiness, ReviewerLeisure, ReviewerFamily, ReviewerCouple, ReviewerSolo, ReviewerUnknown,
}

// Aspects holds optional 1..5 sub-ratings. A nil field means the review
// did not mention that dimension.
type Aspects struct {
	Cleanliness *float64 `json:"cleanliness,omitempty"`
	Service     *float64 `json:"service,omitempty"`
	Location    *float64 `json:"location,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Amenities   *float64 `json:"amenities,omitempty"`
}

// Count returns how many sub-ratings are present.
func (a Aspects) Count() int {
	n := 0
	for _, v := range []*float64{a.Cleanliness, a.Service, a.Location, a.Value, a.Amenities} {
		if v != nil {
			n++
		}
	}
	return n
}

// StructuredReview is the canonical parsed form of a free-text hotel review.
type StructuredReview struct {
	HotelName    string       `json:"hotelName"`
	Location     *string      `json:"location,omitempty"`
	Rating       float64      `json:"rating"`
	Sentiment    Sentiment    `json:"sentiment"`
	Aspects      Aspects      `json:"aspects"`
	Highlights   []string     `json:"highlights"`
	Issues       []string     `json:"issues"`
	ReviewerType ReviewerType `json:"reviewerType"`
	Summary      string       `json:"summary"`
}

// NamedEntities groups entities mentioned in the review text by category.
type NamedEntities struct {
	People        []string `json:"people"`
	Locations     []string `json:"locations"`
	Amenities     []string `json:"amenities"`
	Brands        []string `json:"brands"`
	Dates         []string `json:"dates"`
	Organizations []string `json:"organizations"`
}
