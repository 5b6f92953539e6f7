package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"reviewz/internal/domain"
	"reviewz/internal/schema"
)

const producerSystemPrompt = "You are an expert at analyzing hotel reviews. " +
	"Extract structured information from the provided review. " +
	"Use the hotel name, location, and score provided in the context."

// Producer turns review text into a candidate structured review. Model
// output that does not fit the review schema is returned as a *schema.Failure.
type Producer struct{ c *Client }

func NewProducer(c *Client) *Producer { return &Producer{c: c} }

func (p *Producer) Produce(ctx context.Context, in domain.ReviewInput) (domain.StructuredReview, error) {
	text, err := p.c.generate(ctx, producerSystemPrompt, producerPrompt(in), reviewSchema)
	if err != nil {
		return domain.StructuredReview{}, err
	}
	// missing fields must be reported, not zero-filled
	var raw json.RawMessage
	if err := decodeJSON(text, &raw); err != nil {
		return domain.StructuredReview{}, err
	}
	return schema.Parse(raw)
}

// producerPrompt renders absent context with the placeholder values the
// model has always been shown.
func producerPrompt(in domain.ReviewInput) string {
	return fmt.Sprintf("Hotel: %s\nLocation: %s\nUser Score: %s/5\n\nReview Text:\n%s",
		in.HotelNameOr(domain.PlaceholderHotelName),
		in.LocationOr(domain.PlaceholderLocation),
		strconv.FormatFloat(in.ScoreOr(0), 'f', -1, 64),
		in.Review,
	)
}

func rating(desc string) map[string]any {
	return map[string]any{"type": "NUMBER", "minimum": 1, "maximum": 5, "description": desc}
}

func enum[T ~string](desc string, vs []T) map[string]any {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return map[string]any{"type": "STRING", "enum": out, "description": desc}
}

func stringList(desc string) map[string]any {
	return map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}, "description": desc}
}

var reviewSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"hotelName": map[string]any{"type": "STRING", "description": "Name of the hotel"},
		"location":  map[string]any{"type": "STRING", "description": "Hotel location or city"},
		"rating":    rating("Overall rating from 1-5"),
		"sentiment": enum("Overall sentiment of the review", domain.Sentiments),
		"aspects": map[string]any{
			"type":        "OBJECT",
			"description": "Specific aspect ratings mentioned in the review",
			"properties": map[string]any{
				"cleanliness": rating("Cleanliness rating"),
				"service":     rating("Service quality rating"),
				"location":    rating("Location convenience rating"),
				"value":       rating("Value for money rating"),
				"amenities":   rating("Amenities quality rating"),
			},
		},
		"highlights":   stringList("Positive points mentioned"),
		"issues":       stringList("Negative points or complaints mentioned"),
		"reviewerType": enum("Type of traveler", domain.ReviewerTypes),
		"summary":      map[string]any{"type": "STRING", "description": "Brief summary of the review"},
	},
	"required": []string{"hotelName", "rating", "sentiment", "aspects", "highlights", "issues", "reviewerType", "summary"},
}
