package gemini

import (
	"context"

	"reviewz/internal/domain"
)

const extractorSystemPrompt = "You are an expert at extracting named entities from hotel reviews. " +
	"Extract all relevant entities mentioned in the review text."

// Extractor pulls named entities out of the review text only.
type Extractor struct{ c *Client }

func NewExtractor(c *Client) *Extractor { return &Extractor{c: c} }

func (x *Extractor) ExtractEntities(ctx context.Context, in domain.ReviewInput) (domain.NamedEntities, error) {
	text, err := x.c.generate(ctx, extractorSystemPrompt, in.Review, entitiesSchema)
	if err != nil {
		return domain.NamedEntities{}, err
	}
	var e domain.NamedEntities
	if err := decodeJSON(text, &e); err != nil {
		return domain.NamedEntities{}, err
	}
	fill(&e.People, &e.Locations, &e.Amenities, &e.Brands, &e.Dates, &e.Organizations)
	return e, nil
}

// fill replaces missing categories with empty lists.
func fill(lists ...*[]string) {
	for _, l := range lists {
		if *l == nil {
			*l = []string{}
		}
	}
}

var entitiesSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"people":        stringList("Names of people mentioned (staff, guests, etc.)"),
		"locations":     stringList("Specific places mentioned (restaurants, bars, landmarks, neighborhoods)"),
		"amenities":     stringList("Specific amenities or facilities mentioned (pool, gym, spa, restaurant names)"),
		"brands":        stringList("Brand names mentioned (WiFi providers, TV brands, etc.)"),
		"dates":         stringList("Specific dates or time periods mentioned"),
		"organizations": stringList("Organizations or companies mentioned"),
	},
	"required": []string{"people", "locations", "amenities", "brands", "dates", "organizations"},
}
