package domain

import "context"

// Sentinel labels used when a venue record lacks a price range or features.
const (
	UnknownPriceRange = "unknown"
	UncategorizedTag  = "uncategorized"
)

// Venue is a restaurant recommendation candidate.
// swagger:model Venue
type Venue struct {
	Name                string   `json:"name"`
	Address             string   `json:"address"`
	Genre               string   `json:"genre"`
	URL                 *string  `json:"url"`
	Features            []string `json:"features"`
	PriceRange          string   `json:"price_range"`
	DistanceFromStation string   `json:"distance_from_station"`
	// MatchingComments is attached when serving and never persisted.
	MatchingComments []string `json:"matching_comments,omitempty"`
}

// Clone returns a deep copy of v.
func (v *Venue) Clone() *Venue {
	c := *v
	if v.URL != nil {
		u := *v.URL
		c.URL = &u
	}
	c.Features = append([]string(nil), v.Features...)
	c.MatchingComments = append([]string(nil), v.MatchingComments...)
	return &c
}

// WithDefaults returns a copy of v with sentinel labels applied to an empty
// price range or feature list.
func (v *Venue) WithDefaults() *Venue {
	c := v.Clone()
	if c.PriceRange == "" {
		c.PriceRange = UnknownPriceRange
	}
	if len(c.Features) == 0 {
		c.Features = []string{UncategorizedTag}
	}
	return c
}

// Key identifies a venue within a catalog.
func (v *Venue) Key() string {
	return v.Name + "\x00" + v.Address
}

// VenueCatalog is a read-only source of recommendation candidates.
type VenueCatalog interface {
	// ListByArea returns the pool for the exact area key, or ErrNotFound.
	ListByArea(ctx context.Context, area string) ([]*Venue, error)
	// ListDefault returns the fallback pool.
	ListDefault(ctx context.Context) ([]*Venue, error)
}

// RecommendationCache stores the last computed recommendation list per event.
// Get returns an empty slice and no error when nothing is cached.
// Replace discards any existing entries before storing venues.
type RecommendationCache interface {
	Get(ctx context.Context, eventID string) ([]*Venue, error)
	Replace(ctx context.Context, eventID string, venues []*Venue) error
}

// Recommender ranks venues for an area from participant comments.
type Recommender interface {
	Rank(ctx context.Context, area string, comments []string) ([]*Venue, error)
}
