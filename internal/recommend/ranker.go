package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"gatherplan/internal/domain"
)

// Ranker defaults.
const (
	DefaultSize     = 5
	DefaultMaxDraws = 50
)

// RankerConfig configures a Ranker. Zero values select defaults.
type RankerConfig struct {
	// Size is the exact number of venues returned by Rank.
	Size int
	// MaxDraws bounds random draws that try to find a venue not yet selected.
	// Once exhausted, padding allows duplicates.
	MaxDraws int
	// Rand is the padding random source. Nil seeds one from the clock.
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Ranker scores catalog venues against comment keywords. It is safe for concurrent use.
type Ranker struct {
	catalog   domain.VenueCatalog
	extractor *Extractor
	size      int
	maxDraws  int
	logger    *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRanker returns a Ranker over catalog. A nil extractor uses the default synonym table.
func NewRanker(catalog domain.VenueCatalog, extractor *Extractor, cfg RankerConfig) *Ranker {
	if extractor == nil {
		extractor = NewExtractor(nil, "")
	}
	if cfg.Size <= 0 {
		cfg.Size = DefaultSize
	}
	if cfg.MaxDraws <= 0 {
		cfg.MaxDraws = DefaultMaxDraws
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Ranker{
		catalog:   catalog,
		extractor: extractor,
		size:      cfg.Size,
		maxDraws:  cfg.MaxDraws,
		logger:    cfg.Logger,
		rng:       cfg.Rand,
	}
}

type scoredVenue struct {
	venue *domain.Venue
	score int
}

// Rank returns exactly Size venues for area. Every venue carries the full
// comments list as MatchingComments. When the area pool yields fewer than
// Size venues the rest are drawn at random from the default pool.
func (r *Ranker) Rank(ctx context.Context, area string, comments []string) ([]*domain.Venue, error) {
	keywords := r.extractor.Extract(comments)

	pool, err := r.catalog.ListByArea(ctx, area)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("list venues for area: %w", err)
		}
		if pool, err = r.catalog.ListDefault(ctx); err != nil {
			return nil, fmt.Errorf("list default venues: %w", err)
		}
	}

	scored := make([]scoredVenue, 0, len(pool))
	for _, v := range pool {
		scored = append(scored, scoredVenue{venue: v, score: score(v, keywords)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	out := make([]*domain.Venue, 0, r.size)
	for _, s := range scored {
		if len(out) == r.size {
			break
		}
		out = append(out, annotate(s.venue, comments))
	}
	if len(out) == r.size {
		return out, nil
	}

	defaults, err := r.catalog.ListDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("list default venues: %w", err)
	}
	if len(defaults) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	r.logger.DebugContext(ctx, "padding recommendations", "area", area, "scored", len(out), "size", r.size)
	return r.pad(out, defaults, comments), nil
}

// pad appends random default venues until out has Size entries. It first
// skips venues already selected, for at most MaxDraws draws or until every
// default venue is taken, then allows duplicates.
func (r *Ranker) pad(out, defaults []*domain.Venue, comments []string) []*domain.Venue {
	selected := make(map[string]struct{}, r.size)
	for _, v := range out {
		selected[v.Key()] = struct{}{}
	}
	remaining := 0
	for _, v := range uniqueVenues(defaults) {
		if _, ok := selected[v.Key()]; !ok {
			remaining++
		}
	}

	r.rngMu.Lock()
	defer r.rngMu.Unlock()

	for draws := 0; len(out) < r.size && remaining > 0 && draws < r.maxDraws; draws++ {
		v := defaults[r.rng.Intn(len(defaults))]
		if _, ok := selected[v.Key()]; ok {
			continue
		}
		selected[v.Key()] = struct{}{}
		remaining--
		out = append(out, annotate(v, comments))
	}
	for len(out) < r.size {
		out = append(out, annotate(defaults[r.rng.Intn(len(defaults))], comments))
	}
	return out
}

// score counts keywords contained in any case-folded feature tag of v.
func score(v *domain.Venue, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		for _, f := range v.Features {
			if strings.Contains(strings.ToLower(f), kw) {
				n++
				break
			}
		}
	}
	return n
}

func annotate(v *domain.Venue, comments []string) *domain.Venue {
	c := v.Clone()
	c.MatchingComments = append(make([]string, 0, len(comments)), comments...)
	return c
}

func uniqueVenues(venues []*domain.Venue) []*domain.Venue {
	seen := make(map[string]struct{}, len(venues))
	out := make([]*domain.Venue, 0, len(venues))
	for _, v := range venues {
		if _, ok := seen[v.Key()]; ok {
			continue
		}
		seen[v.Key()] = struct{}{}
		out = append(out, v)
	}
	return out
}
