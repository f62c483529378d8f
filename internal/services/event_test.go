package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gatherplan/internal/adapters/auth"
	"gatherplan/internal/adapters/catalog"
	"gatherplan/internal/domain"
	"gatherplan/internal/recommend"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, Create and GetByID return this error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

type fakeParticipantRepo struct {
	byEvent map[string][]*domain.Participant
	nextID  int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byEvent: make(map[string][]*domain.Participant), nextID: 1}
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	p.ID = fmt.Sprintf("p-%d", f.nextID)
	f.nextID++
	f.byEvent[p.EventID] = append(f.byEvent[p.EventID], p)
	return nil
}

func (f *fakeParticipantRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	return f.byEvent[eventID], nil
}

type fakeCache struct {
	mu       sync.Mutex
	entries  map[string][]*domain.Venue
	replaces int
	getErr   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]*domain.Venue)}
}

func (f *fakeCache) Get(ctx context.Context, eventID string) ([]*domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]*domain.Venue, 0, len(f.entries[eventID]))
	for _, v := range f.entries[eventID] {
		c := v.Clone()
		c.MatchingComments = nil
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCache) Replace(ctx context.Context, eventID string, venues []*domain.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaces++
	f.entries[eventID] = venues
	return nil
}

// countingRecommender wraps a Recommender and counts Rank calls.
type countingRecommender struct {
	inner domain.Recommender
	calls int
}

func (c *countingRecommender) Rank(ctx context.Context, area string, comments []string) ([]*domain.Venue, error) {
	c.calls++
	return c.inner.Rank(ctx, area, comments)
}

type failingRecommender struct{}

func (failingRecommender) Rank(context.Context, string, []string) ([]*domain.Venue, error) {
	return nil, domain.ErrEmptyCatalog
}

type seqIssuer struct{ n int }

func (s *seqIssuer) Issue() (string, error) {
	s.n++
	return fmt.Sprintf("token-%d", s.n), nil
}

type failingIssuer struct{}

func (failingIssuer) Issue() (string, error) { return "", errors.New("entropy exhausted") }

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash failed") }

func (failingHasher) Verify(string, string) bool { return false }

func testHasher() domain.AccessTokenHasher { return auth.NewBcryptHasher(bcrypt.MinCost) }

type fixture struct {
	svc          domain.EventService
	events       *fakeEventRepo
	participants *fakeParticipantRepo
	cache        *fakeCache
	recommender  *countingRecommender
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.NewSeed()
	require.NoError(t, err)
	ranker := recommend.NewRanker(cat, nil, recommend.RankerConfig{Rand: rand.New(rand.NewSource(42))})

	f := &fixture{
		events:       newFakeEventRepo(),
		participants: newFakeParticipantRepo(),
		cache:        newFakeCache(),
		recommender:  &countingRecommender{inner: ranker},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewEventService(f.events, f.participants, f.cache, f.recommender, &seqIssuer{}, testHasher(), logger, 5*time.Second)
	return f
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		got, err := f.svc.CreateEvent(ctx, "  新宿  ", []time.Time{t1})
		require.NoError(t, err)
		assert.Equal(t, "ev-1", got.EventID)
		assert.Equal(t, "token-1", got.OrganizerToken)
		assert.Equal(t, "token-2", got.ParticipantToken)

		stored := f.events.byID["ev-1"]
		require.NotNil(t, stored)
		assert.NotEqual(t, got.OrganizerToken, stored.OrganizerTokenHash, "plaintext token is not stored")
		assert.NotEqual(t, got.ParticipantToken, stored.ParticipantTokenHash, "plaintext token is not stored")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.OrganizerTokenHash), []byte("token-1")))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.ParticipantTokenHash), []byte("token-2")))
		assert.Equal(t, "新宿", stored.StationName)
		assert.Equal(t, []time.Time{t1}, stored.CandidateSlots)
		assert.False(t, stored.CreatedAt.IsZero())
	})

	invalid := []struct {
		name    string
		station string
		slots   []time.Time
	}{
		{"empty station", "   ", []time.Time{t1}},
		{"station too long", strings.Repeat("駅", domain.MaxStationNameLength+1), []time.Time{t1}},
		{"no slots", "新宿", nil},
		{"four slots", "新宿", []time.Time{t1, t1, t1, t1}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.CreateEvent(ctx, tt.station, tt.slots)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, f.events.byID)
		})
	}

	t.Run("station of exactly max length", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.CreateEvent(ctx, strings.Repeat("駅", domain.MaxStationNameLength), []time.Time{t1})
		require.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.events.err = errors.New("db down")
		_, err := f.svc.CreateEvent(ctx, "新宿", []time.Time{t1})
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("token hasher error", func(t *testing.T) {
		events := newFakeEventRepo()
		svc := NewEventService(events, newFakeParticipantRepo(), newFakeCache(), failingRecommender{}, &seqIssuer{}, failingHasher{}, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second)
		_, err := svc.CreateEvent(ctx, "新宿", []time.Time{t1})
		require.Error(t, err)
		assert.Empty(t, events.byID)
	})

	t.Run("token issuer error", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), newFakeParticipantRepo(), newFakeCache(), failingRecommender{}, failingIssuer{}, testHasher(), slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second)
		_, err := svc.CreateEvent(ctx, "新宿", []time.Time{t1})
		require.Error(t, err)
	})
}

func TestEventService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t1 := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 2, 19, 0, 0, 0, time.UTC)

	created, err := f.svc.CreateEvent(ctx, "新宿", []time.Time{t1, t2})
	require.NoError(t, err)

	comment := "ビール好き"
	pid, err := f.svc.AddParticipant(ctx, created.EventID, created.ParticipantToken,
		[]domain.SlotStatus{domain.StatusAvailable, domain.StatusUnavailable}, &comment)
	require.NoError(t, err)
	assert.NotEmpty(t, pid)

	detail, err := f.svc.GetEventDetail(ctx, created.EventID, created.ParticipantToken)
	require.NoError(t, err)

	assert.Equal(t, created.EventID, detail.EventID)
	assert.Equal(t, "新宿", detail.StationName)
	require.Len(t, detail.CandidateDatetimes, 2)
	assert.Equal(t, 1, detail.CandidateDatetimes[0].ParticipantCount)
	assert.Equal(t, 0, detail.CandidateDatetimes[1].ParticipantCount)

	require.Len(t, detail.Participants, 1)
	assert.Equal(t, pid, detail.Participants[0].ParticipantID)
	require.NotNil(t, detail.Participants[0].Comment)
	assert.Equal(t, comment, *detail.Participants[0].Comment)

	require.Len(t, detail.Restaurants, recommend.DefaultSize)
	assert.Equal(t, "ビアホール麦酒", detail.Restaurants[0].Name)
	for _, v := range detail.Restaurants {
		assert.Equal(t, []string{comment}, v.MatchingComments)
	}
}

func TestEventService_GetEventDetail_TokenGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t1 := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
	created, err := f.svc.CreateEvent(ctx, "新宿", []time.Time{t1})
	require.NoError(t, err)

	tests := []struct {
		name    string
		eventID string
		token   string
		wantErr error
	}{
		{name: "participant token", eventID: created.EventID, token: created.ParticipantToken},
		{name: "participant token upper case", eventID: created.EventID, token: strings.ToUpper(created.ParticipantToken)},
		{name: "participant token padded", eventID: created.EventID, token: " " + created.ParticipantToken + " "},
		{name: "organizer token", eventID: created.EventID, token: created.OrganizerToken},
		{name: "wrong token", eventID: created.EventID, token: "nope", wantErr: domain.ErrNotFound},
		{name: "empty token", eventID: created.EventID, token: "", wantErr: domain.ErrNotFound},
		{name: "missing event", eventID: "ev-404", token: created.ParticipantToken, wantErr: domain.ErrNotFound},
		{name: "empty event id", eventID: "", token: created.ParticipantToken, wantErr: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.GetEventDetail(ctx, tt.eventID, tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.EventID, got.EventID)
		})
	}
}

func TestEventService_GetEventDetail_CacheReuse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t1 := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
	created, err := f.svc.CreateEvent(ctx, "新宿", []time.Time{t1})
	require.NoError(t, err)

	first, err := f.svc.GetEventDetail(ctx, created.EventID, created.ParticipantToken)
	require.NoError(t, err)
	assert.Equal(t, 1, f.recommender.calls)
	assert.Equal(t, 1, f.cache.replaces)

	comment := "個室がいい"
	_, err = f.svc.AddParticipant(ctx, created.EventID, created.ParticipantToken, []domain.SlotStatus{domain.StatusMaybe}, &comment)
	require.NoError(t, err)

	second, err := f.svc.GetEventDetail(ctx, created.EventID, created.ParticipantToken)
	require.NoError(t, err)
	assert.Equal(t, 1, f.recommender.calls, "cached list is served without re-ranking")
	assert.Equal(t, 1, f.cache.replaces)

	require.Len(t, second.Restaurants, len(first.Restaurants))
	for i := range first.Restaurants {
		assert.Equal(t, first.Restaurants[i].Name, second.Restaurants[i].Name)
		assert.Equal(t, []string{comment}, second.Restaurants[i].MatchingComments)
	}
}

func TestEventService_GetEventDetail_CacheReadErrorFallsBackToRanking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	t1 := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
	created, err := f.svc.CreateEvent(ctx, "新宿", []time.Time{t1})
	require.NoError(t, err)

	f.cache.getErr = errors.New("redis unavailable")
	got, err := f.svc.GetEventDetail(ctx, created.EventID, created.ParticipantToken)
	require.NoError(t, err)
	assert.Len(t, got.Restaurants, recommend.DefaultSize)
	assert.Equal(t, 1, f.recommender.calls)
}

func TestEventService_GetEventDetail_RankError(t *testing.T) {
	ctx := context.Background()
	events := newFakeEventRepo()
	svc := NewEventService(events, newFakeParticipantRepo(), newFakeCache(), failingRecommender{}, &seqIssuer{}, testHasher(), slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second)
	created, err := svc.CreateEvent(ctx, "新宿", []time.Time{time.Now()})
	require.NoError(t, err)

	_, err = svc.GetEventDetail(ctx, created.EventID, created.ParticipantToken)
	require.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestEventService_AddParticipant(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 2, 19, 0, 0, 0, time.UTC)
	blank := "   "

	tests := []struct {
		name     string
		eventID  func(created *domain.EventCreated) string
		token    func(created *domain.EventCreated) string
		statuses []domain.SlotStatus
		comment  *string
		wantErr  error
	}{
		{
			name:     "success",
			statuses: []domain.SlotStatus{domain.StatusAvailable, domain.StatusMaybe},
		},
		{
			name:     "blank comment stored as none",
			statuses: []domain.SlotStatus{domain.StatusAvailable, domain.StatusMaybe},
			comment:  &blank,
		},
		{
			name:     "organizer token cannot submit",
			token:    func(c *domain.EventCreated) string { return c.OrganizerToken },
			statuses: []domain.SlotStatus{domain.StatusAvailable, domain.StatusMaybe},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "wrong token",
			token:    func(*domain.EventCreated) string { return "bad" },
			statuses: []domain.SlotStatus{domain.StatusAvailable, domain.StatusMaybe},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "missing event",
			eventID:  func(*domain.EventCreated) string { return "ev-404" },
			statuses: []domain.SlotStatus{domain.StatusAvailable, domain.StatusMaybe},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "missing event with wrong count still not found",
			eventID:  func(*domain.EventCreated) string { return "ev-404" },
			statuses: []domain.SlotStatus{domain.StatusAvailable},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "too few statuses",
			statuses: []domain.SlotStatus{domain.StatusAvailable},
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "too many statuses",
			statuses: []domain.SlotStatus{domain.StatusAvailable, domain.StatusAvailable, domain.StatusAvailable},
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "unknown status",
			statuses: []domain.SlotStatus{domain.StatusAvailable, "YES"},
			wantErr:  domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			created, err := f.svc.CreateEvent(ctx, "新宿", []time.Time{t1, t2})
			require.NoError(t, err)

			eventID, token := created.EventID, created.ParticipantToken
			if tt.eventID != nil {
				eventID = tt.eventID(created)
			}
			if tt.token != nil {
				token = tt.token(created)
			}

			id, err := f.svc.AddParticipant(ctx, eventID, token, tt.statuses, tt.comment)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, id)
				assert.Empty(t, f.participants.byEvent[created.EventID])
				return
			}
			require.NoError(t, err)
			stored := f.participants.byEvent[created.EventID]
			require.Len(t, stored, 1)
			assert.Equal(t, id, stored[0].ID)
			assert.Nil(t, stored[0].Comment)
		})
	}
}
