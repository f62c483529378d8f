package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gatherplan/internal/domain"
	"gatherplan/internal/metrics"
)

type eventService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	cache           domain.RecommendationCache
	recommender     domain.Recommender
	tokens          domain.AccessTokenIssuer
	hasher          domain.AccessTokenHasher
	logger          *slog.Logger
	contextTimeout  time.Duration
	now             func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	cache domain.RecommendationCache,
	recommender domain.Recommender,
	tokens domain.AccessTokenIssuer,
	hasher domain.AccessTokenHasher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		cache:           cache,
		recommender:     recommender,
		tokens:          tokens,
		hasher:          hasher,
		logger:          logger,
		contextTimeout:  timeout,
		now:             time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, stationName string, slots []time.Time) (*domain.EventCreated, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event := domain.NewEvent(stationName, slots, "", "", s.now().UTC())
	if err := event.Validate(); err != nil {
		return nil, err
	}

	organizerToken, err := s.tokens.Issue()
	if err != nil {
		return nil, fmt.Errorf("issue organizer token: %w", err)
	}
	participantToken, err := s.tokens.Issue()
	if err != nil {
		return nil, fmt.Errorf("issue participant token: %w", err)
	}
	if event.OrganizerTokenHash, err = s.hasher.Hash(organizerToken); err != nil {
		return nil, fmt.Errorf("hash organizer token: %w", err)
	}
	if event.ParticipantTokenHash, err = s.hasher.Hash(participantToken); err != nil {
		return nil, fmt.Errorf("hash participant token: %w", err)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	metrics.EventsCreatedTotal.Inc()

	return &domain.EventCreated{
		EventID:          event.ID,
		OrganizerToken:   organizerToken,
		ParticipantToken: participantToken,
	}, nil
}

func (s *eventService) GetEventDetail(ctx context.Context, eventID, token string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.AuthorizeRead(s.hasher, token) {
		return nil, domain.ErrNotFound
	}

	participants, err := s.participantRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	availability := Aggregate(event, participants)

	venues, err := s.recommendations(ctx, event, commentsOf(participants))
	if err != nil {
		return nil, err
	}

	return &domain.EventDetail{
		EventID:            event.ID,
		StationName:        event.StationName,
		CandidateDatetimes: availability.Slots,
		Participants:       availability.Participants,
		Restaurants:        venues,
	}, nil
}

func (s *eventService) AddParticipant(ctx context.Context, eventID, token string, statuses []domain.SlotStatus, comment *string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	if !event.Authorize(s.hasher, token) {
		return "", domain.ErrNotFound
	}

	if comment != nil && strings.TrimSpace(*comment) == "" {
		comment = nil
	}
	participant := domain.NewParticipant(event.ID, statuses, comment, s.now().UTC())
	if err := participant.ValidateFor(event); err != nil {
		return "", err
	}

	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return "", fmt.Errorf("create participant: %w", err)
	}
	metrics.ParticipantsAddedTotal.Inc()

	return participant.ID, nil
}

func (s *eventService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, domain.ErrNotFound
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// recommendations serves the cached venue list when present, otherwise ranks
// and stores a fresh one. Cached venues are re-annotated with comments.
func (s *eventService) recommendations(ctx context.Context, event *domain.Event, comments []string) ([]*domain.Venue, error) {
	cached, err := s.cache.Get(ctx, event.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "recommendation cache read failed", "event_id", event.ID, "err", err)
	}
	if err == nil && len(cached) > 0 {
		metrics.RecordCacheHit()
		return annotate(cached, comments), nil
	}
	metrics.RecordCacheMiss()

	start := time.Now()
	venues, err := s.recommender.Rank(ctx, event.StationName, comments)
	if err != nil {
		return nil, fmt.Errorf("rank venues: %w", err)
	}
	metrics.RecordRanking(time.Since(start))

	if err := s.cache.Replace(ctx, event.ID, venues); err != nil {
		s.logger.WarnContext(ctx, "recommendation cache write failed", "event_id", event.ID, "err", err)
	}
	return venues, nil
}

func annotate(venues []*domain.Venue, comments []string) []*domain.Venue {
	out := make([]*domain.Venue, len(venues))
	for i, v := range venues {
		c := v.Clone()
		c.MatchingComments = append([]string(nil), comments...)
		out[i] = c
	}
	return out
}
