package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits on event fields.
const (
	MinCandidateSlots    = 1
	MaxCandidateSlots    = 3
	MaxStationNameLength = 100
)

// Event is a group gathering proposed by an organizer: a station (venue area)
// and an ordered list of candidate date-times.
// swagger:model Event
type Event struct {
	ID             string      `json:"event_id"`
	StationName    string      `json:"station_name"`
	CandidateSlots []time.Time `json:"candidate_datetimes"`
	// Token hashes; the plaintext tokens are only returned at creation.
	OrganizerTokenHash   string    `json:"-"`
	ParticipantTokenHash string    `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(stationName string, slots []time.Time, organizerTokenHash, participantTokenHash string, createdAt time.Time) *Event {
	return &Event{
		StationName:          strings.TrimSpace(stationName),
		CandidateSlots:       slots,
		OrganizerTokenHash:   organizerTokenHash,
		ParticipantTokenHash: participantTokenHash,
		CreatedAt:            createdAt,
	}
}

// Validate checks the station name length and the candidate slot count.
func (e *Event) Validate() error {
	n := utf8.RuneCountInString(strings.TrimSpace(e.StationName))
	if n == 0 || n > MaxStationNameLength {
		return fmt.Errorf("%w: station_name must be 1-%d characters", ErrInvalidInput, MaxStationNameLength)
	}
	if len(e.CandidateSlots) < MinCandidateSlots || len(e.CandidateSlots) > MaxCandidateSlots {
		return fmt.Errorf("%w: must provide %d-%d candidate datetimes", ErrInvalidInput, MinCandidateSlots, MaxCandidateSlots)
	}
	return nil
}

// CanonicalToken normalizes an access token for comparison.
func CanonicalToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// Authorize reports whether token matches the event's participant token.
// Only the participant token may submit responses.
func (e *Event) Authorize(h AccessTokenHasher, token string) bool {
	return tokenMatches(h, e.ParticipantTokenHash, token)
}

// AuthorizeRead reports whether token grants read access: either the
// participant token or the organizer token of the event.
func (e *Event) AuthorizeRead(h AccessTokenHasher, token string) bool {
	return e.Authorize(h, token) || tokenMatches(h, e.OrganizerTokenHash, token)
}

func tokenMatches(h AccessTokenHasher, storedHash, supplied string) bool {
	t := CanonicalToken(supplied)
	return storedHash != "" && t != "" && h.Verify(storedHash, t)
}

// EventCreated is returned to the organizer once, at creation.
// swagger:model EventCreated
type EventCreated struct {
	EventID          string `json:"event_id"`
	OrganizerToken   string `json:"organizer_token"`
	ParticipantToken string `json:"participant_token"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
}

// AccessTokenIssuer issues opaque, unique access tokens.
type AccessTokenIssuer interface {
	Issue() (string, error)
}

// AccessTokenHasher turns canonical access tokens into stored hashes and
// checks a canonical token against a stored hash.
type AccessTokenHasher interface {
	Hash(token string) (string, error)
	Verify(hash, token string) bool
}
