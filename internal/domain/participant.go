package domain

import (
	"context"
	"fmt"
	"time"
)

// SlotStatus is a participant's stance on one candidate slot.
type SlotStatus string

const (
	StatusAvailable   SlotStatus = "AVAILABLE"
	StatusUnavailable SlotStatus = "UNAVAILABLE"
	StatusMaybe       SlotStatus = "MAYBE"
)

// Valid reports whether s is one of the known statuses.
func (s SlotStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusUnavailable, StatusMaybe:
		return true
	}
	return false
}

// Participant is one response to an event. Statuses are aligned positionally
// with the event's candidate slots.
// swagger:model Participant
type Participant struct {
	ID        string       `json:"participant_id"`
	EventID   string       `json:"event_id"`
	Statuses  []SlotStatus `json:"statuses"`
	Comment   *string      `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewParticipant returns a new Participant. ID is typically set by the repository on create.
func NewParticipant(eventID string, statuses []SlotStatus, comment *string, createdAt time.Time) *Participant {
	return &Participant{
		EventID:   eventID,
		Statuses:  statuses,
		Comment:   comment,
		CreatedAt: createdAt,
	}
}

// ValidateFor checks that the statuses match the event's slot count and are all known values.
func (p *Participant) ValidateFor(event *Event) error {
	if len(p.Statuses) != len(event.CandidateSlots) {
		return fmt.Errorf("%w: expected %d availability responses, got %d", ErrInvalidInput, len(event.CandidateSlots), len(p.Statuses))
	}
	for i, s := range p.Statuses {
		if !s.Valid() {
			return fmt.Errorf("%w: availability %d: status must be one of AVAILABLE, UNAVAILABLE, MAYBE", ErrInvalidInput, i+1)
		}
	}
	return nil
}

// ParticipantRepository defines storage for participant responses.
// ListByEventID returns participants in creation order.
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	ListByEventID(ctx context.Context, eventID string) ([]*Participant, error)
}
