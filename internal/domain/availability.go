package domain

import (
	"context"
	"time"
)

// SlotSummary is one candidate slot with the number of AVAILABLE responses.
// swagger:model SlotSummary
type SlotSummary struct {
	DateTime         time.Time `json:"datetime"`
	ParticipantCount int       `json:"participant_count"`
}

// SlotAvailability pairs a slot date-time with one participant's status.
type SlotAvailability struct {
	DateTime time.Time  `json:"datetime"`
	Status   SlotStatus `json:"status"`
}

// ParticipantAvailability is the per-participant view of an event.
// swagger:model ParticipantAvailability
type ParticipantAvailability struct {
	ParticipantID  string             `json:"participant_id"`
	Availabilities []SlotAvailability `json:"availabilities"`
	Comment        *string            `json:"comment"`
}

// Availability is the aggregate over all responses to an event.
type Availability struct {
	Slots        []SlotSummary
	Participants []ParticipantAvailability
}

// EventDetail is everything a participant or organizer sees for one event.
// swagger:model EventDetail
type EventDetail struct {
	EventID            string                    `json:"event_id"`
	StationName        string                    `json:"station_name"`
	CandidateDatetimes []SlotSummary             `json:"candidate_datetimes"`
	Participants       []ParticipantAvailability `json:"participants"`
	Restaurants        []*Venue                  `json:"restaurants"`
}

// EventService defines the business logic for scheduling and recommendations.
type EventService interface {
	CreateEvent(ctx context.Context, stationName string, slots []time.Time) (*EventCreated, error)
	GetEventDetail(ctx context.Context, eventID, token string) (*EventDetail, error)
	AddParticipant(ctx context.Context, eventID, token string, statuses []SlotStatus, comment *string) (string, error)
}
