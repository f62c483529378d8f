package services

import "gatherplan/internal/domain"

// Aggregate counts AVAILABLE responses per candidate slot and pairs each
// participant's statuses with slot date-times. Statuses are matched to slots
// by position; positions present on only one side are left out.
func Aggregate(event *domain.Event, participants []*domain.Participant) *domain.Availability {
	slots := make([]domain.SlotSummary, len(event.CandidateSlots))
	for i, dt := range event.CandidateSlots {
		slots[i] = domain.SlotSummary{DateTime: dt}
	}

	views := make([]domain.ParticipantAvailability, 0, len(participants))
	for _, p := range participants {
		n := min(len(p.Statuses), len(slots))
		view := domain.ParticipantAvailability{
			ParticipantID:  p.ID,
			Availabilities: make([]domain.SlotAvailability, n),
			Comment:        p.Comment,
		}
		for i := 0; i < n; i++ {
			status := p.Statuses[i]
			if status == domain.StatusAvailable {
				slots[i].ParticipantCount++
			}
			view.Availabilities[i] = domain.SlotAvailability{
				DateTime: slots[i].DateTime,
				Status:   status,
			}
		}
		views = append(views, view)
	}

	return &domain.Availability{Slots: slots, Participants: views}
}

// commentsOf returns the non-empty participant comments in participant order.
func commentsOf(participants []*domain.Participant) []string {
	comments := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.Comment != nil && *p.Comment != "" {
			comments = append(comments, *p.Comment)
		}
	}
	return comments
}
