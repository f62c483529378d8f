package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"gatherplan/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

// NewParticipantRepository returns a domain.ParticipantRepository implemented with Postgres.
func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{DB: db}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (event_id, statuses, comment, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, p.EventID, pq.Array(statusStrings(p.Statuses)), p.Comment, p.CreatedAt).
		Scan(&p.ID)
}

func (r *participantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Participant, error) {
	query := `
		SELECT id, event_id, statuses, comment, created_at
		FROM participants
		WHERE event_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p := &domain.Participant{}
		var statuses []string
		var comment sql.NullString
		if err := rows.Scan(&p.ID, &p.EventID, pq.Array(&statuses), &comment, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Statuses = make([]domain.SlotStatus, 0, len(statuses))
		for _, s := range statuses {
			p.Statuses = append(p.Statuses, domain.SlotStatus(s))
		}
		if comment.Valid {
			p.Comment = &comment.String
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func statusStrings(statuses []domain.SlotStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
