package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gatherplan/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// Create inserts the event and its candidate slots in one transaction.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO events (station_name, organizer_token_hash, participant_token_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, e.StationName, e.OrganizerTokenHash, e.ParticipantTokenHash, e.CreatedAt).Scan(&e.ID); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	for i, slot := range e.CandidateSlots {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_candidates (event_id, position, starts_at) VALUES ($1, $2, $3)`,
			e.ID, i+1, slot); err != nil {
			return fmt.Errorf("insert candidate %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, station_name, organizer_token_hash, participant_token_hash, created_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.StationName, &e.OrganizerTokenHash, &e.ParticipantTokenHash, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT starts_at FROM event_candidates WHERE event_id = $1 ORDER BY position`, e.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var slot time.Time
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		e.CandidateSlots = append(e.CandidateSlots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return e, nil
}
