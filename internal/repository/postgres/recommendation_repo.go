package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"gatherplan/internal/domain"
)

type recommendationRepository struct {
	DB *sql.DB
}

// NewRecommendationRepository returns a domain.RecommendationCache backed by the shops table.
func NewRecommendationRepository(db *sql.DB) domain.RecommendationCache {
	return &recommendationRepository{DB: db}
}

func (r *recommendationRepository) Get(ctx context.Context, eventID string) ([]*domain.Venue, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT shop_name, shop_address, genre, url, features, price_range, distance_from_station
		 FROM shops
		 WHERE event_id = $1
		 ORDER BY position`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		var genre, url, priceRange, distance sql.NullString
		var features []string
		if err := rows.Scan(&v.Name, &v.Address, &genre, &url, pq.Array(&features), &priceRange, &distance); err != nil {
			return nil, err
		}
		v.Genre = genre.String
		if url.Valid {
			v.URL = &url.String
		}
		v.Features = features
		v.PriceRange = priceRange.String
		v.DistanceFromStation = distance.String
		venues = append(venues, v.WithDefaults())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}

// Replace deletes the event's cached shops and inserts venues in one transaction.
func (r *recommendationRepository) Replace(ctx context.Context, eventID string, venues []*domain.Venue) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shops WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("clear shops: %w", err)
	}
	for i, venue := range venues {
		v := venue.WithDefaults()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shops (event_id, position, shop_name, shop_address, genre, url, features, price_range, distance_from_station)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			eventID, i, v.Name, v.Address, v.Genre, v.URL, pq.Array(v.Features), v.PriceRange, v.DistanceFromStation); err != nil {
			return fmt.Errorf("insert shop %q: %w", v.Name, err)
		}
	}
	return tx.Commit()
}
