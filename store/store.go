// Package store provides the Postgres-backed campus content catalog. The
// feed core treats it as one more content source; it owns caching of the
// underlying channel data.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"steeple/models"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// Store handles all campus content queries with a shared connection pool
type Store struct {
	db *sql.DB
}

func New(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(20)           // Allow multiple concurrent operations
	db.SetMaxIdleConns(10)           // Keep some connections ready
	db.SetConnMaxLifetime(time.Hour) // Recreate connections after an hour
	db.SetConnMaxIdleTime(time.Hour) // Close idle connections after an hour

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// ItemsByCampus returns published content items for one campus, newest first.
// An empty channels list means all channels.
func (s *Store) ItemsByCampus(ctx context.Context, campusID string, channels []string) ([]models.CampusItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	log.WithFields(log.Fields{
		"campus":   campusID,
		"channels": channels,
	}).Info("Getting campus items")

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("items.id", "items.title", "items.summary", "items.image_url", "channels.name").
		From("campus_items items").
		Join("content_channels channels", "items.channel_id = channels.id").
		Where(sb.Equal("items.campus_id", campusID)).
		OrderBy("items.published_at DESC", "items.id DESC")

	if len(channels) > 0 {
		sb.Where(fmt.Sprintf("channels.name = ANY(%s)", sb.Args.Add(pq.Array(channels))))
	}

	query, args := sb.Build()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("campus items query error: %w", err)
	}
	defer rows.Close()

	var items []models.CampusItem
	for rows.Next() {
		var item models.CampusItem
		var summary, imageURL sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &summary, &imageURL, &item.ChannelName); err != nil {
			return nil, fmt.Errorf("campus items scan error: %w", err)
		}
		item.Summary = summary.String
		if imageURL.Valid && imageURL.String != "" {
			item.Image = &models.ImageMedia{Sources: []models.ImageSource{{URI: imageURL.String}}}
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
