package store

import (
	"context"
	"fmt"
	"time"

	"video-order-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// ListVideos retrieves gallery videos, optionally filtered by category
func (s *Store) ListVideos(ctx context.Context, category string) ([]models.Video, error) {
	var videos []models.Video
	if category == "" {
		err := s.db.SelectContext(ctx, &videos, "SELECT * FROM videos ORDER BY id")
		return videos, err
	}
	err := s.db.SelectContext(ctx, &videos,
		"SELECT * FROM videos WHERE category = $1 ORDER BY id", category)
	return videos, err
}

// ListVideoCategories retrieves the distinct gallery categories
func (s *Store) ListVideoCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.SelectContext(ctx, &categories,
		"SELECT DISTINCT category FROM videos ORDER BY category")
	return categories, err
}

// IsEventProcessed checks if an event has been processed
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed marks an event as processed
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	return err
}
