// Package history records caption request metadata for auditing.
// Only metadata is stored; caption text never reaches the database.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one recorded caption request.
type Entry struct {
	ID          string    `json:"id"`
	VideoID     string    `json:"video_id"`
	Language    string    `json:"language"`
	Origin      string    `json:"origin"`
	CueCount    int       `json:"cue_count"`
	Formats     []string  `json:"formats"`
	Outcome     string    `json:"outcome"`
	RequestedAt time.Time `json:"requested_at"`
}

// Store persists request history in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new history store and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Init creates the history table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS caption_requests (
			id UUID PRIMARY KEY,
			video_id TEXT NOT NULL,
			language TEXT NOT NULL,
			origin TEXT NOT NULL,
			cue_count INT NOT NULL,
			formats TEXT[] NOT NULL,
			outcome TEXT NOT NULL,
			requested_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}

	return nil
}

// Record stores one request entry. The entry ID is assigned here.
func (s *Store) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.RequestedAt.IsZero() {
		entry.RequestedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO caption_requests (
			id, video_id, language, origin, cue_count, formats, outcome, requested_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.pool.Exec(ctx, query,
		entry.ID, entry.VideoID, entry.Language, entry.Origin,
		entry.CueCount, entry.Formats, entry.Outcome, entry.RequestedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record caption request: %w", err)
	}

	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, video_id, language, origin, cue_count, formats, outcome, requested_at
		FROM caption_requests
		ORDER BY requested_at DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query caption requests: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.ID, &entry.VideoID, &entry.Language, &entry.Origin,
			&entry.CueCount, &entry.Formats, &entry.Outcome, &entry.RequestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan caption request: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read caption requests: %w", err)
	}

	return entries, nil
}

// Health checks if the database is reachable.
func (s *Store) Health(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
