// Package storage persists hand records in Postgres. Records are kept
// as JSONB blobs alongside a few indexed columns for listing, so the
// schema never needs to chase the snapshot format.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/handtracker/internal/engine"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS hands (
	id           UUID PRIMARY KEY,
	played_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	title        TEXT NOT NULL DEFAULT '',
	players      INT NOT NULL,
	variant      TEXT NOT NULL,
	special_rule TEXT NOT NULL,
	big_blind    INT NOT NULL,
	record       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hands_played_at ON hands(played_at DESC);
CREATE INDEX IF NOT EXISTS idx_hands_variant ON hands(variant);
`

// Store persists and retrieves saved hands.
type Store struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewStore connects to Postgres and ensures the hands table exists.
// An empty databaseURL returns (nil, nil): the app runs without
// persistence and every Store method becomes a no-op.
func NewStore(ctx context.Context, databaseURL string, logger *log.Logger) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	logger = logger.WithPrefix("storage")
	logger.Info("connected to Postgres")
	return &Store{pool: pool, logger: logger}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// SavedHand is a stored hand record with its storage metadata.
type SavedHand struct {
	ID       string            `json:"id"`
	PlayedAt time.Time         `json:"playedAt"`
	Title    string            `json:"title"`
	Record   engine.HandRecord `json:"record"`
}

// HandSummary is a listing row without the record blob.
type HandSummary struct {
	ID          string    `json:"id"`
	PlayedAt    time.Time `json:"playedAt"`
	Title       string    `json:"title"`
	Players     int       `json:"players"`
	Variant     string    `json:"variant"`
	SpecialRule string    `json:"specialRule"`
	BigBlind    int       `json:"bigBlind"`
	Snapshots   int       `json:"snapshots"`
}

// SaveHand stores a hand record and returns its generated id.
func (s *Store) SaveHand(ctx context.Context, title string, rec engine.HandRecord) (string, error) {
	if s == nil || s.pool == nil {
		return "", nil
	}
	blob, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO hands (id, title, players, variant, special_rule, big_blind, record)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, title, rec.Players, rec.Variant.String(), rec.SpecialRule.String(), rec.BigBlind, blob)
	if err != nil {
		return "", err
	}
	s.logger.Debug("hand saved", "id", id, "snapshots", len(rec.History))
	return id, nil
}

// GetHand loads one saved hand by id, or (nil, nil) when it does not exist.
func (s *Store) GetHand(ctx context.Context, id string) (*SavedHand, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}
	var (
		hand SavedHand
		blob []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, played_at, title, record FROM hands WHERE id = $1`, id).
		Scan(&hand.ID, &hand.PlayedAt, &hand.Title, &blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(blob, &hand.Record); err != nil {
		return nil, err
	}
	return &hand, nil
}

// ListHands returns stored hand summaries, most recent first.
func (s *Store) ListHands(ctx context.Context, limit, offset int) ([]HandSummary, error) {
	if s == nil || s.pool == nil {
		return []HandSummary{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, played_at, title, players, variant, special_rule, big_blind,
			jsonb_array_length(record->'history')
		FROM hands
		ORDER BY played_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HandSummary
	for rows.Next() {
		var h HandSummary
		if err := rows.Scan(&h.ID, &h.PlayedAt, &h.Title, &h.Players, &h.Variant, &h.SpecialRule, &h.BigBlind, &h.Snapshots); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeleteHand removes a saved hand. Deleting a missing hand is not an error.
func (s *Store) DeleteHand(ctx context.Context, id string) error {
	if s == nil || s.pool == nil {
		return nil
	}
	_, err := s.pool.Exec(ctx, `DELETE FROM hands WHERE id = $1`, id)
	return err
}
