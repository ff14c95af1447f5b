package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore reads factory profiles from a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and bootstraps, if needed) the profile store at
// the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS factory_profiles (
  user_id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  location TEXT NOT NULL,
  industry TEXT NOT NULL,
  rating INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get looks up the profile for one user id. Returns ErrNotFound when no
// row exists; any other error is a store failure.
func (s *SQLiteStore) Get(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `
SELECT name, location, industry, rating
FROM factory_profiles
WHERE user_id = ?;
`, userID).Scan(&p.Name, &p.Location, &p.Industry, &p.Rating)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("profile lookup: %w", err)
	}
	return p, nil
}

// Put inserts or replaces the profile for a user id. Used by the seed
// subcommand and by tests; the dashboard itself never writes.
func (s *SQLiteStore) Put(ctx context.Context, userID string, p Profile) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO factory_profiles (user_id, name, location, industry, rating)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  name = excluded.name,
  location = excluded.location,
  industry = excluded.industry,
  rating = excluded.rating;
`, userID, p.Name, p.Location, p.Industry, p.Rating)
	return err
}
