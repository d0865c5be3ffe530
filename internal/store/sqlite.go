// Package store persists search results locally so a session can be
// resumed without re-running the upstream APIs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/jfb-hart/lead-command/internal/model"
)

// HistoryLimit caps how many past searches History returns.
const HistoryLimit = 20

// Store reads and writes saved searches.
type Store interface {
	Migrate(ctx context.Context) error
	SaveSearch(ctx context.Context, city string, leads []model.Lead) (*model.SavedSearch, error)
	LastSearch(ctx context.Context) (*model.SavedSearch, error)
	History(ctx context.Context) ([]model.SavedSearch, error)
	ClearHistory(ctx context.Context) error
	Close() error
}

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS searches (
	id         TEXT PRIMARY KEY,
	city       TEXT NOT NULL,
	leads      TEXT NOT NULL,
	lead_count INTEGER NOT NULL,
	saved_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_searches_saved_at ON searches(saved_at);
CREATE INDEX IF NOT EXISTS idx_searches_city ON searches(city);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveSearch stores a search result set and prunes history beyond
// HistoryLimit entries.
func (s *SQLiteStore) SaveSearch(ctx context.Context, city string, leads []model.Lead) (*model.SavedSearch, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	leadsJSON, err := json.Marshal(leads)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal leads")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO searches (id, city, leads, lead_count, saved_at) VALUES (?, ?, ?, ?, ?)`,
		id, city, string(leadsJSON), len(leads), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert search")
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM searches WHERE id NOT IN (
			SELECT id FROM searches ORDER BY saved_at DESC, rowid DESC LIMIT ?
		)`, HistoryLimit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: prune history")
	}

	return &model.SavedSearch{
		ID:        id,
		City:      city,
		Leads:     leads,
		LeadCount: len(leads),
		SavedAt:   now,
	}, nil
}

// LastSearch returns the most recently saved search, or nil when none
// has been saved yet.
func (s *SQLiteStore) LastSearch(ctx context.Context) (*model.SavedSearch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, city, leads, lead_count, saved_at FROM searches
		 ORDER BY saved_at DESC, rowid DESC LIMIT 1`,
	)

	var (
		search    model.SavedSearch
		leadsJSON string
	)
	err := row.Scan(&search.ID, &search.City, &leadsJSON, &search.LeadCount, &search.SavedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: last search")
	}
	if err := json.Unmarshal([]byte(leadsJSON), &search.Leads); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal leads")
	}
	return &search, nil
}

// History returns saved searches newest first, without lead payloads.
func (s *SQLiteStore) History(ctx context.Context) ([]model.SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, city, lead_count, saved_at FROM searches
		 ORDER BY saved_at DESC, rowid DESC LIMIT ?`, HistoryLimit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query history")
	}
	defer rows.Close()

	var history []model.SavedSearch
	for rows.Next() {
		var entry model.SavedSearch
		if err := rows.Scan(&entry.ID, &entry.City, &entry.LeadCount, &entry.SavedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan history row")
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate history")
	}
	return history, nil
}

// ClearHistory deletes every saved search.
func (s *SQLiteStore) ClearHistory(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM searches`)
	return eris.Wrap(err, "sqlite: clear history")
}
