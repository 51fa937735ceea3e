// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/seabattle/internal/games/seabattle"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished match.
type MatchRecord struct {
	MatchID    string
	Outcome    string // "human" or "bot"
	Frontend   string // "text", "acme", "tui", "ssh"
	Seed       int64
	HumanShots int
	HumanHits  int
	BotShots   int
	BotHits    int
	Duration   int // Duration in seconds
	CreatedAt  time.Time
}

// Totals aggregates the whole history.
type Totals struct {
	Played    int
	HumanWins int
	BotWins   int
	// AvgShotsToWin is the mean number of human shots in matches the human won.
	AvgShotsToWin float64
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			outcome TEXT NOT NULL,
			frontend TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			human_shots INTEGER NOT NULL DEFAULT 0,
			human_hits INTEGER NOT NULL DEFAULT 0,
			bot_shots INTEGER NOT NULL DEFAULT 0,
			bot_hits INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_outcome ON matches(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match. An empty MatchID gets a fresh UUID.
// Returns the match ID.
func (s *Store) SaveMatch(rec MatchRecord) (string, error) {
	if rec.MatchID == "" {
		rec.MatchID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, outcome, frontend, seed, human_shots, human_hits, bot_shots, bot_hits, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Outcome,
		rec.Frontend,
		rec.Seed,
		rec.HumanShots,
		rec.HumanHits,
		rec.BotShots,
		rec.BotHits,
		rec.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return rec.MatchID, nil
}

// SaveSummary records a finished match from its game summary.
func (s *Store) SaveSummary(sum seabattle.Summary, frontend string, seed int64, elapsed time.Duration) (string, error) {
	if sum.Outcome == seabattle.OutcomeNone {
		return "", errors.New("storage: match is not finished")
	}
	return s.SaveMatch(MatchRecord{
		Outcome:    sum.Outcome.String(),
		Frontend:   frontend,
		Seed:       seed,
		HumanShots: sum.HumanShots,
		HumanHits:  sum.HumanHits,
		BotShots:   sum.BotShots,
		BotHits:    sum.BotHits,
		Duration:   int(elapsed.Seconds()),
	})
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT match_id, outcome, frontend, seed, human_shots, human_hits,
		        bot_shots, bot_hits, duration_secs, created_at
		 FROM matches
		 ORDER BY created_at DESC, seq DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var createdAt any
		if err := rows.Scan(
			&r.MatchID,
			&r.Outcome,
			&r.Frontend,
			&r.Seed,
			&r.HumanShots,
			&r.HumanHits,
			&r.BotShots,
			&r.BotHits,
			&r.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// MatchByID retrieves a match by its ID. Returns nil if there is none.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	var r MatchRecord
	var createdAt any

	err := s.db.QueryRow(
		`SELECT match_id, outcome, frontend, seed, human_shots, human_hits,
		        bot_shots, bot_hits, duration_secs, created_at
		 FROM matches
		 WHERE match_id = ?`,
		matchID,
	).Scan(
		&r.MatchID,
		&r.Outcome,
		&r.Frontend,
		&r.Seed,
		&r.HumanShots,
		&r.HumanHits,
		&r.BotShots,
		&r.BotHits,
		&r.Duration,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// Totals returns aggregate statistics over every recorded match.
func (s *Store) Totals() (Totals, error) {
	var t Totals
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'human' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = 'bot' THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(CASE WHEN outcome = 'human' THEN human_shots END), 0),
		        MAX(created_at)
		 FROM matches`,
	).Scan(&t.Played, &t.HumanWins, &t.BotWins, &t.AvgShotsToWin, &lastPlayed)
	if err != nil {
		return t, fmt.Errorf("storage: cannot get totals: %w", err)
	}

	t.LastPlayed = parseTime(lastPlayed)
	return t, nil
}

// ClearMatches deletes the whole history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
