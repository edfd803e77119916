// Package highscore persists finished games in a local SQLite database and
// serves the leaderboard.
package highscore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"game2048/game/service"
)

const tableName = "high_scores"

// Store implements service.HighScoreRecorder on top of SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at dbPath and ensures the
// high_scores table exists.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create high scores table: %w", err)
	}

	return store, nil
}

// createTable creates the high_scores table if it does not exist.
func (s *Store) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		max_tile INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	return nil
}

// Record inserts one finished game.
func (s *Store) Record(entry service.ScoreEntry) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (session_id, score, max_tile, moves)
	VALUES (?, ?, ?, ?);`

	_, err := s.db.Exec(insertSQL, entry.SessionID, entry.Score, entry.MaxTile, entry.Moves)
	if err != nil {
		return fmt.Errorf("failed to insert high score for session %s: %w", entry.SessionID, err)
	}

	return nil
}

// Top retrieves a paginated list of scores, ordered by score and max tile.
func (s *Store) Top(limit, offset int) ([]service.ScoreEntry, error) {
	const selectSQL = `
	SELECT id, session_id, score, max_tile, moves, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, max_tile DESC
	LIMIT ? OFFSET ?;`

	rows, err := s.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var entries []service.ScoreEntry

	for rows.Next() {
		var entry service.ScoreEntry
		var createdAt string // DATETIME comes back as a string
		err := rows.Scan(&entry.ID, &entry.SessionID, &entry.Score, &entry.MaxTile, &entry.Moves, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		parsed, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			parsed, err = time.Parse("2006-01-02 15:04:05", createdAt)
		}
		if err == nil {
			entry.CreatedAt = parsed
		} else {
			log.Warn().Int("id", entry.ID).Str("raw", createdAt).Msg("failed to parse score timestamp")
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return entries, nil
}

// Count returns the total number of recorded games.
func (s *Store) Count() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	if err := s.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
