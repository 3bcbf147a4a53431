package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/redditmood/internal/types"
)

// Manager stores completed analyses in SQLite. Recording is best-effort:
// callers must never let a history failure affect the interaction state.
type Manager struct {
	db *sql.DB
}

// Entry is one saved analysis.
type Entry struct {
	ID               int64
	Timestamp        time.Time
	URL              string
	PostTitle        string
	OverallSentiment string
	Controversy      float64
	ResultJSON       string
}

// Result decodes the stored result back into its typed form.
func (e *Entry) Result() (*types.AnalysisResult, error) {
	return types.ParseCanonicalText(e.ResultJSON)
}

// NewManager opens (and if needed creates) the history database.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		url TEXT NOT NULL,
		post_title TEXT NOT NULL,
		overall_sentiment TEXT NOT NULL,
		controversy REAL NOT NULL,
		result_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_timestamp ON analyses(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_analyses_url ON analyses(url);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Save records one completed analysis.
func (m *Manager) Save(url string, result *types.AnalysisResult) error {
	resultJSON, err := result.CanonicalText()
	if err != nil {
		return err
	}

	_, err = m.db.Exec(`
		INSERT INTO analyses (timestamp, url, post_title, overall_sentiment, controversy, result_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), url, result.PostTitle, string(result.OverallSentiment),
		result.Controversy, resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// List returns the most recent analyses, newest first.
func (m *Manager) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, url, post_title, overall_sentiment, controversy, result_json
		FROM analyses
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.URL, &e.PostTitle,
			&e.OverallSentiment, &e.Controversy, &e.ResultJSON); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear deletes all saved analyses.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM analyses`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}
