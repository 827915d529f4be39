// Package state persists learning progress and UI preferences in a local
// SQLite database.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS learned_words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			front TEXT NOT NULL,
			back TEXT NOT NULL,
			region_key TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			learned_ts TEXT NOT NULL DEFAULT (datetime('now')),
			UNIQUE(front, region_key)
		);`,
		`CREATE TABLE IF NOT EXISTS study_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			region_key TEXT NOT NULL,
			mode TEXT NOT NULL,
			start_ts TEXT NOT NULL,
			cards_seen INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ui_prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// AddLearned records a learned item. The insert is idempotent per
// (front, region): re-learning the same item reports false and awards
// no additional points.
func (s *SQLiteStore) AddLearned(ctx context.Context, item LearnedWord) (bool, error) {
	front := strings.TrimSpace(item.Front)
	if front == "" {
		return false, nil
	}
	ts := item.LearnedTS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO learned_words(front, back, region_key, points, learned_ts)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(front, region_key) DO NOTHING
	`, front, item.Back, item.RegionKey, max(0, item.Points), ts.UTC().Format(timeLayout))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) IsLearned(ctx context.Context, front, regionKey string) (bool, error) {
	var n int
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM learned_words WHERE front = ? AND region_key = ?`,
		strings.TrimSpace(front), regionKey)
	if err := row.Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) LearnedCountByRegion(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT region_key, COUNT(*) FROM learned_words GROUP BY region_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalXP sums the points awarded across every learned item.
func (s *SQLiteStore) TotalXP(ctx context.Context) (int, error) {
	var xp int
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(points), 0) FROM learned_words`)
	if err := row.Scan(&xp); err != nil {
		return 0, err
	}
	return xp, nil
}

func (s *SQLiteStore) StartStudyRun(ctx context.Context, run StudyRun) (int64, error) {
	ts := run.StartTS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO study_runs(session_id, region_key, mode, start_ts) VALUES(?,?,?,?)`,
		run.SessionID,
		run.RegionKey,
		strings.TrimSpace(run.Mode),
		ts.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) IncrementCardsSeen(ctx context.Context, runID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE study_runs SET cards_seen = cards_seen + 1 WHERE id = ?`, runID)
	return err
}

func (s *SQLiteStore) GetSummary(ctx context.Context) (Summary, error) {
	var out Summary
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) as study_runs,
			COALESCE(SUM(cards_seen),0) as cards_seen
		FROM study_runs
	`)
	if err := row.Scan(&out.StudyRuns, &out.CardsSeen); err != nil {
		return Summary{}, err
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(points),0) FROM learned_words`)
	if err := row.Scan(&out.LearnedWords, &out.TotalXP); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for key, value := range values {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO app_settings(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, value); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ClearSettings(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM app_settings`)
	return err
}

// SetPref stores a single UI preference such as the active tab.
func (s *SQLiteStore) SetPref(ctx context.Context, key, value string) error {
	k := strings.TrimSpace(key)
	if k == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ui_prefs(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, k, value)
	return err
}

// GetPref returns the stored preference or "" when unset.
func (s *SQLiteStore) GetPref(ctx context.Context, key string) (string, error) {
	var value string
	row := s.db.QueryRowContext(ctx, `SELECT value FROM ui_prefs WHERE key = ?`, strings.TrimSpace(key))
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
