package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"quizdojo/internal/bank"
	"quizdojo/internal/leaderboard"
	"quizdojo/internal/session"
)

const timeLayout = time.RFC3339

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

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
		`CREATE TABLE IF NOT EXISTS leaderboard_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			name TEXT NOT NULL,
			student_id TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			elapsed_sec INTEGER,
			cleared TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS quiz_attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id TEXT NOT NULL,
			ts TEXT NOT NULL DEFAULT (datetime('now')),
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			elapsed_sec INTEGER NOT NULL,
			by_timeout INTEGER NOT NULL DEFAULT 0,
			cleared TEXT NOT NULL DEFAULT ''
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// AppendRecord inserts one leaderboard row and fills rec.ID from the
// database.
func (s *SQLiteStore) AppendRecord(ctx context.Context, rec *leaderboard.Record) error {
	var elapsed any
	if rec.ElapsedSec != nil {
		elapsed = *rec.ElapsedSec
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard_records(ts, name, student_id, department, phone, difficulty, score, total, elapsed_sec, cleared)
		VALUES(?,?,?,?,?,?,?,?,?,?)
	`,
		rec.Timestamp,
		rec.Name,
		rec.StudentID,
		rec.Department,
		rec.Phone,
		string(rec.Difficulty),
		rec.Score,
		rec.Total,
		elapsed,
		string(rec.Cleared),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

// LoadRecords returns every stored row in insertion order. Ranking
// happens in memory on top of this.
func (s *SQLiteStore) LoadRecords(ctx context.Context) ([]*leaderboard.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, name, student_id, department, phone, difficulty, score, total, elapsed_sec, cleared
		FROM leaderboard_records
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*leaderboard.Record
	for rows.Next() {
		var (
			rec        leaderboard.Record
			difficulty string
			cleared    string
			elapsed    sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Name, &rec.StudentID, &rec.Department, &rec.Phone, &difficulty, &rec.Score, &rec.Total, &elapsed, &cleared); err != nil {
			return nil, err
		}
		rec.Difficulty = bank.Difficulty(difficulty)
		rec.Cleared = bank.Difficulty(cleared)
		if elapsed.Valid {
			v := int(elapsed.Int64)
			rec.ElapsedSec = &v
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ClearRecords(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM leaderboard_records`)
	return err
}

// RecordAttempt logs a finished run regardless of whether it reaches
// the leaderboard.
func (s *SQLiteStore) RecordAttempt(ctx context.Context, sum session.Summary) error {
	byTimeout := 0
	if sum.ByTimeout {
		byTimeout = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_attempts(attempt_id, ts, difficulty, score, total, elapsed_sec, by_timeout, cleared)
		VALUES(?,?,?,?,?,?,?,?)
	`,
		sum.AttemptID,
		time.Now().UTC().Format(timeLayout),
		string(sum.Difficulty),
		sum.Correct,
		sum.Total,
		sum.ElapsedSec,
		byTimeout,
		string(sum.Cleared),
	)
	return err
}

func (s *SQLiteStore) GetStats(ctx context.Context) (Stats, error) {
	var out Stats
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(by_timeout), 0),
			COALESCE(SUM(CASE WHEN cleared <> '' THEN 1 ELSE 0 END), 0)
		FROM quiz_attempts
	`)
	if err := row.Scan(&out.Attempts, &out.Timeouts, &out.Cleared); err != nil {
		return Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leaderboard_records`).Scan(&out.Records); err != nil {
		return Stats{}, err
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
