package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"go-review-analytics/internal/model"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the history of summary exports in SQLite.
// The review dataset itself is never written here.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite file at dbPath and creates tables if needed.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS export_runs (
		id TEXT PRIMARY KEY,
		format TEXT,
		path TEXT,
		record_count INTEGER,
		success INTEGER,
		exported_at DATETIME
	);
	`
	summaryTable := `
	CREATE TABLE IF NOT EXISTS park_summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		park TEXT,
		review_count INTEGER,
		average_rating REAL,
		min_rating INTEGER,
		max_rating INTEGER,
		distribution TEXT,
		out_of_range INTEGER,
		location_count INTEGER,
		top_location TEXT
	);
	`

	for _, stmt := range []string{runTable, summaryTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating tables: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordExport stores an export run together with the summary it wrote.
func (s *Store) RecordExport(result model.ExportResult, summary model.Summary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO export_runs (id, format, path, record_count, success, exported_at) VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID, result.Format, result.Path, result.RecordCount, result.Success, result.ExportedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving export run: %w", err)
	}

	for _, p := range summary.Parks {
		dist, err := json.Marshal(p.Distribution)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`INSERT INTO park_summaries (run_id, park, review_count, average_rating, min_rating, max_rating, distribution, out_of_range, location_count, top_location)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.RunID, p.Park, p.ReviewCount, p.AverageRating, p.MinRating, p.MaxRating, string(dist), p.OutOfRange, p.LocationCount, p.TopLocation)
		if err != nil {
			return fmt.Errorf("saving summary for %s: %w", p.Park, err)
		}
	}

	return tx.Commit()
}

// ListExports returns all export runs, newest first.
func (s *Store) ListExports() ([]model.ExportResult, error) {
	rows, err := s.db.Query(`SELECT id, format, path, record_count, success, exported_at FROM export_runs ORDER BY exported_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []model.ExportResult{}
	for rows.Next() {
		var r model.ExportResult
		var exportedAt time.Time
		if err := rows.Scan(&r.RunID, &r.Format, &r.Path, &r.RecordCount, &r.Success, &exportedAt); err != nil {
			return nil, err
		}
		r.ExportedAt = exportedAt
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetSummary fetches the park summaries written by one export run.
func (s *Store) GetSummary(runID string) ([]model.ParkSummary, error) {
	rows, err := s.db.Query(`SELECT park, review_count, average_rating, min_rating, max_rating, distribution, out_of_range, location_count, top_location
		FROM park_summaries WHERE run_id = ? ORDER BY park`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parks := []model.ParkSummary{}
	for rows.Next() {
		var p model.ParkSummary
		var dist string
		if err := rows.Scan(&p.Park, &p.ReviewCount, &p.AverageRating, &p.MinRating, &p.MaxRating, &dist, &p.OutOfRange, &p.LocationCount, &p.TopLocation); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(dist), &p.Distribution); err != nil {
			return nil, fmt.Errorf("decoding distribution for %s: %w", p.Park, err)
		}
		parks = append(parks, p)
	}
	return parks, rows.Err()
}
