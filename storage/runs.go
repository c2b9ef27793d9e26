package storage

import (
	"context"
	"database/sql"
	"time"
)

// Run records one source's contribution to a scrape or import run
type Run struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	Source     string    `json:"source"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Fetched    int       `json:"fetched"`
	Saved      int       `json:"saved"`
	Invalid    int       `json:"invalid"`
	Failed     int       `json:"failed"`
	Error      string    `json:"error,omitempty"`
}

// RecordRun appends a run row
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	var runErr interface{}
	if r.Error != "" {
		runErr = r.Error
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO scrape_runs
		(run_id, source, started_at, finished_at, fetched, saved, invalid, failed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, formatTime(r.StartedAt), formatTime(r.FinishedAt),
		r.Fetched, r.Saved, r.Invalid, r.Failed, runErr)
	if err != nil {
		return persistenceErr(err, "failed to record run %s for %s", r.RunID, r.Source)
	}
	return nil
}

// RecentRuns returns the latest run rows, newest first
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = TopNLimit
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, run_id, source, started_at, finished_at,
		fetched, saved, invalid, failed, error
		FROM scrape_runs ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, queryErr(err, "failed to load scrape runs")
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			r      Run
			runErr sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.RunID, &r.Source, &r.StartedAt, &r.FinishedAt,
			&r.Fetched, &r.Saved, &r.Invalid, &r.Failed, &runErr); err != nil {
			return nil, queryErr(err, "failed to scan scrape run")
		}
		r.Error = runErr.String
		r.StartedAt = r.StartedAt.UTC()
		r.FinishedAt = r.FinishedAt.UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, queryErr(err, "failed to iterate scrape runs")
	}
	return runs, nil
}
