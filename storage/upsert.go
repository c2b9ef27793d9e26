package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/teranos/recruitiq/db"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
)

const (
	lookupIDQuery = `SELECT id FROM job_postings WHERE url = ? AND source_platform = ?`

	insertPostingQuery = `
		INSERT INTO job_postings (title, company_name, location, posted_date, salary_min, salary_max,
			salary_currency, employment_type, job_description, source_platform, url,
			last_scraped, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	// every scalar is overwritten; id, natural key and created_at are kept.
	// A re-observed listing is active again.
	updatePostingQuery = `
		UPDATE job_postings SET title = ?, company_name = ?, location = ?, posted_date = ?,
			salary_min = ?, salary_max = ?, salary_currency = ?, employment_type = ?,
			job_description = ?, last_scraped = ?, updated_at = ?, is_active = 1
		WHERE id = ?`
)

// Upsert stores p under its (url, source_platform) key and returns the
// persisted row. An existing row is overwritten field by field and keeps its id.
func (s *Store) Upsert(ctx context.Context, p *posting.Posting) (*posting.Posting, error) {
	if p == nil {
		return nil, errors.Mark(errors.New("posting is nil"), ErrPersistence)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistenceErr(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	now := s.clock()
	id, err := lookupID(ctx, tx, p)
	switch {
	case err == nil:
		err = updatePosting(ctx, tx, id, p, now)
	case errors.Is(err, sql.ErrNoRows):
		id, err = insertPosting(ctx, tx, p, now)
		if err != nil && db.IsUniqueViolation(err) {
			// another writer inserted the key after our lookup
			s.logger.Debugw("Insert raced on natural key, retrying as update",
				"url", p.URL, "source_platform", p.SourcePlatform)
			if id, err = lookupID(ctx, tx, p); err == nil {
				err = updatePosting(ctx, tx, id, p, now)
			}
		}
	}
	if err != nil {
		return nil, persistenceErr(err, "failed to upsert %s from %s", p.URL, p.SourcePlatform)
	}

	saved, err := scanPosting(tx.QueryRowContext(ctx,
		`SELECT `+postingColumns+` FROM job_postings WHERE id = ?`, id))
	if err != nil {
		return nil, persistenceErr(err, "failed to re-read job posting %d", id)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistenceErr(err, "failed to commit job posting %d", id)
	}
	return saved, nil
}

func lookupID(ctx context.Context, tx *sql.Tx, p *posting.Posting) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, lookupIDQuery, p.URL, p.SourcePlatform).Scan(&id)
	return id, err
}

func currency(p *posting.Posting) string {
	if p.SalaryCurrency == "" {
		return posting.DefaultCurrency
	}
	return p.SalaryCurrency
}

func insertPosting(ctx context.Context, tx *sql.Tx, p *posting.Posting, now time.Time) (int64, error) {
	ts := formatTime(now)
	res, err := tx.ExecContext(ctx, insertPostingQuery,
		p.Title, p.CompanyName, p.Location, nullableTime(p.PostedDate), p.SalaryMin, p.SalaryMax,
		currency(p), p.EmploymentType, p.JobDescription, p.SourcePlatform, p.URL,
		ts, ts, ts, true,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func updatePosting(ctx context.Context, tx *sql.Tx, id int64, p *posting.Posting, now time.Time) error {
	ts := formatTime(now)
	_, err := tx.ExecContext(ctx, updatePostingQuery,
		p.Title, p.CompanyName, p.Location, nullableTime(p.PostedDate), p.SalaryMin, p.SalaryMax,
		currency(p), p.EmploymentType, p.JobDescription, ts, ts,
		id,
	)
	return err
}
