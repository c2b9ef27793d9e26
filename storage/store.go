// Package storage persists job postings in SQLite.
// It owns the upsert pipeline keyed by (url, source_platform) and the
// filter and aggregate queries behind search, analysis and reports.
package storage

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
)

var (
	// ErrPersistence marks failures while writing a posting
	ErrPersistence = errors.New("persistence error")
	// ErrQuery marks failures while reading or aggregating postings
	ErrQuery = errors.New("query error")
)

// timeLayout is fixed-width so stored timestamps compare correctly as text
const timeLayout = "2006-01-02 15:04:05.000000"

const postingColumns = `id, title, company_name, location, posted_date, salary_min, salary_max,
	salary_currency, employment_type, job_description, source_platform, url,
	last_scraped, created_at, updated_at, is_active`

// Store is the storage handle for job postings.
// Each write is its own transaction; nothing is cached between calls.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewStore creates a store over an open, migrated database
func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for timestamps and relative filters
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}

func persistenceErr(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrPersistence)
}

func queryErr(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrQuery)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPosting(row rowScanner) (*posting.Posting, error) {
	var (
		p              posting.Posting
		location       sql.NullString
		postedDate     sql.NullTime
		salaryMin      sql.NullFloat64
		salaryMax      sql.NullFloat64
		employmentType sql.NullString
		description    sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.CompanyName, &location, &postedDate, &salaryMin, &salaryMax,
		&p.SalaryCurrency, &employmentType, &description, &p.SourcePlatform, &p.URL,
		&p.LastScraped, &p.CreatedAt, &p.UpdatedAt, &p.IsActive,
	)
	if err != nil {
		return nil, err
	}
	if location.Valid {
		p.Location = &location.String
	}
	if postedDate.Valid {
		t := postedDate.Time.UTC()
		p.PostedDate = &t
	}
	if salaryMin.Valid {
		p.SalaryMin = &salaryMin.Float64
	}
	if salaryMax.Valid {
		p.SalaryMax = &salaryMax.Float64
	}
	if employmentType.Valid {
		p.EmploymentType = &employmentType.String
	}
	if description.Valid {
		p.JobDescription = &description.String
	}
	p.LastScraped = p.LastScraped.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// Get returns the posting with the given id, active or not
func (s *Store) Get(ctx context.Context, id int64) (*posting.Posting, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM job_postings WHERE id = ?`, id)
	p, err := scanPosting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("job posting %d not found", id)
	}
	if err != nil {
		return nil, queryErr(err, "failed to load job posting %d", id)
	}
	return p, nil
}

// SetActive flips the soft-delete flag of one posting
func (s *Store) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE job_postings SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, formatTime(s.clock()), id)
	if err != nil {
		return persistenceErr(err, "failed to set is_active on job posting %d", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceErr(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.NewNotFoundError("job posting %d not found", id)
	}
	return nil
}

// DeactivateStale marks active postings not scraped since olderThan as inactive
func (s *Store) DeactivateStale(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE job_postings SET is_active = 0, updated_at = ? WHERE is_active = 1 AND last_scraped < ?`,
		formatTime(s.clock()), formatTime(olderThan))
	if err != nil {
		return 0, persistenceErr(err, "failed to deactivate stale job postings")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, persistenceErr(err, "failed to read affected rows")
	}
	s.logger.Infow("Deactivated stale job postings", "count", n, "older_than", formatTime(olderThan))
	return n, nil
}

// ReactivateAll restores every soft-deleted posting
func (s *Store) ReactivateAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE job_postings SET is_active = 1, updated_at = ? WHERE is_active = 0`,
		formatTime(s.clock()))
	if err != nil {
		return 0, persistenceErr(err, "failed to reactivate job postings")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, persistenceErr(err, "failed to read affected rows")
	}
	return n, nil
}

// CountActive returns the number of active postings
func (s *Store) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job_postings WHERE is_active = 1`).Scan(&n); err != nil {
		return 0, queryErr(err, "failed to count job postings")
	}
	return n, nil
}

// CountSince returns the number of active postings posted at or after cutoff
func (s *Store) CountSince(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM job_postings WHERE is_active = 1 AND posted_date >= ?`,
		formatTime(cutoff)).Scan(&n)
	if err != nil {
		return 0, queryErr(err, "failed to count recent job postings")
	}
	return n, nil
}
