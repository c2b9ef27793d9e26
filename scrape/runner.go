package scrape

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/posting"
	"github.com/teranos/recruitiq/storage"
)

// Sink persists scraped candidates and run bookkeeping; *storage.Store satisfies it
type Sink interface {
	storage.Upserter
	RecordRun(ctx context.Context, r storage.Run) error
}

// Job is one source to scrape with its query
type Job struct {
	Scraper Scraper
	Query   Query
}

// Source names the job in logs and run rows: the scraper name, plus the
// company board for career-site scrapers
func (j Job) Source() string {
	if j.Query.Company != "" {
		return j.Scraper.Name() + ":" + strings.ToLower(j.Query.Company)
	}
	return j.Scraper.Name()
}

// SourceResult is the outcome of one source within a run
type SourceResult struct {
	Source  string              `json:"source"`
	Fetched int                 `json:"fetched"`
	Result  storage.BatchResult `json:"result"`
	Err     error               `json:"-"`
	Error   string              `json:"error,omitempty"`
}

// Summary is the outcome of a whole run
type Summary struct {
	RunID    string              `json:"run_id"`
	Sources  []SourceResult      `json:"sources"`
	Totals   storage.BatchResult `json:"totals"`
	Failures int                 `json:"failures"`
	Duration time.Duration       `json:"duration"`
}

// Runner scrapes sources one after another and saves what each returns
type Runner struct {
	sink     Sink
	emitter  ProgressEmitter
	logger   *zap.SugaredLogger
	now      func() time.Time
	newRunID func() string
}

// NewRunner creates a runner. A nil emitter discards progress.
func NewRunner(sink Sink, emitter ProgressEmitter, log *zap.SugaredLogger) *Runner {
	if emitter == nil {
		emitter = nopEmitter{}
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{
		sink:     sink,
		emitter:  emitter,
		logger:   logger.AddScrapeSymbol(log),
		now:      time.Now,
		newRunID: func() string { return uuid.NewString() },
	}
}

// Run scrapes each job in order. A failing source is logged, recorded and
// skipped; whatever it returned before failing is still saved. Cancellation
// stops the run after the current source and is returned as the error.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Summary, error) {
	runID := r.newRunID()
	ctx = logger.WithRunID(ctx, runID)
	start := r.now()
	summary := &Summary{RunID: runID, Sources: make([]SourceResult, 0, len(jobs))}

	log := logger.WithContext(r.logger, ctx)
	log.Infow("Scrape run started", "sources", len(jobs))

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			log.Warnw("Scrape run interrupted", "error", err)
			break
		}
		res := r.runSource(ctx, runID, job)
		summary.Sources = append(summary.Sources, res)
		summary.Totals.Add(res.Result)
		if res.Err != nil {
			summary.Failures++
		}
	}

	summary.Duration = r.now().Sub(start)
	summary.Totals.IDs = nil
	log.Infow("Scrape run finished",
		logger.FieldSaved, summary.Totals.Saved,
		logger.FieldInvalid, summary.Totals.Invalid,
		logger.FieldFailed, summary.Totals.Failed,
		"source_failures", summary.Failures,
		logger.FieldDurationMS, summary.Duration.Milliseconds())

	r.emitter.EmitComplete(map[string]interface{}{
		"run_id":   runID,
		"saved":    summary.Totals.Saved,
		"invalid":  summary.Totals.Invalid,
		"failed":   summary.Totals.Failed,
		"sources":  len(summary.Sources),
		"failures": summary.Failures,
	})

	if err := ctx.Err(); err != nil {
		return summary, errors.Wrap(err, "scrape run cancelled")
	}
	return summary, nil
}

func (r *Runner) runSource(ctx context.Context, runID string, job Job) SourceResult {
	name := job.Source()
	ctx = logger.WithSource(ctx, name)
	log := logger.WithContext(r.logger, ctx)
	started := r.now()

	r.emitter.EmitStage(name, describeQuery(job.Query))
	log.Infow("Scraping source", logger.FieldQuery, job.Query.Keywords,
		logger.FieldLocation, job.Query.Location, logger.FieldLimit, job.Query.Limit)

	candidates, scrapeErr := job.Scraper.Scrape(ctx, job.Query)
	candidates = Cap(candidates, job.Query.Limit)
	res := SourceResult{Source: name, Fetched: len(candidates)}

	if scrapeErr != nil {
		res.Err = scrapeErr
		res.Error = scrapeErr.Error()
		log.Errorw("Scraper failed", logger.FieldError, scrapeErr, "partial", len(candidates))
		r.emitter.EmitError(name, scrapeErr)
	}

	if len(candidates) > 0 {
		res.Result = storage.SaveBatch(ctx, r.sink, candidates, log)
		r.emitter.EmitProgress(res.Result.Saved, map[string]interface{}{
			"source":  name,
			"fetched": res.Fetched,
			"invalid": res.Result.Invalid,
			"failed":  res.Result.Failed,
		})
	} else if scrapeErr == nil {
		r.emitter.EmitInfo(name + ": no postings found")
	}

	run := storage.Run{
		RunID:      runID,
		Source:     name,
		StartedAt:  started,
		FinishedAt: r.now(),
		Fetched:    res.Fetched,
		Saved:      res.Result.Saved,
		Invalid:    res.Result.Invalid,
		Failed:     res.Result.Failed,
		Error:      res.Error,
	}
	// The run row is written even after cancellation so the partial work is visible
	if err := r.sink.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		log.Warnw("Failed to record scrape run", logger.FieldError, err)
	}
	return res
}

func describeQuery(q Query) string {
	msg := "searching"
	if q.Keywords != "" {
		msg += " for '" + q.Keywords + "'"
	}
	if q.Company != "" {
		msg += " at " + q.Company
	}
	if q.Location != "" {
		msg += " in " + q.Location
	}
	return msg
}

// compile-time check
var _ Sink = (*storage.Store)(nil)

// Candidates helps scrapers accumulate up to a limit
type Candidates struct {
	limit int
	items []posting.Candidate
}

// NewCandidates creates an accumulator; limit ≤ 0 means unbounded
func NewCandidates(limit int) *Candidates {
	return &Candidates{limit: limit}
}

// Add appends c and reports whether more are wanted
func (c *Candidates) Add(p posting.Candidate) bool {
	if c.Full() {
		return false
	}
	c.items = append(c.items, p)
	return !c.Full()
}

// Full reports whether the limit is reached
func (c *Candidates) Full() bool {
	return c.limit > 0 && len(c.items) >= c.limit
}

// Items returns the accumulated candidates
func (c *Candidates) Items() []posting.Candidate {
	return c.items
}
