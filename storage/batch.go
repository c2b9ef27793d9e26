package storage

import (
	"context"

	"go.uber.org/zap"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
)

// Upserter persists one validated posting
type Upserter interface {
	Upsert(ctx context.Context, p *posting.Posting) (*posting.Posting, error)
}

// BatchResult counts the outcome of a best-effort batch
type BatchResult struct {
	Total   int     `json:"total"`
	Saved   int     `json:"saved"`
	Invalid int     `json:"invalid"`
	Failed  int     `json:"failed"`
	IDs     []int64 `json:"ids,omitempty"` // ids of saved postings, in input order
}

// Add folds another result into r
func (r *BatchResult) Add(other BatchResult) {
	r.Total += other.Total
	r.Saved += other.Saved
	r.Invalid += other.Invalid
	r.Failed += other.Failed
	r.IDs = append(r.IDs, other.IDs...)
}

// SaveBatch validates and upserts each candidate independently.
// Invalid candidates and failed upserts are logged and counted; neither stops
// the batch. Only context cancellation ends it early, leaving earlier
// records committed.
func SaveBatch(ctx context.Context, u Upserter, candidates []posting.Candidate, logger *zap.SugaredLogger) BatchResult {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	result := BatchResult{Total: len(candidates)}

	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			logger.Warnw("Batch interrupted", "processed", i, "total", len(candidates), "error", err)
			break
		}

		p, err := posting.NewPosting(c)
		if err != nil {
			result.Invalid++
			var verr *posting.ValidationError
			if errors.As(err, &verr) {
				logger.Warnw("Skipping invalid job posting",
					"url", c.URL, "field", verr.Field, "reason", verr.Reason)
			} else {
				logger.Warnw("Skipping invalid job posting", "url", c.URL, "error", err)
			}
			continue
		}

		saved, err := u.Upsert(ctx, p)
		if err != nil {
			result.Failed++
			logger.Errorw("Failed to save job posting",
				"url", p.URL, "source_platform", p.SourcePlatform, "error", err)
			continue
		}
		result.Saved++
		result.IDs = append(result.IDs, saved.ID)
	}

	logger.Infow("Batch saved",
		"saved", result.Saved, "invalid", result.Invalid, "failed", result.Failed, "count", result.Total)
	return result
}

// SaveBatch runs the best-effort batch against this store
func (s *Store) SaveBatch(ctx context.Context, candidates []posting.Candidate) BatchResult {
	return SaveBatch(ctx, s, candidates, s.logger)
}
