package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
)

// failingUpserter fails for one URL and delegates the rest
type failingUpserter struct {
	next    Upserter
	failURL string
}

func (f *failingUpserter) Upsert(ctx context.Context, p *posting.Posting) (*posting.Posting, error) {
	if p.URL == f.failURL {
		return nil, errors.Mark(errors.New("simulated write failure"), ErrPersistence)
	}
	return f.next.Upsert(ctx, p)
}

func batchCandidates() []posting.Candidate {
	mk := func(title, url string) posting.Candidate {
		return posting.Candidate{Title: title, CompanyName: "Acme", SourcePlatform: "Indeed", URL: url}
	}
	return []posting.Candidate{
		mk("Go Developer", "https://a.com/1"),
		mk("A", "https://a.com/2"), // title too short
		mk("Rust Developer", "https://a.com/3"),
		mk("Java Developer", "https://a.com/4"), // fails to persist
		mk("Python Developer", "https://a.com/5"),
	}
}

func TestSaveBatch_PartialFailure(t *testing.T) {
	store, conn, _ := newTestStore(t)
	core, logs := observer.New(zapcore.DebugLevel)

	result := SaveBatch(context.Background(),
		&failingUpserter{next: store, failURL: "https://a.com/4"},
		batchCandidates(), zap.New(core).Sugar())

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Saved)
	assert.Equal(t, 1, result.Invalid)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.IDs, 3)
	assert.Equal(t, 3, countRows(t, conn))

	invalid := logs.FilterMessage("Skipping invalid job posting").All()
	require.Len(t, invalid, 1)
	assert.Equal(t, zapcore.WarnLevel, invalid[0].Level)
	assert.Equal(t, "title", invalid[0].ContextMap()["field"])

	failed := logs.FilterMessage("Failed to save job posting").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Equal(t, "https://a.com/4", failed[0].ContextMap()["url"])
}

func TestSaveBatch_StopsOnCancellation(t *testing.T) {
	store, conn, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := SaveBatch(ctx, store, batchCandidates(), nil)
	assert.Equal(t, 5, result.Total)
	assert.Zero(t, result.Saved+result.Invalid+result.Failed)
	assert.Zero(t, countRows(t, conn))
}

func TestStoreSaveBatch_PersistenceErrorDoesNotAbort(t *testing.T) {
	store, mock := newMockStore(t)

	candidates := []posting.Candidate{
		{Title: "Go Developer", CompanyName: "Acme", SourcePlatform: "Indeed", URL: "https://a.com/1"},
		{Title: "Rust Developer", CompanyName: "Acme", SourcePlatform: "Indeed", URL: "https://a.com/2"},
	}
	second := mustPosting(t, candidates[1])

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM job_postings").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO job_postings").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT id, title, company_name").WillReturnRows(mockPostingRow(11, second))
	mock.ExpectCommit()

	result := store.SaveBatch(context.Background(), candidates)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []int64{11}, result.IDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchResultAdd(t *testing.T) {
	r := BatchResult{Total: 2, Saved: 1, Invalid: 1, IDs: []int64{1}}
	r.Add(BatchResult{Total: 3, Saved: 2, Failed: 1, IDs: []int64{4, 5}})
	assert.Equal(t, BatchResult{Total: 5, Saved: 3, Invalid: 1, Failed: 1, IDs: []int64{1, 4, 5}}, r)
}
