// Package importer loads job postings from JSON or YAML files and runs them
// through the same validate and upsert pipeline as the scrapers.
//
// A file holds either a list of records or an object with a "jobs" list.
// Records are untyped maps; see posting.DecodeCandidate for the accepted keys.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/logger"
	"github.com/teranos/recruitiq/posting"
	"github.com/teranos/recruitiq/storage"
)

// Format of an import file
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Sink receives decoded candidates; *storage.Store satisfies it
type Sink interface {
	storage.Upserter
	RecordRun(ctx context.Context, r storage.Run) error
}

// Result is the outcome of importing one file
type Result struct {
	RunID   string              `json:"run_id"`
	File    string              `json:"file"`
	Records int                 `json:"records"`
	Batch   storage.BatchResult `json:"batch"`
}

// Importer decodes files and saves their records
type Importer struct {
	sink   Sink
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates an importer
func New(sink Sink, log *zap.SugaredLogger) *Importer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Importer{sink: sink, logger: logger.AddImportSymbol(log), now: time.Now}
}

// DetectFormat picks the format from the file extension, JSON by default
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ImportFile reads path and saves its records. Records that fail to decode
// are counted as invalid alongside records that fail validation.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(errors.Wrapf(err, "failed to read %s", path),
			"check the path; import accepts .json, .yaml and .yml files")
	}
	records, err := ParseRecords(data, DetectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	runID := uuid.NewString()
	source := "import:" + filepath.Base(path)
	ctx = logger.WithSource(logger.WithRunID(ctx, runID), source)
	log := logger.WithContext(im.logger, ctx)
	started := im.now()
	log.Infow("Importing job postings", logger.FieldFile, path, logger.FieldCount, len(records))

	now := im.now().UTC()
	candidates := make([]posting.Candidate, 0, len(records))
	decodeFailed := 0
	for i, raw := range records {
		c, err := posting.DecodeCandidate(raw, now)
		if err != nil {
			decodeFailed++
			log.Warnw("Skipping undecodable record", "index", i, logger.FieldError, err)
			continue
		}
		candidates = append(candidates, c)
	}

	batch := storage.SaveBatch(ctx, im.sink, candidates, log)
	batch.Total += decodeFailed
	batch.Invalid += decodeFailed

	res := &Result{RunID: runID, File: path, Records: len(records), Batch: batch}
	run := storage.Run{
		RunID:      runID,
		Source:     source,
		StartedAt:  started,
		FinishedAt: im.now(),
		Fetched:    len(records),
		Saved:      batch.Saved,
		Invalid:    batch.Invalid,
		Failed:     batch.Failed,
	}
	if err := ctx.Err(); err != nil {
		run.Error = err.Error()
	}
	if err := im.sink.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		log.Warnw("Failed to record import run", logger.FieldError, err)
	}

	if err := ctx.Err(); err != nil {
		return res, errors.Wrap(err, "import cancelled")
	}
	return res, nil
}

// ParseRecords decodes a list of untyped records from data
func ParseRecords(data []byte, format Format) ([]map[string]interface{}, error) {
	var doc interface{}
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "invalid YAML")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "invalid JSON")
		}
	}

	if obj, ok := doc.(map[string]interface{}); ok {
		jobs, found := obj["jobs"]
		if !found {
			return nil, errors.WithHint(errors.New("object has no \"jobs\" list"),
				"a file holds either a list of records or {\"jobs\": [...]}")
		}
		doc = jobs
	}

	list, ok := doc.([]interface{})
	if !ok {
		return nil, errors.Newf("expected a list of records, got %T", doc)
	}
	records := make([]map[string]interface{}, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.Newf("record %d is %T, not an object", i, item)
		}
		records = append(records, rec)
	}
	return records, nil
}
