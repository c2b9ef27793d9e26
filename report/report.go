// Package report renders self-contained HTML reports (inline CSS and SVG
// charts) from the stored postings.
package report

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/recruitiq/analysis"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/storage"
	"github.com/teranos/recruitiq/sym"
)

// Kind names a report
type Kind string

const (
	Executive Kind = "executive"
	Salary    Kind = "salary"
	Skills    Kind = "skills"
	Companies Kind = "companies"
	Market    Kind = "market"
)

// Kinds lists every report in the order the CLI documents them
var Kinds = []Kind{Executive, Salary, Skills, Companies, Market}

// Valid reports whether k names a report
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

var fileStems = map[Kind]string{
	Executive: "executive_summary",
	Salary:    "salary_analysis",
	Skills:    "skills_demand",
	Companies: "company_insights",
	Market:    "market_intelligence",
}

// Defaults
const (
	DefaultOutputDir   = "reports"
	DefaultPeriodDays  = 30
	MinGroupSize       = 3 // smallest group shown in salary breakdowns
	TopLocationsLimit  = 15
	TopCompaniesLimit  = 25
	TopSkillsOverall   = 20
	marketHistoryDays  = 90
	generatedAtLayout  = "January 02, 2006 at 15:04"
	fileTimestampStamp = "20060102_150405"
)

// Options selects and narrows report content
type Options struct {
	OutputDir  string
	PeriodDays int      // executive summary window
	FocusRole  string   // market report title filter
	Titles     []string // salary report title filter
	Companies  []string // company report name filter
}

// Source is the store surface reports read from; *storage.Store satisfies it
type Source interface {
	analysis.Reader
	CountByFilter(ctx context.Context, field storage.GroupField, f storage.Filter, limit int) ([]storage.LabelCount, error)
	CompanyActivities(ctx context.Context, companies []string, limit int) ([]storage.CompanyActivity, error)
}

var _ Source = (*storage.Store)(nil)

//go:embed templates/*.html
var templateFS embed.FS

// Generator renders reports
type Generator struct {
	source    Source
	analyzer  *analysis.Analyzer
	templates *template.Template
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// NewGenerator parses the embedded templates
func NewGenerator(source Source, analyzer *analysis.Analyzer, logger *zap.SugaredLogger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	tmpl, err := template.New("report").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse report templates")
	}
	return &Generator{
		source:    source,
		analyzer:  analyzer,
		templates: tmpl,
		logger:    logger.With("symbol", sym.Report),
		now:       time.Now,
	}, nil
}

// WithClock overrides the time source for cutoffs, timestamps and file names
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// page is the data every template receives
type page struct {
	Title       string
	GeneratedAt string
	Data        interface{}
}

// Generate writes the report to OutputDir and returns its path
func (g *Generator) Generate(ctx context.Context, kind Kind, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := g.Render(ctx, &buf, kind, opts); err != nil {
		return "", err
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create report directory %s", dir)
	}
	path := filepath.Join(dir, fileStems[kind]+"_"+g.now().Format(fileTimestampStamp)+".html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write report %s", path)
	}
	g.logger.Infow("Report written", "kind", kind, "path", path, "bytes", buf.Len())
	return path, nil
}

// Render writes the report HTML to w
func (g *Generator) Render(ctx context.Context, w io.Writer, kind Kind, opts Options) error {
	if !kind.Valid() {
		return errors.WithHintf(errors.NewInvalidRequestError("unknown report %q", string(kind)),
			"available reports: executive, salary, skills, companies, market")
	}

	var (
		title string
		data  interface{}
		err   error
	)
	switch kind {
	case Executive:
		title = "RecruitIQ Executive Summary"
		data, err = g.executive(ctx, opts)
	case Salary:
		title = "Salary Analysis Report"
		data, err = g.salary(ctx, opts)
	case Skills:
		title = "Skills Demand & Technology Trends"
		data, err = g.skills(ctx)
	case Companies:
		title = "Company Hiring Insights"
		data, err = g.companies(ctx, opts)
	case Market:
		title = "Market Intelligence Report"
		if opts.FocusRole != "" {
			title += " - " + opts.FocusRole
		}
		data, err = g.market(ctx, opts)
	}
	if err != nil {
		return err
	}

	p := page{Title: title, GeneratedAt: g.now().Format(generatedAtLayout), Data: data}
	if err := g.templates.ExecuteTemplate(w, string(kind)+".html", p); err != nil {
		return errors.Wrapf(err, "failed to render %s report", kind)
	}
	return nil
}
