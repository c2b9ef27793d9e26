package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/recruitiq/am"
	"github.com/teranos/recruitiq/analysis"
	"github.com/teranos/recruitiq/db"
	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/report"
	"github.com/teranos/recruitiq/scrape"
	"github.com/teranos/recruitiq/storage"
)

// isolateConfig keeps user and project config files out of the test
func isolateConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(home))
	am.Reset()
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		am.Reset()
	})
}

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "recruitiq", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().CountP("verbose", "v", "")
	root.PersistentFlags().Bool("json", false, "")
	root.PersistentFlags().String("db", "", "")
	root.AddCommand(InitCmd, ImportCmd, SearchCmd, AnalyzeCmd, StatusCmd, PruneCmd, ReportCmd)
	return root
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newTestRoot()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func testConfig() *am.Config {
	return &am.Config{Scrape: am.ScrapeConfig{
		Query:        "golang",
		Location:     "Remote",
		DefaultLimit: 25,
		Companies:    []string{"acme"},
	}}
}

func TestScrapeQueryFromFlags(t *testing.T) {
	t.Cleanup(func() { scrapeQuery, scrapeLocation, scrapeLimit = "", "", 0 })

	q := scrapeQueryFromFlags(testConfig())
	assert.Equal(t, scrape.Query{Keywords: "golang", Location: "Remote", Limit: 25}, q)

	scrapeQuery, scrapeLimit = "rust", 5
	q = scrapeQueryFromFlags(testConfig())
	assert.Equal(t, scrape.Query{Keywords: "rust", Location: "Remote", Limit: 5}, q)
}

func TestBuildJobs(t *testing.T) {
	fetcher := scrape.NewFetcher(scrape.FetcherOptions{}, nil)
	q := scrape.Query{Keywords: "go", Limit: 10}
	all := []sourceKind{sourceIndeed, sourceLinkedIn, sourceRemoteOK, sourceCompanies}

	jobs, err := buildJobs(testConfig(), fetcher, q, []string{"Acme", " globex "}, all)
	require.NoError(t, err)

	var names []string
	for _, j := range jobs {
		names = append(names, j.Source())
		assert.Equal(t, 10, j.Query.Limit)
	}
	assert.Equal(t, []string{"Indeed", "LinkedIn", "RemoteOK", "Greenhouse:acme", "Greenhouse:globex"}, names)

	t.Run("falls back to configured companies", func(t *testing.T) {
		jobs, err := buildJobs(testConfig(), fetcher, q, nil, []sourceKind{sourceCompanies})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Greenhouse:acme", jobs[0].Source())
	})

	t.Run("no companies anywhere", func(t *testing.T) {
		_, err := buildJobs(&am.Config{}, fetcher, q, nil, []sourceKind{sourceCompanies})
		require.Error(t, err)
		assert.True(t, errors.IsInvalidRequestError(err))
	})
}

func TestSearchFlagsFilter(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{Use: "search"}
		cmd.Flags().Float64("min-salary", 0, "")
		cmd.Flags().Float64("max-salary", 0, "")
		require.NoError(t, cmd.Flags().Parse(args))
		return cmd
	}

	f, err := searchFlags{title: "engineer"}.filter(newCmd(), 50)
	require.NoError(t, err)
	assert.Equal(t, "engineer", f.Title)
	assert.Equal(t, 50, f.Limit)
	assert.Nil(t, f.MinSalary, "unset salary flags do not filter")
	assert.Nil(t, f.MaxSalary)

	f, err = searchFlags{minSalary: 0, limit: 5}.filter(newCmd("--min-salary", "0"), 50)
	require.NoError(t, err)
	require.NotNil(t, f.MinSalary, "an explicit zero is a filter")
	assert.Equal(t, 0.0, *f.MinSalary)
	assert.Equal(t, 5, f.Limit)

	_, err = searchFlags{minSalary: 200000, maxSalary: 100000}.filter(newCmd("--min-salary", "200000", "--max-salary", "100000"), 50)
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = searchFlags{days: -1}.filter(newCmd(), 50)
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestMarketFlagsSegment(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{Use: "market"}
		cmd.Flags().Float64("min-salary", 0, "")
		cmd.Flags().Float64("max-salary", 0, "")
		require.NoError(t, cmd.Flags().Parse(args))
		return cmd
	}

	seg, err := marketFlags{titles: []string{"go", "rust"}, days: 7}.segment(newCmd())
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, seg.Titles)
	assert.Equal(t, 7, seg.Days)
	assert.Nil(t, seg.MinSalary)
	assert.Nil(t, seg.MaxSalary)

	seg, err = marketFlags{maxSalary: 0}.segment(newCmd("--max-salary", "0"))
	require.NoError(t, err)
	require.NotNil(t, seg.MaxSalary)

	_, err = marketFlags{minSalary: 5, maxSalary: 1}.segment(newCmd("--min-salary", "5", "--max-salary", "1"))
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = marketFlags{days: -3}.segment(newCmd())
	assert.True(t, errors.IsInvalidRequestError(err))
}

// resetFlags restores flags of a package-level command between executions
func resetFlags(t *testing.T, cmd *cobra.Command, names ...string) {
	t.Helper()
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		if sv, ok := f.Value.(interface{ Replace([]string) error }); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
}

func TestAnalyzeSalaryAndMarket(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "jobs.db")
	file := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"title": "Go Developer", "company_name": "Acme", "source_platform": "Indeed",
		 "url": "https://indeed.com/viewjob?jk=1", "salary_min": 90000, "location": "Berlin, Germany"},
		{"title": "Senior Go Developer", "company_name": "Acme", "source_platform": "Indeed",
		 "url": "https://indeed.com/viewjob?jk=2", "salary_min": 110000},
		{"title": "Data Scientist", "company_name": "Globex", "source_platform": "LinkedIn",
		 "url": "https://linkedin.com/jobs/view/3", "salary_min": 150000, "job_description": "Python and SQL"}
	]`), 0o644))
	t.Cleanup(func() {
		resetFlags(t, analyzeSalaryCmd, "title")
		resetFlags(t, analyzeMarketCmd, "title", "company", "min-salary")
	})

	require.NoError(t, execute(t, "--db", dbPath, "init"))
	require.NoError(t, execute(t, "--db", dbPath, "--json", "import", file))

	require.NoError(t, execute(t, "--db", dbPath, "--json", "analyze", "salary"))
	require.NoError(t, execute(t, "--db", dbPath, "analyze", "salary"))
	require.NoError(t, execute(t, "--db", dbPath, "--json", "analyze", "salary", "--title", "go developer"))

	resetFlags(t, analyzeSalaryCmd, "title")
	err := execute(t, "--db", dbPath, "analyze", "salary", "--title", "astronaut")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analysis.ErrNoData))

	require.NoError(t, execute(t, "--db", dbPath, "analyze", "market", "--title", "go,scientist", "--min-salary", "100000"))

	resetFlags(t, analyzeMarketCmd, "title", "min-salary")
	err = execute(t, "--db", dbPath, "analyze", "market", "--company", "umbrella")
	require.Error(t, err)
	assert.True(t, errors.Is(err, analysis.ErrNoData))

	resetFlags(t, analyzeMarketCmd, "company")
	err = execute(t, "--db", dbPath, "analyze", "market", "--days", "-1")
	assert.True(t, errors.IsInvalidRequestError(err))
	resetFlags(t, analyzeMarketCmd, "days")
}

func TestReportKinds(t *testing.T) {
	kinds, err := reportKinds("ALL")
	require.NoError(t, err)
	assert.Equal(t, report.Kinds, kinds)

	kinds, err = reportKinds("salary")
	require.NoError(t, err)
	assert.Equal(t, []report.Kind{report.Salary}, kinds)

	_, err = reportKinds("weekly")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestRenderConfig(t *testing.T) {
	cfg := testConfig()

	out, err := renderConfig(cfg, "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[scrape]")
	assert.Contains(t, out, "query = 'golang'")

	out, err = renderConfig(cfg, "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"query": "golang"`)

	out, err = renderConfig(cfg, "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "query: golang")

	_, err = renderConfig(cfg, "xml")
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestImportPruneWorkflow(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "jobs.db")
	file := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"title": "Go Developer", "company_name": "Acme", "source_platform": "Indeed",
		 "url": "https://indeed.com/viewjob?jk=1", "salary_min": 90000},
		{"title": "X", "company_name": "Acme", "source_platform": "Indeed",
		 "url": "https://indeed.com/viewjob?jk=2"}
	]`), 0o644))

	require.NoError(t, execute(t, "--db", dbPath, "init"))
	require.NoError(t, execute(t, "--db", dbPath, "--json", "import", file))

	database, err := db.OpenWithMigrations(dbPath, nil)
	require.NoError(t, err)
	defer database.Close()
	store := storage.NewStore(database, nil)
	ctx := context.Background()

	n, err := store.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "the one-character title is rejected")

	runs, err := store.RecentRuns(ctx, 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "import:jobs.json", runs[0].Source)
	assert.Equal(t, 1, runs[0].Invalid)

	t.Cleanup(func() { pruneRestore, pruneOlderThan = false, 30 })
	require.NoError(t, execute(t, "--db", dbPath, "--json", "prune", "--older-than", "1"))
	n, err = store.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "freshly imported postings are not stale")

	require.NoError(t, execute(t, "--db", dbPath, "--json", "status"))

	err = execute(t, "--db", dbPath, "import", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestReportCommand_NoData(t *testing.T) {
	isolateConfig(t)
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	t.Cleanup(func() { reportOpts = report.Options{PeriodDays: report.DefaultPeriodDays} })

	err := execute(t, "--db", dbPath, "report", "executive", "--output-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job data available")
}
