package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/recruitiq/internal/util"
	"github.com/teranos/recruitiq/posting"
)

type seed struct {
	title, company, location, platform, url, description, employment string
	min, max                                                          *float64
	posted                                                            *time.Time
}

func seedPostings(t *testing.T, store *Store, seeds []seed) []*posting.Posting {
	t.Helper()
	saved := make([]*posting.Posting, 0, len(seeds))
	for _, s := range seeds {
		platform := s.platform
		if platform == "" {
			platform = "Indeed"
		}
		company := s.company
		if company == "" {
			company = "Acme"
		}
		p, err := store.Upsert(context.Background(), mustPosting(t, posting.Candidate{
			Title:          s.title,
			CompanyName:    company,
			Location:       s.location,
			PostedDate:     s.posted,
			SalaryMin:      s.min,
			SalaryMax:      s.max,
			EmploymentType: s.employment,
			JobDescription: s.description,
			SourcePlatform: platform,
			URL:            s.url,
		}))
		require.NoError(t, err)
		saved = append(saved, p)
	}
	return saved
}

func titles(ps []posting.Posting) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func daysAgo(n int) *time.Time {
	t := baseTime.AddDate(0, 0, -n)
	return &t
}

func TestSearch_FilterConjunction(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "Python Developer", location: "NYC", url: "https://a.com/1"},
		{title: "Java Developer", location: "NYC", url: "https://a.com/2"},
		{title: "Python Developer", location: "Boston", url: "https://a.com/3"},
	})

	results, err := store.Search(context.Background(), Filter{Title: "python", Location: "NYC"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://a.com/1", results[0].URL)
}

func TestSearch_SubstringFilters(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "Go Engineer", company: "Globex Corp", platform: "LinkedIn", employment: posting.Contract,
			description: "Kafka pipelines", url: "https://a.com/1"},
		{title: "Kafka Specialist", company: "Initech", platform: "RemoteOK", url: "https://a.com/2"},
		{title: "Frontend Engineer", company: "Globex", platform: "Indeed", employment: posting.FullTime,
			description: "React", url: "https://a.com/3"},
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"company", Filter{Company: "globex"}, []string{"Frontend Engineer", "Go Engineer"}},
		{"platform", Filter{Platform: "linked"}, []string{"Go Engineer"}},
		{"employment type", Filter{EmploymentType: "full"}, []string{"Frontend Engineer"}},
		{"keywords match description or title", Filter{Keywords: "KAFKA"}, []string{"Kafka Specialist", "Go Engineer"}},
		{"blank values ignored", Filter{Title: "  "}, []string{"Frontend Engineer", "Kafka Specialist", "Go Engineer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(results))
		})
	}
}

func TestSearch_EscapesWildcards(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "100% Remote Engineer", url: "https://a.com/1"},
		{title: "Remote Engineer", url: "https://a.com/2"},
		{title: "snake_case fan", url: "https://a.com/3"},
		{title: "snakecase fan", url: "https://a.com/4"},
	})
	ctx := context.Background()

	results, err := store.Search(ctx, Filter{Title: "%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Remote Engineer"}, titles(results))

	results, err = store.Search(ctx, Filter{Title: "_"})
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_case fan"}, titles(results))
}

func TestSearch_NonASCIICaseFolding(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "Backend Engineer", company: "Ünïcorp", location: "Zürich", url: "https://a.com/1"},
		{title: "Straße Planner", company: "Acme", url: "https://a.com/2"},
		{title: "Backend Engineer", company: "Unicorp", url: "https://a.com/3"},
	})
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"lower case finds upper case umlaut", Filter{Company: "ünïcorp"}, []string{"Backend Engineer"}},
		{"upper case finds lower case umlaut", Filter{Location: "ZÜRICH"}, []string{"Backend Engineer"}},
		{"ascii query keeps plain LIKE", Filter{Title: "STRASSE"}, nil},
		{"sharp s query folds both sides", Filter{Title: "straße"}, []string{"Straße Planner"}},
		{"null columns do not fail the query", Filter{Location: "zürich", Company: "ünï"}, []string{"Backend Engineer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Search(ctx, tt.filter)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, results)
				return
			}
			assert.Equal(t, tt.want, titles(results))
		})
	}

	companies, err := store.CountByIn(ctx, GroupCompany, Segment{Companies: []string{"ÜNÏ"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{"Ünïcorp", 1}}, companies)
}

func TestSearch_SalaryBounds(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "Low", min: util.Ptr(60000.0), max: util.Ptr(80000.0), url: "https://a.com/1"},
		{title: "Range Reaches", min: util.Ptr(90000.0), max: util.Ptr(130000.0), url: "https://a.com/2"},
		{title: "Max Only", max: util.Ptr(150000.0), url: "https://a.com/3"},
		{title: "Unknown", url: "https://a.com/4"},
	})
	ctx := context.Background()

	results, err := store.Search(ctx, Filter{MinSalary: util.Ptr(120000.0)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Range Reaches", "Max Only"}, titles(results))

	results, err = store.Search(ctx, Filter{MaxSalary: util.Ptr(100000.0)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Low", "Range Reaches"}, titles(results), "rows without salary_min never match a max bound")

	results, err = store.Search(ctx, Filter{MinSalary: util.Ptr(70000.0), MaxSalary: util.Ptr(70000.0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Low"}, titles(results))
}

func TestSearch_RecencyAndOrdering(t *testing.T) {
	store, _, _ := newTestStore(t)
	seedPostings(t, store, []seed{
		{title: "Undated A", url: "https://a.com/1"},
		{title: "Two Days", posted: daysAgo(2), url: "https://a.com/2"},
		{title: "Ten Days", posted: daysAgo(10), url: "https://a.com/3"},
		{title: "Undated B", url: "https://a.com/4"},
		{title: "Two Days Later Insert", posted: daysAgo(2), url: "https://a.com/5"},
	})
	ctx := context.Background()

	results, err := store.Search(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Two Days Later Insert", "Two Days", "Ten Days", "Undated B", "Undated A"}, titles(results))

	results, err = store.Search(ctx, Filter{DaysAgo: 7})
	require.NoError(t, err)
	assert.Equal(t, []string{"Two Days Later Insert", "Two Days"}, titles(results))
}

func TestSearch_ExcludesInactiveAndLimits(t *testing.T) {
	store, _, _ := newTestStore(t)
	saved := seedPostings(t, store, []seed{
		{title: "One", url: "https://a.com/1"},
		{title: "Two", url: "https://a.com/2"},
		{title: "Three", url: "https://a.com/3"},
	})
	ctx := context.Background()
	require.NoError(t, store.SetActive(ctx, saved[0].ID, false))

	results, err := store.Search(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Three", "Two"}, titles(results))

	results, err = store.Search(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Three"}, titles(results))
}

func TestSearch_EmptyResultIsNotError(t *testing.T) {
	store, _, _ := newTestStore(t)
	results, err := store.Search(context.Background(), Filter{Title: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFilterEffectiveLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, Filter{}.EffectiveLimit())
	assert.Equal(t, DefaultLimit, Filter{Limit: -3}.EffectiveLimit())
	assert.Equal(t, 25, Filter{Limit: 25}.EffectiveLimit())
	assert.Equal(t, MaxLimit, Filter{Limit: 5000}.EffectiveLimit())
}

func TestEscapeLikePattern(t *testing.T) {
	assert.Equal(t, `50\%`, escapeLikePattern("50%"))
	assert.Equal(t, `a\_b`, escapeLikePattern("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLikePattern(`c:\dir`))
}
