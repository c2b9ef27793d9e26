package analysis

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/internal/util"
	"github.com/teranos/recruitiq/storage"
)

// SalaryStats summarizes salary_min values. All figures are rounded to cents.
type SalaryStats struct {
	Count      int     `json:"count"`       // positive salary_min values
	WithSalary int     `json:"with_salary"` // postings with any salary_min
	Ranged     int     `json:"ranged"`      // postings with a distinct salary_max
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`

	Distribution []storage.LabelCount `json:"salary_distribution"` // one entry per SalaryBuckets bucket
}

// SalaryBucket is a half-open salary range [From, To); To == 0 means no upper bound
type SalaryBucket struct {
	Label    string
	From, To float64
}

// SalaryBuckets are the distribution ranges, lowest first
var SalaryBuckets = []SalaryBucket{
	{"<50k", 0, 50000},
	{"50k-75k", 50000, 75000},
	{"75k-100k", 75000, 100000},
	{"100k-150k", 100000, 150000},
	{"150k-200k", 150000, 200000},
	{"200k+", 200000, 0},
}

// Distribution counts values per SalaryBuckets entry. Empty buckets are kept.
func Distribution(values []float64) []storage.LabelCount {
	out := make([]storage.LabelCount, len(SalaryBuckets))
	for i, b := range SalaryBuckets {
		out[i].Label = b.Label
	}
	for _, v := range values {
		i := 0
		for i < len(SalaryBuckets)-1 && v >= SalaryBuckets[i].To {
			i++
		}
		out[i].Count++
	}
	return out
}

// ComputeSalaryStats computes mean, median, min and max of values.
// The median is sorted[n/2]: for even n that is the upper middle element,
// not the average of the two middle elements.
// Returns ErrNoData for an empty sample.
func ComputeSalaryStats(values []float64) (SalaryStats, error) {
	if len(values) == 0 {
		return SalaryStats{}, ErrNoData
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return SalaryStats{
		Count:        len(sorted),
		Mean:         util.Round2(sum / float64(len(sorted))),
		Median:       util.Round2(sorted[len(sorted)/2]),
		Min:          util.Round2(sorted[0]),
		Max:          util.Round2(sorted[len(sorted)-1]),
		Distribution: Distribution(sorted),
	}, nil
}

// BenchmarkPercentiles are the percentiles reported by a salary benchmark
var BenchmarkPercentiles = []int{10, 25, 50, 75, 90}

// Benchmark limits
const (
	BenchmarkMinCompanySamples = 2
	BenchmarkTopCompanies      = 10
)

// Percentile is one point of a salary benchmark
type Percentile struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Benchmark compares salaries for postings whose title contains Title
type Benchmark struct {
	Title           string                `json:"job_title"`
	Stats           SalaryStats           `json:"stats"`
	Percentiles     []Percentile          `json:"percentiles"`
	CompanyAverages []storage.GroupSalary `json:"company_averages"`
}

// Percentiles returns sorted[n*p/100] for each p, matching the median rule.
// sorted must be ascending and non-empty.
func Percentiles(sorted []float64, ps []int) []Percentile {
	out := make([]Percentile, len(ps))
	for i, p := range ps {
		idx := len(sorted) * p / 100
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		out[i] = Percentile{Label: "P" + strconv.Itoa(p), Value: util.Round2(sorted[idx])}
	}
	return out
}

// Benchmark computes salary statistics, percentiles and the best paying
// companies for one job title
func (a *Analyzer) Benchmark(ctx context.Context, title string) (*Benchmark, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.WithHint(errors.NewInvalidRequestError("benchmark needs a job title"),
			"pass --title, e.g. --title \"software engineer\"")
	}

	sample, err := a.reader.SalarySampleIn(ctx, storage.Filter{Title: title})
	if err != nil {
		return nil, err
	}
	stats, err := ComputeSalaryStats(sample.Values)
	if err != nil {
		return nil, errors.WithDetailf(err, "no salary data for titles containing %q", title)
	}
	stats.WithSalary = sample.WithSalary
	stats.Ranged = sample.Ranged

	sorted := append([]float64(nil), sample.Values...)
	sort.Float64s(sorted)

	companies, err := a.reader.SalaryBy(ctx, storage.GroupCompany, []string{title}, BenchmarkMinCompanySamples)
	if err != nil {
		return nil, err
	}
	if len(companies) > BenchmarkTopCompanies {
		companies = companies[:BenchmarkTopCompanies]
	}

	return &Benchmark{
		Title:           title,
		Stats:           stats,
		Percentiles:     Percentiles(sorted, BenchmarkPercentiles),
		CompanyAverages: companies,
	}, nil
}
