package posting

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Salary is the result of ParseSalary. A single figure sets Min and Max alike.
type Salary struct {
	Min      *float64
	Max      *float64
	Currency string
}

// CleanText collapses runs of whitespace and drops control characters
func CleanText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

var (
	salaryThousands = regexp.MustCompile(`\d\s*K\b`)
	salarySymbols   = regexp.MustCompile(`[$€£,]`)
	salaryUnits     = regexp.MustCompile(`\b(?:USD|EUR|GBP|PER|YEAR|ANNUALLY|HOUR|HOURLY|K)\b`)
	salaryRange     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*K?\s*(?:-|–|TO)\s*(\d+(?:\.\d+)?)`)
	salarySingle    = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// ParseSalary extracts a salary range from free text such as
// "$100,000 - $150,000", "€60K-80K" or "90000 GBP per year".
func ParseSalary(text string) Salary {
	s := Salary{Currency: DefaultCurrency}
	upper := strings.ToUpper(CleanText(text))
	if upper == "" {
		return s
	}

	switch {
	case strings.Contains(upper, "$"):
		s.Currency = "USD"
	case strings.Contains(upper, "€") || strings.Contains(upper, "EUR"):
		s.Currency = "EUR"
	case strings.Contains(upper, "£") || strings.Contains(upper, "GBP"):
		s.Currency = "GBP"
	}

	multiplier := 1.0
	if salaryThousands.MatchString(upper) {
		multiplier = 1000
	}

	cleaned := salarySymbols.ReplaceAllString(upper, "")
	// "100K" keeps its K through the unit pass, a standalone "K" does not
	cleaned = salaryUnits.ReplaceAllString(cleaned, " ")

	if m := salaryRange.FindStringSubmatch(cleaned); m != nil {
		lo, errLo := strconv.ParseFloat(m[1], 64)
		hi, errHi := strconv.ParseFloat(m[2], 64)
		if errLo == nil && errHi == nil {
			lo, hi = lo*multiplier, hi*multiplier
			s.Min, s.Max = &lo, &hi
			return s
		}
	}
	if m := salarySingle.FindStringSubmatch(cleaned); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			v *= multiplier
			lo, hi := v, v
			s.Min, s.Max = &lo, &hi
		}
	}
	return s
}

var (
	relativeNow    = regexp.MustCompile(`\b\d+\s*(?:hours?|hrs?|minutes?|mins?)\s*ago`)
	relativeDays   = regexp.MustCompile(`(\d+)\+?\s*days?\s*ago`)
	relativeWeeks  = regexp.MustCompile(`(\d+)\+?\s*weeks?\s*ago`)
	relativeMonths = regexp.MustCompile(`(\d+)\+?\s*months?\s*ago`)
	dateSlashMDY   = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	dateDashMDY    = regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`)
	dateISO        = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
)

// daysPerMonth approximates "N months ago"
const daysPerMonth = 30

// ParseDate interprets platform date strings relative to now.
// Absolute dates are returned at midnight UTC.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(CleanText(text))
	if lower == "" {
		return time.Time{}, false
	}
	day := 24 * time.Hour

	switch {
	case strings.Contains(lower, "today"), strings.Contains(lower, "just posted"),
		strings.Contains(lower, "just now"), relativeNow.MatchString(lower):
		return now, true
	case strings.Contains(lower, "yesterday"):
		return now.Add(-day), true
	case relativeDays.MatchString(lower):
		return now.Add(-time.Duration(leadingInt(relativeDays, lower)) * day), true
	case strings.Contains(lower, "week") && strings.Contains(lower, "ago"):
		weeks := 1
		if relativeWeeks.MatchString(lower) {
			weeks = leadingInt(relativeWeeks, lower)
		}
		return now.Add(-time.Duration(weeks*7) * day), true
	case strings.Contains(lower, "month") && strings.Contains(lower, "ago"):
		months := 1
		if relativeMonths.MatchString(lower) {
			months = leadingInt(relativeMonths, lower)
		}
		return now.Add(-time.Duration(months*daysPerMonth) * day), true
	}

	if m := dateISO.FindStringSubmatch(lower); m != nil {
		if t, ok := civilDate(m[1], m[2], m[3]); ok {
			return t, true
		}
	}
	for _, re := range []*regexp.Regexp{dateSlashMDY, dateDashMDY} {
		if m := re.FindStringSubmatch(lower); m != nil {
			if t, ok := civilDate(m[3], m[1], m[2]); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func leadingInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// civilDate builds a UTC date and rejects out-of-range parts like 02/30
func civilDate(year, month, day string) (time.Time, bool) {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

var employmentTerms = []struct {
	kind  string
	terms []string
}{
	{FullTime, []string{"full-time", "full time", "fulltime"}},
	{PartTime, []string{"part-time", "part time", "parttime"}},
	{Contract, []string{"contract", "contractor", "freelance"}},
	{Internship, []string{"intern", "internship"}},
	{Temporary, []string{"temporary", "temp"}},
}

// ExtractEmploymentType guesses the employment type from description text.
// Earlier kinds win when several match.
func ExtractEmploymentType(text string) string {
	lower := strings.ToLower(text)
	if lower == "" {
		return ""
	}
	for _, et := range employmentTerms {
		for _, term := range et.terms {
			if strings.Contains(lower, term) {
				return et.kind
			}
		}
	}
	return ""
}
