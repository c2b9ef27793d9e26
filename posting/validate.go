package posting

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/teranos/recruitiq/errors"
)

// ErrInvalid matches every *ValidationError via errors.Is
var ErrInvalid = errors.New("invalid job posting")

// ValidationError names the first field that failed validation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalid) hold for every validation failure
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// http(s) scheme, a domain with a 2-6 letter TLD, localhost or a dotted quad,
// optional port and optional path
var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|` +
	`localhost|` +
	`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// ValidateURL reports whether s is a structurally valid http(s) URL
func ValidateURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return urlPattern.MatchString(s)
}

// NewPosting validates c and returns a normalized posting.
// The candidate is never modified. Failures are *ValidationError.
func NewPosting(c Candidate) (*Posting, error) {
	title := strings.TrimSpace(c.Title)
	company := strings.TrimSpace(c.CompanyName)
	location := strings.TrimSpace(c.Location)
	description := strings.TrimSpace(c.JobDescription)
	platform := strings.TrimSpace(c.SourcePlatform)
	url := strings.TrimSpace(c.URL)

	if title == "" {
		return nil, invalid(FieldTitle, "required")
	}
	if n := utf8.RuneCountInString(title); n < MinTitleLength || n > MaxTitleLength {
		return nil, invalid(FieldTitle, "length %d outside [%d, %d]", n, MinTitleLength, MaxTitleLength)
	}
	if company == "" {
		return nil, invalid(FieldCompanyName, "required")
	}
	if n := utf8.RuneCountInString(company); n > MaxCompanyLength {
		return nil, invalid(FieldCompanyName, "length %d exceeds %d", n, MaxCompanyLength)
	}
	if n := utf8.RuneCountInString(location); n > MaxLocationLength {
		return nil, invalid(FieldLocation, "length %d exceeds %d", n, MaxLocationLength)
	}
	if n := utf8.RuneCountInString(description); n > MaxDescriptionLength {
		return nil, invalid(FieldJobDescription, "length %d exceeds %d", n, MaxDescriptionLength)
	}
	if err := checkSalary(FieldSalaryMin, c.SalaryMin); err != nil {
		return nil, err
	}
	if err := checkSalary(FieldSalaryMax, c.SalaryMax); err != nil {
		return nil, err
	}
	if platform == "" {
		return nil, invalid(FieldSourcePlatform, "required")
	}
	if url == "" {
		return nil, invalid(FieldURL, "required")
	}
	if !ValidateURL(url) {
		return nil, invalid(FieldURL, "%q is not a valid http(s) URL", url)
	}

	p := &Posting{
		Title:          title,
		CompanyName:    company,
		Location:       optionalString(location),
		SalaryMin:      copyFloat(c.SalaryMin),
		SalaryMax:      copyFloat(c.SalaryMax),
		SalaryCurrency: strings.ToUpper(strings.TrimSpace(c.SalaryCurrency)),
		EmploymentType: optionalString(strings.TrimSpace(c.EmploymentType)),
		JobDescription: optionalString(description),
		SourcePlatform: platform,
		URL:            url,
		IsActive:       true,
	}
	if p.SalaryCurrency == "" {
		p.SalaryCurrency = DefaultCurrency
	}
	if c.PostedDate != nil {
		posted := c.PostedDate.UTC()
		p.PostedDate = &posted
	}
	return p, nil
}

func checkSalary(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return invalid(field, "not a number")
	}
	if *v < 0 || *v > MaxSalary {
		return invalid(field, "%.2f outside [0, %d]", *v, MaxSalary)
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
