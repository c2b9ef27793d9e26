// Package posting defines the job posting record and the validating factory
// that turns scraped or imported candidates into storable postings.
package posting

import (
	"time"
)

// DefaultCurrency is applied when a candidate carries no salary currency
const DefaultCurrency = "USD"

// Field names shared by validation errors, import files and the schema
const (
	FieldTitle          = "title"
	FieldCompanyName    = "company_name"
	FieldLocation       = "location"
	FieldPostedDate     = "posted_date"
	FieldSalaryMin      = "salary_min"
	FieldSalaryMax      = "salary_max"
	FieldSalaryCurrency = "salary_currency"
	FieldEmploymentType = "employment_type"
	FieldJobDescription = "job_description"
	FieldSourcePlatform = "source_platform"
	FieldURL            = "url"
)

// Length and range limits enforced by NewPosting
const (
	MinTitleLength       = 2
	MaxTitleLength       = 200
	MaxCompanyLength     = 200
	MaxLocationLength    = 200
	MaxDescriptionLength = 10000
	MaxSalary            = 1000000
)

// Employment types produced by ExtractEmploymentType
const (
	FullTime   = "Full-time"
	PartTime   = "Part-time"
	Contract   = "Contract"
	Internship = "Internship"
	Temporary  = "Temporary"
)

// Posting is one observed job listing from one platform.
// (URL, SourcePlatform) is the natural key.
type Posting struct {
	ID             int64      `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	CompanyName    string     `db:"company_name" json:"company_name"`
	Location       *string    `db:"location" json:"location,omitempty"`
	PostedDate     *time.Time `db:"posted_date" json:"posted_date,omitempty"`
	SalaryMin      *float64   `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax      *float64   `db:"salary_max" json:"salary_max,omitempty"`
	SalaryCurrency string     `db:"salary_currency" json:"salary_currency"`
	EmploymentType *string    `db:"employment_type" json:"employment_type,omitempty"` // heuristic, not authoritative
	JobDescription *string    `db:"job_description" json:"job_description,omitempty"`
	SourcePlatform string     `db:"source_platform" json:"source_platform"`
	URL            string     `db:"url" json:"url"`
	LastScraped    time.Time  `db:"last_scraped" json:"last_scraped"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
	IsActive       bool       `db:"is_active" json:"is_active"`
}

// Candidate is an unvalidated record as produced by a scraper or an import file.
// Empty strings and nil pointers mean "absent".
type Candidate struct {
	Title          string     `mapstructure:"title" json:"title" yaml:"title"`
	CompanyName    string     `mapstructure:"company_name" json:"company_name" yaml:"company_name"`
	Location       string     `mapstructure:"location" json:"location,omitempty" yaml:"location,omitempty"`
	PostedDate     *time.Time `mapstructure:"posted_date" json:"posted_date,omitempty" yaml:"posted_date,omitempty"`
	SalaryMin      *float64   `mapstructure:"salary_min" json:"salary_min,omitempty" yaml:"salary_min,omitempty"`
	SalaryMax      *float64   `mapstructure:"salary_max" json:"salary_max,omitempty" yaml:"salary_max,omitempty"`
	SalaryCurrency string     `mapstructure:"salary_currency" json:"salary_currency,omitempty" yaml:"salary_currency,omitempty"`
	EmploymentType string     `mapstructure:"employment_type" json:"employment_type,omitempty" yaml:"employment_type,omitempty"`
	JobDescription string     `mapstructure:"job_description" json:"job_description,omitempty" yaml:"job_description,omitempty"`
	SourcePlatform string     `mapstructure:"source_platform" json:"source_platform" yaml:"source_platform"`
	URL            string     `mapstructure:"url" json:"url" yaml:"url"`
}

// Key returns the natural key of the posting
func (p *Posting) Key() (url, platform string) {
	return p.URL, p.SourcePlatform
}

// HasSalary reports whether either salary bound is known
func (p *Posting) HasSalary() bool {
	return p.SalaryMin != nil || p.SalaryMax != nil
}

// Description returns the job description or "" when absent
func (p *Posting) Description() string {
	if p.JobDescription == nil {
		return ""
	}
	return *p.JobDescription
}

// LocationOr returns the location or fallback when absent
func (p *Posting) LocationOr(fallback string) string {
	if p.Location == nil {
		return fallback
	}
	return *p.Location
}
