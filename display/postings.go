package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/internal/util"
	"github.com/teranos/recruitiq/posting"
)

// Column widths of the summary table
const (
	titleWidth    = 30
	companyWidth  = 20
	locationWidth = 20
	typeWidth     = 12
	platformWidth = 16

	// DescriptionPreview bounds the description shown in detailed view
	DescriptionPreview = 300
)

// PostingsTable renders postings as a one-row-per-posting table
func PostingsTable(postings []posting.Posting, now time.Time) (string, error) {
	data := pterm.TableData{{"Title", "Company", "Location", "Salary", "Type", "Platform", "Posted"}}
	for _, p := range postings {
		employment := "Unknown"
		if p.EmploymentType != nil {
			employment = *p.EmploymentType
		}
		data = append(data, []string{
			pterm.Magenta(util.Truncate(p.Title, titleWidth)),
			pterm.Cyan(util.Truncate(p.CompanyName, companyWidth)),
			pterm.Green(util.Truncate(p.LocationOr("Remote"), locationWidth)),
			pterm.Yellow(FormatSalary(p.SalaryMin, p.SalaryMax, p.SalaryCurrency)),
			util.Truncate(employment, typeWidth),
			util.Truncate(p.SourcePlatform, platformWidth),
			pterm.Gray(FormatPostedDate(p.PostedDate, now)),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, "failed to render postings table")
	}
	return out, nil
}

// PostingDetail renders one posting as a titled box with a description preview
func PostingDetail(p posting.Posting, index, total int) string {
	salary := FormatSalary(p.SalaryMin, p.SalaryMax, p.SalaryCurrency)
	if salary != NotSpecified {
		salary = "Salary: " + salary + " " + p.SalaryCurrency
	} else {
		salary = "Salary not specified"
	}
	employment := "Type not specified"
	if p.EmploymentType != nil {
		employment = *p.EmploymentType
	}
	posted := "Posted date unknown"
	if p.PostedDate != nil {
		posted = "Posted: " + p.PostedDate.Format("2006-01-02 15:04")
	}

	var b strings.Builder
	b.WriteString(pterm.Bold.Sprint(pterm.Magenta(p.Title)) + "\n")
	b.WriteString(pterm.Cyan(p.CompanyName) + " | " + pterm.Green(p.LocationOr("Remote")) + "\n")
	b.WriteString(pterm.Yellow(salary) + " | " + pterm.Blue(employment) + "\n")
	b.WriteString(pterm.Red("Platform: "+p.SourcePlatform) + " | " + pterm.Gray(posted) + "\n\n")
	if desc := p.Description(); desc != "" {
		b.WriteString(pterm.Bold.Sprint("Description:") + "\n")
		b.WriteString(util.Truncate(desc, DescriptionPreview) + "\n\n")
	}
	b.WriteString(pterm.Bold.Sprint("URL: ") + p.URL)

	return pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Job %d/%d", index, total)).
		Sprint(b.String())
}

// WritePostings prints postings to w as a table, or as detail boxes when detailed is set
func WritePostings(w io.Writer, postings []posting.Posting, detailed bool, now time.Time) error {
	if len(postings) == 0 {
		_, err := fmt.Fprintln(w, pterm.Yellow("No jobs found matching your criteria."))
		return err
	}
	fmt.Fprintln(w, pterm.Green(fmt.Sprintf("Found %d jobs:", len(postings))))
	fmt.Fprintln(w)

	if detailed {
		for i, p := range postings {
			fmt.Fprintln(w, PostingDetail(p, i+1, len(postings)))
			fmt.Fprintln(w)
		}
		return nil
	}

	table, err := PostingsTable(postings, now)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	fmt.Fprintln(w, pterm.Gray("Tip: use --detailed for full descriptions and URLs"))
	return nil
}
