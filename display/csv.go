package display

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/posting"
)

// CSVHeaders are the exported columns, in order
var CSVHeaders = []string{
	"id", posting.FieldTitle, posting.FieldCompanyName, posting.FieldLocation,
	posting.FieldSalaryMin, posting.FieldSalaryMax, posting.FieldSalaryCurrency,
	posting.FieldEmploymentType, posting.FieldSourcePlatform, posting.FieldPostedDate,
	posting.FieldURL, posting.FieldJobDescription,
}

// WriteCSV writes postings with CSVHeaders as the header row
func WriteCSV(w io.Writer, postings []posting.Posting) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeaders); err != nil {
		return errors.Wrap(err, "failed to write headers")
	}
	for _, p := range postings {
		posted := ""
		if p.PostedDate != nil {
			posted = p.PostedDate.UTC().Format(time.RFC3339)
		}
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.CompanyName,
			p.LocationOr(""),
			formatFloat(p.SalaryMin),
			formatFloat(p.SalaryMax),
			p.SalaryCurrency,
			optional(p.EmploymentType),
			p.SourcePlatform,
			posted,
			p.URL,
			p.Description(),
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "failed to write row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush CSV")
}

// ExportCSV writes postings to a new file at path
func ExportCSV(path string, postings []posting.Posting) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create CSV file")
	}
	if err := WriteCSV(file, postings); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close CSV file")
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
