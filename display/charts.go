package display

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/recruitiq/errors"
	"github.com/teranos/recruitiq/internal/util"
	"github.com/teranos/recruitiq/storage"
)

const (
	labelWidth = 32
	chartWidth = 40
)

// BarChart renders label counts as a horizontal bar chart
func BarChart(counts []storage.LabelCount) (string, error) {
	if len(counts) == 0 {
		return pterm.Gray("(no data)"), nil
	}
	bars := make(pterm.Bars, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, pterm.Bar{Label: util.Truncate(c.Label, labelWidth), Value: c.Count})
	}
	out, err := pterm.DefaultBarChart.
		WithBars(bars).
		WithHorizontal().
		WithShowValue().
		WithWidth(chartWidth).
		Srender()
	if err != nil {
		return "", errors.Wrap(err, "failed to render bar chart")
	}
	return out, nil
}

// CountTable renders label counts with their share of total
func CountTable(header string, counts []storage.LabelCount, total int) (string, error) {
	data := pterm.TableData{{header, "Count", "Share"}}
	for _, c := range counts {
		share := "-"
		if total > 0 {
			share = FormatPercent(float64(c.Count) * 100 / float64(total))
		}
		data = append(data, []string{c.Label, pterm.Sprint(c.Count), share})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrapf(err, "failed to render %s table", strings.ToLower(header))
	}
	return out, nil
}
