package report

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/teranos/recruitiq/analysis"
	"github.com/teranos/recruitiq/internal/util"
	"github.com/teranos/recruitiq/storage"
)

// Chart geometry in SVG user units
const (
	chartWidth  = 640
	barHeight   = 22
	barGap      = 6
	labelSpace  = 200
	valueSpace  = 60
	labelMaxLen = 28
)

var palette = []string{"#2563eb", "#7c3aed", "#db2777", "#ea580c", "#16a34a", "#0891b2"}

// barChartSVG draws counts as an inline horizontal bar chart
func barChartSVG(counts []storage.LabelCount) template.HTML {
	if len(counts) == 0 {
		return template.HTML(`<p class="empty">No data</p>`)
	}
	max := 0
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}
	plot := float64(chartWidth - labelSpace - valueSpace)
	height := len(counts)*(barHeight+barGap) + barGap

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="chart" viewBox="0 0 %d %d" width="100%%" role="img" xmlns="http://www.w3.org/2000/svg">`, chartWidth, height)
	for i, c := range counts {
		y := barGap + i*(barHeight+barGap)
		w := 0.0
		if max > 0 {
			w = plot * float64(c.Count) / float64(max)
		}
		label := html.EscapeString(util.Truncate(c.Label, labelMaxLen))
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="end" class="label">%s</text>`,
			labelSpace-8, y+barHeight-6, label)
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.1f" height="%d" rx="3" fill="%s"><title>%s: %d</title></rect>`,
			labelSpace, y, w, barHeight, palette[i%len(palette)], html.EscapeString(c.Label), c.Count)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" class="value">%d</text>`,
			float64(labelSpace)+w+6, y+barHeight-6, c.Count)
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// salaryChartSVG charts the average salary of each group
func salaryChartSVG(groups []storage.GroupSalary) template.HTML {
	counts := make([]storage.LabelCount, len(groups))
	for i, g := range groups {
		counts[i] = storage.LabelCount{Label: g.Label, Count: int(g.Average)}
	}
	return barChartSVG(counts)
}

// skillChartSVG charts skill mention counts
func skillChartSVG(skills []analysis.SkillCount) template.HTML {
	counts := make([]storage.LabelCount, len(skills))
	for i, s := range skills {
		counts[i] = storage.LabelCount{Label: s.Skill, Count: s.Count}
	}
	return barChartSVG(counts)
}

// topSkillChartSVG charts the cross-category ranking
func topSkillChartSVG(skills []analysis.CategorizedSkill) template.HTML {
	counts := make([]storage.LabelCount, len(skills))
	for i, s := range skills {
		counts[i] = storage.LabelCount{Label: s.Skill, Count: s.Count}
	}
	return barChartSVG(counts)
}
