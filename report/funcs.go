package report

import (
	"html/template"
	"strings"

	"github.com/teranos/recruitiq/display"
)

var funcs = template.FuncMap{
	"barChart":    barChartSVG,
	"salaryChart": salaryChartSVG,
	"skillChart":  skillChartSVG,
	"topSkills":   topSkillChartSVG,
	"money": func(v float64) string {
		return display.FormatMoney(v, "USD")
	},
	"moneyPtr": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return display.FormatMoney(*v, "USD")
	},
	"percent": display.FormatPercent,
	"join":    strings.Join,
}
