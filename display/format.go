package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/teranos/recruitiq/posting"
)

// NotSpecified is shown for postings without salary data
const NotSpecified = "Not specified"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMoney renders amount rounded to whole units with thousands separators,
// prefixed by the currency symbol ("$120,000") or suffixed by the code ("120,000 CHF")
func FormatMoney(amount float64, currency string) string {
	n := groupThousands(int64(math.Round(amount)))
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = posting.DefaultCurrency
	}
	if sym, ok := currencySymbols[currency]; ok {
		return sym + n
	}
	return n + " " + currency
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

// FormatSalary renders a posting's salary: a single figure when min equals
// max, "min-max" for a range, "min+" when only a minimum is known
func FormatSalary(min, max *float64, currency string) string {
	hasMin := min != nil && *min > 0
	hasMax := max != nil && *max > 0
	switch {
	case hasMin && hasMax && *min == *max:
		return FormatMoney(*min, currency)
	case hasMin && hasMax:
		return FormatMoney(*min, currency) + "-" + FormatMoney(*max, currency)
	case hasMin:
		return FormatMoney(*min, currency) + "+"
	case hasMax:
		return "Up to " + FormatMoney(*max, currency)
	default:
		return NotSpecified
	}
}

// FormatPostedDate renders how long ago t was: Today, Yesterday, Nd ago,
// Nw ago under 30 days, Nm ago beyond; "Unknown" when t is nil
func FormatPostedDate(t *time.Time, now time.Time) string {
	if t == nil {
		return "Unknown"
	}
	days := int(now.Sub(*t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dm ago", days/30)
	}
}

// FormatPercent renders a percentage with one decimal
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}
