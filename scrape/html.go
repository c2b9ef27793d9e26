package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/teranos/recruitiq/posting"
)

// FirstText returns the cleaned text of the first selector that matches a
// non-empty element under s. Job boards rename their classes often, so
// scrapers pass several selectors, newest markup first.
func FirstText(s *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		found := s.Find(sel)
		for i := range found.Nodes {
			if text := posting.CleanText(found.Eq(i).Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// FirstAttr returns the first non-empty attr value among the selectors
func FirstAttr(s *goquery.Selection, attr string, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := s.Find(sel).First().Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// AllText returns the cleaned texts of every element matching selector
func AllText(s *goquery.Selection, selector string) []string {
	var out []string
	s.Find(selector).Each(func(_ int, el *goquery.Selection) {
		if text := posting.CleanText(el.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// HTMLToText renders an HTML fragment as plain text, one space between text nodes
func HTMLToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return posting.CleanText(fragment)
	}
	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			switch goquery.NodeName(c) {
			case "#text":
				b.WriteString(c.Text())
				b.WriteByte(' ')
			case "script", "style", "#comment":
			default:
				walk(c)
			}
		})
	}
	walk(doc.Selection)
	return posting.CleanText(b.String())
}
