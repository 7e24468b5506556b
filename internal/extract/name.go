package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Structural selectors for the card name, most specific layout first.
var nameSelectors = []string{
	"[data-testid='cert-card-name']",
	".cert-detail-title h1",
	"h1.card-name",
	"#certDetails .card-name",
	"table.cert-table tr:first-of-type td:last-of-type",
}

var nameChain = []fieldStrategy{
	{name: "selectors", locate: nameFromSelectors},
	{name: "uppercase_heuristic", locate: nameFromUppercaseHeuristic},
}

func nameFromSelectors(doc *goquery.Document) (string, bool) {
	for _, sel := range nameSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

// Card titles on cert pages are set in caps and usually carry a year or a
// card number marker.
const minNameLen = 8

var (
	fourDigitRun  = regexp.MustCompile(`\d{4}`)
	tripleUpper   = regexp.MustCompile(`[A-Z]{3,}`)
	hasLetterCaps = regexp.MustCompile(`[A-Z]`)
)

func nameFromUppercaseHeuristic(doc *goquery.Document) (string, bool) {
	var found string
	doc.Find("h1, h2, h3, td, div, span, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if len(text) < minNameLen || len(text) > 200 {
			return true
		}
		if text != strings.ToUpper(text) || !hasLetterCaps.MatchString(text) {
			return true
		}
		if strings.Contains(text, "#") || fourDigitRun.MatchString(text) || tripleUpper.MatchString(text) {
			found = text
			return false
		}
		return true
	})
	return found, found != ""
}
