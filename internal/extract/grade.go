package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Structural selectors for the grade, most specific layout first.
var gradeSelectors = []string{
	"[data-testid='cert-grade']",
	".cert-detail-grade",
	".grade-label + .grade-value",
	"#certDetails .grade",
}

var gradeChain = []fieldStrategy{
	{name: "selectors", locate: gradeFromSelectors},
	{name: "brand_pattern", locate: gradeFromBrandPattern},
}

func gradeFromSelectors(doc *goquery.Document) (string, bool) {
	for _, sel := range gradeSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}

// "PSA 10", "PSA 8.5" anywhere in the document text.
var brandGradePattern = regexp.MustCompile(`(?i)\b(PSA\s+\d{1,2}(?:\.\d)?)\b`)

func gradeFromBrandPattern(doc *goquery.Document) (string, bool) {
	m := brandGradePattern.FindString(doc.Text())
	if m == "" {
		return "", false
	}
	return strings.ToUpper(strings.Join(strings.Fields(m), " ")), true
}
