package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/slabcheck/slabcheck/internal/model"
)

// Price-bearing sections, most specific layout first.
var priceSectionSelectors = []string{
	"[data-testid='price-table']",
	"table.price-guide",
	"#priceGuide table",
	".prices table",
}

// Single-value selectors for the current grade's price, used when no table
// section is present.
var singlePriceSelectors = []string{
	"[data-testid='current-grade-price']",
	".price-for-grade",
	".cert-detail-price",
}

// Decimal currency amount: "$1,234.56", "$1500.00", "$900". Separated and
// unseparated forms are distinct alternatives so an unseparated run is never
// cut short at three digits.
var strictCurrencyPattern = regexp.MustCompile(`\$\d{1,3}(?:,\d{3})+(?:\.\d{2})?|\$\d+(?:\.\d{2})?`)

var priceContextVocabulary = []string{"value", "price", "estimate"}

// extractPriceTable builds the grade-to-price table. Chain: a price-bearing
// section parsed row by row; a single value scoped to the current grade;
// then a contextual scan for currency-shaped text near price vocabulary or
// the grade label.
func extractPriceTable(doc *goquery.Document, currentGrade string) model.GradeTable {
	var table model.GradeTable

	for _, sel := range priceSectionSelectors {
		section := doc.Find(sel).First()
		if section.Length() == 0 {
			continue
		}
		section.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}
			label := strings.TrimSpace(cells.Eq(0).Text())
			price := strings.TrimSpace(cells.Eq(cells.Length() - 1).Text())
			if label == "" || !strictCurrencyPattern.MatchString(price) {
				return
			}
			table.Set(label, strictCurrencyPattern.FindString(price))
		})
		if table.Len() > 0 {
			return table
		}
	}

	for _, sel := range singlePriceSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if m := strictCurrencyPattern.FindString(text); m != "" {
			table.Set(currentGrade, m)
			return table
		}
	}

	if m, ok := contextualCurrencyScan(doc, currentGrade); ok {
		table.Set(currentGrade, m)
	}
	return table
}

// contextualCurrencyScan finds the first currency-shaped leaf whose own or
// parent text sits near price vocabulary or the current grade label.
func contextualCurrencyScan(doc *goquery.Document, currentGrade string) (string, bool) {
	gradeLower := strings.ToLower(currentGrade)
	var found string
	doc.Find("span, div, td, p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := strings.TrimSpace(s.Text())
		m := strictCurrencyPattern.FindString(text)
		if m == "" {
			return true
		}
		context := strings.ToLower(text + " " + s.Parent().Text())
		for _, term := range priceContextVocabulary {
			if strings.Contains(context, term) {
				found = m
				return false
			}
		}
		if gradeLower != "" && strings.Contains(context, gradeLower) {
			found = m
			return false
		}
		return true
	})
	return found, found != ""
}
