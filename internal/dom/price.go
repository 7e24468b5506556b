package dom

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Listing price elements, most specific layout first.
var listingPriceSelectors = []string{
	"[data-testid='x-price-primary'] .ux-textspans",
	".x-price-primary span",
	"#prcIsum",
	"#mm-saleDscPrc",
	".display-price",
	"[itemprop='price']",
}

var currencyAmountPattern = regexp.MustCompile(`[$€£¥]\s?\d[\d.,]*`)

// ListingPrice finds the listing's own price text. Selector hits win; when
// no known layout matches, the first currency-looking amount on the page is
// used instead.
func (v *View) ListingPrice() (string, bool) {
	for _, sel := range listingPriceSelectors {
		text := strings.TrimSpace(v.doc.Find(sel).First().Text())
		if text != "" && currencyAmountPattern.MatchString(text) {
			return currencyAmountPattern.FindString(text), true
		}
	}

	var found string
	v.doc.Find("span,div,td").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if len(text) > 40 {
			return true
		}
		if m := currencyAmountPattern.FindString(text); m != "" {
			found = m
			return false
		}
		return true
	})
	return found, found != ""
}
