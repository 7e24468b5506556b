package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// KeyValue is one labeled key/value element pair from the page.
type KeyValue struct {
	Label string
	Value string
}

// Marketplace listing layouts label item attributes in a handful of
// recurring shapes. Each selector pair yields (label, value) element lists
// of equal length when the layout matches.
var keyValueSelectors = []struct {
	label string
	value string
}{
	{".ux-labels-values__labels", ".ux-labels-values__values"},
	{"dl dt", "dl dd"},
	{".item-specifics td.attrLabels", ".item-specifics td.attrLabels + td"},
	{"table.itemAttr th", "table.itemAttr td"},
}

// KeyValuePairs scans labeled key/value UI elements across all recognized
// layouts, in document order per layout.
func (v *View) KeyValuePairs() []KeyValue {
	var pairs []KeyValue
	for _, sel := range keyValueSelectors {
		labels := v.doc.Find(sel.label)
		values := v.doc.Find(sel.value)
		if labels.Length() == 0 || labels.Length() != values.Length() {
			continue
		}
		labels.Each(func(i int, s *goquery.Selection) {
			pairs = append(pairs, KeyValue{
				Label: strings.TrimSpace(s.Text()),
				Value: strings.TrimSpace(values.Eq(i).Text()),
			})
		})
	}
	return pairs
}

// SpecificsValue returns the value of the first item-attribute field whose
// label contains any of the given terms, case-insensitive.
func (v *View) SpecificsValue(terms ...string) (string, bool) {
	for _, kv := range v.KeyValuePairs() {
		label := strings.ToLower(kv.Label)
		for _, term := range terms {
			if strings.Contains(label, strings.ToLower(term)) && kv.Value != "" {
				return kv.Value, true
			}
		}
	}
	return "", false
}
