package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/slabcheck/slabcheck/internal/model"
)

// Proximity weights for the last-resort population scan.
const (
	scoreOwnText     = 10
	scoreParentText  = 5
	scoreSiblingText = 3
)

var (
	pureDigits        = regexp.MustCompile(`^\d+$`)
	inlinePopPattern  = regexp.MustCompile(`(?i)pop(?:ulation)?\s*[:#]?\s*(\d+)`)
	popVocabulary     = []string{"population", "pop"}
	maxShortPopDigits = 6
)

// extractPopulationTable builds the grade-to-population table via a
// five-tier fallback: scoped pop-report anchors, broader anchors, named
// sections, a vocabulary proximity scan, then a page-wide scored scan.
func extractPopulationTable(doc *goquery.Document, currentGrade string) model.GradeTable {
	var table model.GradeTable

	tiers := []func(*goquery.Document, string, *model.GradeTable){
		popFromScopedAnchors,
		popFromAnyAnchors,
		popFromNamedSections,
		popFromVocabularyProximity,
		popFromScoredScan,
	}
	for _, tier := range tiers {
		tier(doc, currentGrade, &table)
		if table.Len() > 0 {
			return table
		}
	}
	return table
}

// rowLabel finds the grade label for an element sitting inside a table row,
// defaulting to the current grade.
func rowLabel(s *goquery.Selection, currentGrade string) string {
	row := s.Closest("tr")
	if row.Length() > 0 {
		label := strings.TrimSpace(row.Find("td, th").First().Text())
		if label != "" && !pureDigits.MatchString(label) {
			return label
		}
	}
	return currentGrade
}

func collectAnchorPops(anchors *goquery.Selection, currentGrade string, table *model.GradeTable) {
	anchors.Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		if !pureDigits.MatchString(text) {
			return
		}
		table.Set(rowLabel(a, currentGrade), text)
	})
}

func popFromScopedAnchors(doc *goquery.Document, currentGrade string, table *model.GradeTable) {
	collectAnchorPops(doc.Find("[data-testid='pop-report'] a[href*='pop']"), currentGrade, table)
}

func popFromAnyAnchors(doc *goquery.Document, currentGrade string, table *model.GradeTable) {
	collectAnchorPops(doc.Find("a[href*='pop']"), currentGrade, table)
}

var popSectionSelectors = []string{
	".pop-report td",
	"#population td",
	".population-count",
}

func popFromNamedSections(doc *goquery.Document, currentGrade string, table *model.GradeTable) {
	for _, sel := range popSectionSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if s.Children().Length() > 0 {
				return
			}
			text := strings.TrimSpace(s.Text())
			if pureDigits.MatchString(text) {
				table.Set(rowLabel(s, currentGrade), text)
			}
		})
		if table.Len() > 0 {
			return
		}
	}
}

// popFromVocabularyProximity finds text mentioning population vocabulary and
// checks the mentioning element's siblings and parent for a pure-digit
// leaf, falling back to an inline "population: N" match.
func popFromVocabularyProximity(doc *goquery.Document, currentGrade string, table *model.GradeTable) {
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		own := strings.ToLower(s.Clone().Children().Remove().End().Text())
		if !containsAnyWord(own, popVocabulary) {
			return true
		}

		var digits string
		s.Siblings().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			text := strings.TrimSpace(sib.Text())
			if pureDigits.MatchString(text) {
				digits = text
				return false
			}
			return true
		})
		if digits == "" {
			text := strings.TrimSpace(s.Parent().Text())
			if m := inlinePopPattern.FindStringSubmatch(text); m != nil {
				digits = m[1]
			}
		}
		if digits == "" {
			if m := inlinePopPattern.FindStringSubmatch(s.Text()); m != nil {
				digits = m[1]
			}
		}
		if digits != "" {
			table.Set(rowLabel(s, currentGrade), digits)
			return false
		}
		return true
	})
}

// popFromScoredScan is the last resort: every short pure-digit leaf on the
// page is scored by proximity to population vocabulary and the best scoring
// one wins.
func popFromScoredScan(doc *goquery.Document, currentGrade string, table *model.GradeTable) {
	best := ""
	bestScore := 0
	doc.Find("span, td, div, a, b, strong").Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if !pureDigits.MatchString(text) || len(text) > maxShortPopDigits {
			return
		}
		score := proximityScore(s)
		if score > bestScore {
			best = text
			bestScore = score
		}
	})
	if best != "" {
		table.Set(currentGrade, best)
	}
}

// proximityScore tallies population-vocabulary mentions in the element's
// own text, its parent's text, and each sibling's text.
func proximityScore(s *goquery.Selection) int {
	score := 0
	if containsAnyWord(strings.ToLower(s.Text()), popVocabulary) {
		score += scoreOwnText
	}
	if containsAnyWord(strings.ToLower(s.Parent().Text()), popVocabulary) {
		score += scoreParentText
	}
	s.Siblings().Each(func(_ int, sib *goquery.Selection) {
		if containsAnyWord(strings.ToLower(sib.Text()), popVocabulary) {
			score += scoreSiblingText
		}
	})
	return score
}

// containsAnyWord reports whether any of the terms appears in the text as a
// whole word. Word-bounded so "pop" does not match inside "popular".
func containsAnyWord(text string, terms []string) bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
	})
	for _, f := range fields {
		for _, term := range terms {
			if strings.EqualFold(f, term) {
				return true
			}
		}
	}
	return false
}
