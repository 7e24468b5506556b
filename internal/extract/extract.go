// Package extract parses raw cert-page HTML into a structured CertRecord.
//
// Extraction never fails: every field has an ordered fallback chain, and a
// field whose whole chain misses degrades to a sentinel value or an empty
// table. Field chains are independent; one field missing never aborts the
// others.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/model"
)

// fieldStrategy is one extraction heuristic for a scalar field.
type fieldStrategy struct {
	name   string
	locate func(doc *goquery.Document) (string, bool)
}

// firstMatch evaluates a chain in order and returns the first hit.
func firstMatch(doc *goquery.Document, field string, chain []fieldStrategy) (string, bool) {
	for _, s := range chain {
		if value, ok := s.locate(doc); ok {
			return value, true
		}
		zap.L().Debug("extract: strategy missed",
			zap.String("field", field),
			zap.String("strategy", s.name),
		)
	}
	return "", false
}

// Extract builds a CertRecord from raw cert-page markup. The supplied cert
// number is preserved verbatim. Unparseable markup yields a fully
// sentinel-valued record rather than an error.
func Extract(rawHTML, certNumber string) model.CertRecord {
	record := model.CertRecord{
		CertNumber: certNumber,
		CardName:   model.UnknownCardName,
		Grade:      model.UnknownGrade,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		zap.L().Warn("extract: unparseable document, returning sentinel record",
			zap.String("cert", certNumber),
			zap.Error(err),
		)
		return record
	}

	if name, ok := firstMatch(doc, "card_name", nameChain); ok {
		record.CardName = name
	}
	if details, ok := extractDetails(doc); ok {
		record.CardDetails = details
	}
	if grade, ok := firstMatch(doc, "grade", gradeChain); ok {
		record.Grade = grade
	}
	record.PriceTable = extractPriceTable(doc, record.Grade)
	record.PopulationTable = extractPopulationTable(doc, record.Grade)

	return record
}

// extractDetails pulls the optional free-text detail line shown under the
// card name on most cert layouts.
func extractDetails(doc *goquery.Document) (string, bool) {
	for _, sel := range []string{
		"[data-testid='cert-card-details']",
		".cert-detail-subtitle",
		".cert-details .variety",
	} {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text != "" {
			return text, true
		}
	}
	return "", false
}
