// Package model holds the core types shared across the slabcheck pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel values substituted when a field cannot be recovered from markup.
// Downstream rendering assumes both fields are always present.
const (
	UnknownCardName = "Unknown Card"
	UnknownGrade    = "Unknown Grade"
)

// GradeTable is an ordered mapping from grade label to a string value
// (a price string or a population count). Insertion order follows document
// order; setting an existing label overwrites its value in place.
type GradeTable struct {
	entries []GradeEntry
}

// GradeEntry is a single (label, value) row of a GradeTable.
type GradeEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Set inserts or overwrites the value for a label, preserving first-insertion
// order for existing labels.
func (t *GradeTable) Set(label, value string) {
	for i := range t.entries {
		if t.entries[i].Label == label {
			t.entries[i].Value = value
			return
		}
	}
	t.entries = append(t.entries, GradeEntry{Label: label, Value: value})
}

// Get returns the value for an exact label match.
func (t *GradeTable) Get(label string) (string, bool) {
	for _, e := range t.entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}

// Entries returns the rows in insertion order. The returned slice is shared;
// callers must not mutate it.
func (t *GradeTable) Entries() []GradeEntry { return t.entries }

// Len returns the number of rows.
func (t *GradeTable) Len() int { return len(t.entries) }

// Provenance records where a CertRecord came from.
type Provenance struct {
	FromCache bool       `json:"from_cache"`
	CachedAt  *time.Time `json:"cached_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CertRecord is the structured result of parsing the reference site's cert
// page. CardName and Grade are never empty: extraction substitutes the
// Unknown* sentinels when a field cannot be recovered.
type CertRecord struct {
	CertNumber      string     `json:"cert_number"`
	CardName        string     `json:"card_name"`
	CardDetails     string     `json:"card_details,omitempty"`
	Grade           string     `json:"grade"`
	PriceTable      GradeTable `json:"price_table"`
	PopulationTable GradeTable `json:"population_table"`
	Provenance      Provenance `json:"provenance"`
}

// PriceCategory buckets a listing's deviation from the reference price.
type PriceCategory string

const (
	SignificantlyOverpriced PriceCategory = "significantly_overpriced"
	ModeratelyOverpriced    PriceCategory = "moderately_overpriced"
	SlightlyHigher          PriceCategory = "slightly_higher"
	FairlyPriced            PriceCategory = "fairly_priced"
	Underpriced             PriceCategory = "underpriced"
)

// PriceComparison reconciles a listing price against the reference price for
// the matching grade. Derived, never persisted.
type PriceComparison struct {
	ListingPrice       decimal.Decimal `json:"listing_price"`
	ReferencePrice     decimal.Decimal `json:"reference_price"`
	AbsoluteDifference decimal.Decimal `json:"absolute_difference"`
	PercentDifference  decimal.Decimal `json:"percent_difference"`
	Category           PriceCategory   `json:"category"`
}
