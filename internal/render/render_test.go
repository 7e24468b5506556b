package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/slabcheck/slabcheck/internal/model"
	"github.com/slabcheck/slabcheck/internal/pipeline"
)

func sampleRecord() *model.CertRecord {
	r := &model.CertRecord{
		CertNumber: "12345678",
		CardName:   "1999 POKEMON BASE SET #4 CHARIZARD",
		Grade:      "PSA 10",
	}
	r.PriceTable.Set("PSA 10", "$1,500.00")
	r.PriceTable.Set("PSA 9", "$400.00")
	return r
}

func TestOutcome_Record(t *testing.T) {
	var buf bytes.Buffer
	Outcome(&buf, pipeline.Outcome{Kind: pipeline.OutcomeRecord, Record: sampleRecord()})

	out := buf.String()
	assert.Contains(t, out, "12345678")
	assert.Contains(t, out, "1999 POKEMON BASE SET #4 CHARIZARD")
	assert.Contains(t, out, "Price guide")
	assert.Contains(t, out, "live fetch")
	assert.NotContains(t, out, "Population")
}

func TestOutcome_RecordFromCacheShowsTimestamp(t *testing.T) {
	r := sampleRecord()
	cachedAt := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	r.Provenance = model.Provenance{FromCache: true, CachedAt: &cachedAt}

	var buf bytes.Buffer
	Record(&buf, r)

	assert.Contains(t, buf.String(), "cache (2026-08-01 12:30)")
}

func TestOutcome_ManualEntryPrompt(t *testing.T) {
	var buf bytes.Buffer
	Outcome(&buf, pipeline.Outcome{Kind: pipeline.OutcomeManualEntry})

	assert.Contains(t, buf.String(), "slabcheck fetch <cert-number>")
}

func TestOutcome_NotApplicable(t *testing.T) {
	var buf bytes.Buffer
	Outcome(&buf, pipeline.Outcome{Kind: pipeline.OutcomeNotApplicable})

	assert.Contains(t, buf.String(), "Not a graded-card listing")
}

func TestOutcome_RetryableError(t *testing.T) {
	var buf bytes.Buffer
	Outcome(&buf, pipeline.Outcome{
		Kind:         pipeline.OutcomeError,
		ErrorMessage: "could not load cert data for 12345678",
		Retryable:    true,
	})

	out := buf.String()
	assert.Contains(t, out, "could not load cert data for 12345678")
	assert.Contains(t, out, "retry")
}

func TestComparison(t *testing.T) {
	var buf bytes.Buffer
	Comparison(&buf, &model.PriceComparison{
		ListingPrice:       decimal.NewFromInt(120),
		ReferencePrice:     decimal.NewFromInt(100),
		AbsoluteDifference: decimal.NewFromInt(20),
		PercentDifference:  decimal.NewFromInt(20),
		Category:           model.ModeratelyOverpriced,
	})

	out := buf.String()
	assert.Contains(t, out, "120.00")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "Moderately overpriced")
	assert.Contains(t, out, "20.0%")
}
