// Package pipeline wires the detection, fetch, extraction, cache, and
// comparison stages into one run per listing page.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/cache"
	"github.com/slabcheck/slabcheck/internal/compare"
	"github.com/slabcheck/slabcheck/internal/dom"
	"github.com/slabcheck/slabcheck/internal/extract"
	"github.com/slabcheck/slabcheck/internal/ident"
	"github.com/slabcheck/slabcheck/internal/model"
)

// OutcomeKind is the terminal state of a pipeline run. Every run ends in
// exactly one of these; nothing is allowed to abort the pipeline silently.
type OutcomeKind string

const (
	// OutcomeRecord carries a record and possibly a comparison.
	OutcomeRecord OutcomeKind = "record"
	// OutcomeManualEntry means the listing looks graded but the cert
	// number must be supplied by the user.
	OutcomeManualEntry OutcomeKind = "manual_entry"
	// OutcomeNotApplicable means the page is not a graded-card listing.
	OutcomeNotApplicable OutcomeKind = "not_applicable"
	// OutcomeError carries a user-visible message with a retry affordance.
	OutcomeError OutcomeKind = "error"
)

// Outcome is what the presentation layer consumes.
type Outcome struct {
	Kind         OutcomeKind
	Record       *model.CertRecord
	Comparison   *model.PriceComparison
	ErrorMessage string
	Retryable    bool
}

// CertFetcher fetches raw cert-page markup for a cert number.
type CertFetcher interface {
	FetchCert(ctx context.Context, certNumber string) (string, error)
}

// Runner executes the pipeline. Cache may be nil, in which case every run
// fetches fresh.
type Runner struct {
	Locator *ident.Locator
	Fetcher CertFetcher
	Cache   *cache.Policy
}

// Run locates a cert number on the listing page and resolves it to an
// outcome. Comparison is attempted only when the page yields both a
// parseable listing price and a matchable grade; when it cannot be, the
// record is returned without one.
func (r *Runner) Run(ctx context.Context, sess dom.Session) Outcome {
	certNumber, loc := r.Locator.Locate(ctx, sess)
	switch loc {
	case ident.OutcomeManualEntry:
		return Outcome{Kind: OutcomeManualEntry}
	case ident.OutcomeNotFound:
		return Outcome{Kind: OutcomeNotApplicable}
	}
	return r.RunForCert(ctx, certNumber, sess.View())
}

// RunForCert resolves a known cert number: cache lookup, fetch and extract
// on miss, cache write, then comparison against the listing page when one
// is supplied (view may be nil).
func (r *Runner) RunForCert(ctx context.Context, certNumber string, view *dom.View) Outcome {
	record, ok := r.lookupCache(ctx, certNumber)
	if !ok {
		rawHTML, err := r.Fetcher.FetchCert(ctx, certNumber)
		if err != nil {
			zap.L().Warn("pipeline: fetch failed",
				zap.String("cert", certNumber),
				zap.Error(err),
			)
			return Outcome{
				Kind:         OutcomeError,
				ErrorMessage: "could not load cert data for " + certNumber,
				Retryable:    true,
			}
		}
		extracted := extract.Extract(rawHTML, certNumber)
		record = &extracted
		if r.Cache != nil {
			r.Cache.StoreRecord(ctx, extracted)
		}
	}

	outcome := Outcome{Kind: OutcomeRecord, Record: record}
	if view != nil {
		outcome.Comparison = r.compareAgainstListing(view, record)
	}
	return outcome
}

func (r *Runner) lookupCache(ctx context.Context, certNumber string) (*model.CertRecord, bool) {
	if r.Cache == nil {
		return nil, false
	}
	return r.Cache.Lookup(ctx, certNumber)
}

func (r *Runner) compareAgainstListing(view *dom.View, record *model.CertRecord) *model.PriceComparison {
	priceText, ok := view.ListingPrice()
	if !ok {
		return nil
	}
	listingPrice, err := compare.ParsePrice(priceText)
	if err != nil {
		zap.L().Debug("pipeline: listing price unparseable",
			zap.String("price", priceText),
			zap.Error(err),
		)
		return nil
	}
	grade, ok := compare.ResolveGrade(view, record)
	if !ok {
		return nil
	}
	comparison, ok := compare.Compare(listingPrice, record, grade)
	if !ok {
		return nil
	}
	return comparison
}
