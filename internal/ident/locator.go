package ident

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/dom"
)

// Outcome is the terminal result of a locate pass.
type Outcome string

const (
	// OutcomeFound carries a validated cert number.
	OutcomeFound Outcome = "found"
	// OutcomeNotFound means the page is not a graded-card listing.
	OutcomeNotFound Outcome = "not_found"
	// OutcomeManualEntry means the page looks like a graded-card listing
	// but no cert number could be located automatically.
	OutcomeManualEntry Outcome = "manual_entry"
)

// Strategy is one detection heuristic over a document snapshot. Strategies
// share a signature so the chain stays an ordered list rather than nested
// conditionals.
type Strategy struct {
	Name   string
	Locate func(view *dom.View) (string, bool)
}

// Locator runs the ordered detection chain over a page session.
//
// The chain order encodes confidence: structured key/value fields, then the
// interactive reveal, then item-attribute fields, the description frame,
// the title, and last the page-wide heuristic. When the reveal step is
// triggered it is terminal: the later heuristics never run on that path,
// and a double rescan failure falls through to manual entry. That
// asymmetry mirrors the original behavior of detaching control flow after
// an interactive trigger; whether methods 3-6 should also run as a safety
// net after a failed reveal is an open product question, so it is
// preserved rather than fixed here.
type Locator struct {
	reveal *Reveal
	post   []Strategy
}

// NewLocator builds a Locator with the default strategy chain and the given
// scheduler driving the reveal delays.
func NewLocator(sched Scheduler) *Locator {
	return &Locator{
		reveal: NewReveal(sched),
		post: []Strategy{
			{Name: "item_specifics", Locate: locateInSpecifics},
			{Name: "description_frame", Locate: locateInDescriptionFrame},
			{Name: "page_title", Locate: locateInTitle},
			{Name: "page_wide", Locate: locatePageWide},
		},
	}
}

// Locate produces at most one cert number from the page.
func (l *Locator) Locate(ctx context.Context, sess dom.Session) (string, Outcome) {
	view := sess.View()

	if id, ok := scanKeyValues(view); ok {
		zap.L().Debug("ident: found via key/value scan", zap.String("cert", id))
		return id, OutcomeFound
	}

	if triggered, id, ok := l.reveal.Run(ctx, sess); triggered {
		if ok {
			zap.L().Debug("ident: found via reveal", zap.String("cert", id))
			return id, OutcomeFound
		}
		zap.L().Debug("ident: reveal triggered but no cert found")
		return "", OutcomeManualEntry
	}

	for _, s := range l.post {
		id, ok := s.Locate(view)
		if ok {
			zap.L().Debug("ident: strategy matched",
				zap.String("strategy", s.Name),
				zap.String("cert", id),
			)
			return id, OutcomeFound
		}
		zap.L().Debug("ident: strategy yielded nothing, trying next",
			zap.String("strategy", s.Name),
		)
	}

	if IsLikelyGradedListing(view) {
		return "", OutcomeManualEntry
	}
	return "", OutcomeNotFound
}

// scanKeyValues scans labeled key/value elements for an 8+ digit value. A
// label matching the certification vocabulary wins immediately; otherwise
// the first digit-bearing pair is held as a weak candidate and used only if
// no strong match appears.
func scanKeyValues(view *dom.View) (string, bool) {
	var weak string
	for _, kv := range view.KeyValuePairs() {
		id, ok := findDigitRun(kv.Value)
		if !ok {
			continue
		}
		if matchesCertVocabulary(kv.Label) {
			return id, true
		}
		if weak == "" {
			weak = id
		}
	}
	return weak, weak != ""
}

// Item-attribute field roles tried in order: grader name pairing, explicit
// number fields, then the grade field's embedded "PSA 10 #12345678" shape.
func locateInSpecifics(view *dom.View) (string, bool) {
	for _, terms := range [][]string{
		{"certification number", "certification"},
		{"authentication number", "authentication"},
		{"cert number", "cert #", "cert"},
	} {
		if value, ok := view.SpecificsValue(terms...); ok {
			if id, found := findDigitRun(value); found {
				return id, true
			}
		}
	}
	if value, ok := view.SpecificsValue("grade"); ok {
		for _, m := range gradeEmbeddedPattern.FindAllStringSubmatch(value, -1) {
			if IsPlausibleCertNumber(m[1]) {
				return m[1], true
			}
		}
	}
	// Generic pass over every field in the section.
	for _, kv := range view.KeyValuePairs() {
		if id, ok := findCertPhrase(kv.Label + " " + kv.Value); ok {
			return id, true
		}
	}
	return "", false
}

func locateInDescriptionFrame(view *dom.View) (string, bool) {
	frame, ok := view.DescriptionFrame()
	if !ok {
		return "", false
	}
	return findCertPhrase(frame.Text())
}

func locateInTitle(view *dom.View) (string, bool) {
	return findCertPhrase(view.Title())
}

// Cost bounds for the page-wide fallback: skip containers with many
// children and oversized text blocks.
const (
	maxContainerChildren = 10
	maxTextBlockLen      = 500
)

func locatePageWide(view *dom.View) (string, bool) {
	for _, tn := range view.TextNodes() {
		if !strings.Contains(tn.Text, brandTerm) {
			continue
		}
		if len(tn.Text) > maxTextBlockLen {
			continue
		}
		if tn.Parent != nil && dom.ChildElementCount(tn.Parent) > maxContainerChildren {
			continue
		}
		if id, ok := findCertPhrase(tn.Text); ok {
			return id, true
		}
		if id, ok := findDigitRun(tn.Text); ok {
			return id, true
		}
	}
	return "", false
}
