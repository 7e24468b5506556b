package ident

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/slabcheck/slabcheck/internal/dom"
)

// Scheduler abstracts the staged delays between reveal and rescan so tests
// can drive the state machine with a deterministic clock.
type Scheduler interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerScheduler sleeps on real timers.
type TimerScheduler struct{}

func (TimerScheduler) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Staged rescan delays: first rescan at ~0.5s, second at ~1.5s cumulative.
const (
	firstRescanDelay  = 500 * time.Millisecond
	secondRescanDelay = 1 * time.Second
)

type revealState int

const (
	stateIdle revealState = iota
	stateTriggered
	stateAwaitingFirstRescan
	stateAwaitingSecondRescan
	stateFound
	stateNotFound
)

// Reveal drives the interactive reveal step: click a reveal control, wait
// for the page to mutate, rescan, and dismiss whatever overlay appeared.
type Reveal struct {
	sched Scheduler
}

// NewReveal creates a Reveal driven by the given scheduler.
func NewReveal(sched Scheduler) *Reveal {
	return &Reveal{sched: sched}
}

// Reveal controls carry a data attribute in newer layouts; older ones are
// plain buttons labeled "see all" / "check data" near certification text.
var revealControlSelectors = []string{
	"[data-testid*='reveal']",
	"[data-vault-reveal]",
	"button[data-action*='reveal']",
}

var genericRevealLabels = []string{"see all", "check data", "show more"}

// Run attempts the reveal step. triggered reports whether a reveal control
// was found and activated; when triggered, the locator must treat this step
// as terminal regardless of ok.
func (r *Reveal) Run(ctx context.Context, sess dom.Session) (triggered bool, id string, ok bool) {
	view := sess.View()

	selector, found := findRevealControl(view)
	if !found {
		return false, "", false
	}

	if err := sess.Activate(selector); err != nil {
		zap.L().Debug("ident: reveal control not activatable",
			zap.String("selector", selector),
			zap.Error(err),
		)
		return false, "", false
	}
	state := stateTriggered

	for state != stateFound && state != stateNotFound {
		switch state {
		case stateTriggered:
			if err := r.sched.Sleep(ctx, firstRescanDelay); err != nil {
				state = stateNotFound
				break
			}
			state = stateAwaitingFirstRescan
		case stateAwaitingFirstRescan:
			if id, ok = searchRevealedView(sess.View()); ok {
				state = stateFound
				break
			}
			if err := r.sched.Sleep(ctx, secondRescanDelay); err != nil {
				state = stateNotFound
				break
			}
			state = stateAwaitingSecondRescan
		case stateAwaitingSecondRescan:
			if id, ok = searchRevealedView(sess.View()); ok {
				state = stateFound
			} else {
				state = stateNotFound
			}
		}
	}

	dismissOverlay(sess)
	return true, id, state == stateFound
}

// findRevealControl locates a clickable reveal control, by data attribute
// first, then by generic label text in a container mentioning certification
// vocabulary.
func findRevealControl(view *dom.View) (string, bool) {
	for _, sel := range revealControlSelectors {
		if view.Find(sel).Length() > 0 {
			return sel, true
		}
	}

	var matched string
	view.Find("button, a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		for _, label := range genericRevealLabels {
			if strings.Contains(text, label) && matchesCertVocabulary(s.Parent().Text()) {
				// The session activates the first element matching a
				// selector, so the matched control needs its own path,
				// not the shared tag query.
				matched = dom.UniqueSelector(s.Nodes[0])
				return false
			}
		}
		return true
	})
	return matched, matched != ""
}

// Proximity window for the post-reveal text-node search.
const revealSearchWindow = 5

// searchRevealedView runs the dedicated search over the mutated document:
// explicit certification phrases, a proximity scan around certification
// vocabulary, then the structured internal marker in raw markup.
func searchRevealedView(view *dom.View) (string, bool) {
	if id, ok := findCertPhrase(view.Text()); ok {
		return id, true
	}

	nodes := view.TextNodes()
	for i, tn := range nodes {
		if !matchesCertVocabulary(tn.Text) {
			continue
		}
		lo := max(0, i-revealSearchWindow)
		hi := min(len(nodes), i+revealSearchWindow+1)
		for _, near := range nodes[lo:hi] {
			if id, ok := findDigitRun(near.Text); ok {
				return id, true
			}
		}
	}

	return findInternalMarker(view.Html())
}

// Overlay dismissal techniques, tried in order. Best-effort: a failure here
// never blocks returning a found cert number.
func dismissOverlay(sess dom.Session) {
	attempts := []struct {
		name string
		do   func() error
	}{
		{"explicit_close", func() error { return sess.Activate("[data-testid*='close'], [aria-label='Close']") }},
		{"icon_close", func() error { return sess.Activate(".icon-close, .close-icon") }},
		{"named_close", func() error { return sess.Activate("button.close, .close") }},
		{"escape_key", sess.SendEscape},
	}
	for _, a := range attempts {
		if err := a.do(); err == nil {
			return
		}
	}
	zap.L().Debug("ident: overlay dismissal exhausted all techniques")
}
