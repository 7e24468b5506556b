package ident

import (
	"strings"

	"github.com/slabcheck/slabcheck/internal/dom"
)

// IsLikelyGradedListing reports whether the page appears to be for a graded
// card at all. Used to decide between "not applicable" and "ask the user"
// when no cert number was found. Pure over the document snapshot.
func IsLikelyGradedListing(view *dom.View) bool {
	title := strings.ToLower(view.Title())
	if strings.Contains(title, strings.ToLower(brandTerm)) {
		return true
	}
	for _, kv := range view.KeyValuePairs() {
		if matchesCertVocabulary(kv.Label) || matchesCertVocabulary(kv.Value) {
			return true
		}
	}
	// Brand mention anywhere in short text blocks.
	for _, tn := range view.TextNodes() {
		if len(tn.Text) <= 120 && strings.Contains(tn.Text, brandTerm) {
			return true
		}
	}
	return false
}
