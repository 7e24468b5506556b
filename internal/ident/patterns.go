package ident

import (
	"regexp"
	"strings"
)

// certVocabulary is the label vocabulary that marks a key/value field or a
// text span as certification-related. Matching is case-insensitive
// substring.
var certVocabulary = []string{
	"certification",
	"cert",
	"authentication",
	"grading",
	"psa",
	"serial",
}

// brandTerm is the literal grading-authority mention used by the page-wide
// heuristics.
const brandTerm = "PSA"

var (
	// "Certification #12345678", "Cert No: 12345678", "PSA Cert 12345678".
	certPhrasePattern = regexp.MustCompile(`(?i)(?:cert(?:ification)?|auth(?:entication)?)\s*(?:number|no\.?|#)?\s*[:#]?\s*(\d{8,10})`)

	// "PSA 10 #12345678" style: grade field with an embedded cert number.
	gradeEmbeddedPattern = regexp.MustCompile(`(?i)psa\s*\d{1,2}(?:\.\d)?\s*#\s*(\d{8,10})`)

	// Internal structured marker of the form NAMESPACE::RECORD::<digits>,
	// found in attributes, attribute-embedded JSON, or raw markup.
	internalMarkerPattern = regexp.MustCompile(`[A-Z]+::[A-Z]+::(\d{8,10})`)

	digitRunPattern = regexp.MustCompile(`\d{8,}`)
)

// matchesCertVocabulary reports whether the text mentions any
// certification-related term.
func matchesCertVocabulary(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range certVocabulary {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// findCertPhrase extracts a plausible cert number from a certification
// phrase within the text.
func findCertPhrase(text string) (string, bool) {
	for _, pattern := range []*regexp.Regexp{certPhrasePattern, gradeEmbeddedPattern} {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if IsPlausibleCertNumber(m[1]) {
				return m[1], true
			}
		}
	}
	return "", false
}

// findDigitRun extracts the first plausible 8+ digit run from the text.
func findDigitRun(text string) (string, bool) {
	for _, m := range digitRunPattern.FindAllString(text, -1) {
		if IsPlausibleCertNumber(m) {
			return m, true
		}
	}
	return "", false
}

// findInternalMarker extracts a cert number from the structured internal
// marker format.
func findInternalMarker(raw string) (string, bool) {
	for _, m := range internalMarkerPattern.FindAllStringSubmatch(raw, -1) {
		if IsPlausibleCertNumber(m[1]) {
			return m[1], true
		}
	}
	return "", false
}
