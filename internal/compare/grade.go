package compare

import (
	"regexp"
	"strings"

	"github.com/slabcheck/slabcheck/internal/dom"
	"github.com/slabcheck/slabcheck/internal/model"
)

// "PSA 10", "PSA 8.5" as mentioned on listing pages.
var brandGradePattern = regexp.MustCompile(`(?i)\b(PSA\s+\d{1,2}(?:\.\d)?)\b`)

// ResolveGrade determines the listing's grade. Sources, in order: the
// item-attribute grade field, a brand-mention text span, the page title,
// and finally the already-extracted record grade.
func ResolveGrade(view *dom.View, record *model.CertRecord) (string, bool) {
	if value, ok := view.SpecificsValue("grade"); ok {
		if m := brandGradePattern.FindString(value); m != "" {
			return normalizeGrade(m), true
		}
		if value != "" {
			return value, true
		}
	}

	for _, tn := range view.TextNodes() {
		if m := brandGradePattern.FindString(tn.Text); m != "" {
			return normalizeGrade(m), true
		}
	}

	if m := brandGradePattern.FindString(view.Title()); m != "" {
		return normalizeGrade(m), true
	}

	if record != nil && record.Grade != model.UnknownGrade && record.Grade != "" {
		return record.Grade, true
	}
	return "", false
}

func normalizeGrade(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}
