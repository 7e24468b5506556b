// Package ident locates and validates PSA certification numbers inside
// third-party listing pages.
package ident

import "regexp"

// platformIDPattern matches the marketplace's own 12-digit item IDs, which
// begin with 1-4. Kept even though the 8-10 length gate already excludes
// length 12: a future relaxation of the length rule would reactivate it.
var platformIDPattern = regexp.MustCompile(`^[1-4]\d{11}$`)

// IsPlausibleCertNumber reports whether a candidate string is shaped like a
// PSA certification number: 8 to 10 ASCII digits, and not a marketplace
// item ID.
func IsPlausibleCertNumber(candidate string) bool {
	if len(candidate) < 8 || len(candidate) > 10 {
		return false
	}
	for i := 0; i < len(candidate); i++ {
		if candidate[i] < '0' || candidate[i] > '9' {
			return false
		}
	}
	if len(candidate) == 12 && platformIDPattern.MatchString(candidate) {
		return false
	}
	return true
}
