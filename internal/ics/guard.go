package ics

import "crypto/subtle"

// Authorize reports whether supplied may read the feed. An empty configured
// token leaves the feed open; otherwise the match is exact and case-sensitive.
func Authorize(supplied, configured string) bool {
	if configured == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}
