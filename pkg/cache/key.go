package cache

import (
	"fmt"
	"net/url"
	"strings"
)

// Key identifies a cached page result by its request parameters.
type Key struct {
	// Country is the country filter as requested by the caller.
	Country string

	// Page is the 1-based page number.
	Page int

	// Limit is the requested page size.
	Limit int
}

// String generates the deterministic cache fingerprint.
// Format: cities:country:page=N:limit=M
//
// Example:
//
//	cities:Germany:page=1:limit=10
//
// Country is trimmed but not case-folded, and query-escaped so that no
// two distinct (country, page, limit) triples collide.
func (k Key) String() string {
	parts := []string{
		"cities",
		url.QueryEscape(strings.TrimSpace(k.Country)),
		fmt.Sprintf("page=%d", k.Page),
		fmt.Sprintf("limit=%d", k.Limit),
	}

	return strings.Join(parts, ":")
}
