// Package cities implements the city query service: filtering and
// normalization of raw upstream entries, best-effort description
// enrichment, and the cache-aside authenticated fetch.
package cities

// City is a cleaned, enriched city entry. Name carries the normalized
// display form: no combining marks, no parenthetical content, title-cased
// per word.
type City struct {
	Name        string  `json:"name"`
	Pollution   float64 `json:"pollution"`
	Description *string `json:"description"`
}

// PageResult is one fully processed page of cities. Count always equals
// len(Cities); Limit echoes the requested page size, which the count may
// fall short of after filtering. City order matches upstream order.
type PageResult struct {
	Page   int    `json:"page"`
	Count  int    `json:"count"`
	Limit  int    `json:"limit"`
	Cities []City `json:"cities"`
}
