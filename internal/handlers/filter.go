package handlers

import "strings"

// matchesQuery reports whether any of the fields contains the query as a
// case-insensitive substring. An empty query matches everything. List views
// fetch the full collection and filter in memory; there is no server-side
// search.
func matchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
