// Package feed owns the in-memory news collection and its derived views
package feed

import (
	"sort"

	"github.com/ternlane/newsdesk/internal/models"
)

// ExtractTags derives the distinct tag facets across a collection: each
// item's comma-separated tag field is split, trimmed and unioned, then sorted
// lexicographically. Matching is exact-case, so "Bonds" and "bonds" are
// distinct facets. The "All" sentinel is a filter-engine concept and is not
// part of this set.
func ExtractTags(items []models.NewsItem) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		for _, tag := range item.Tags() {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
