package feed

import (
	"github.com/ternlane/newsdesk/internal/models"
)

// ApplyFilter returns the items passing the selection, preserving order.
// It is pure and idempotent: reapplying the same selection to its own output
// yields the same output.
//
// Polarity carries the dashboard's historical toggle semantics: both toggles
// off, or both on, means no polarity restriction; only one on restricts to
// that sign. Zero sentiment counts as positive.
func ApplyFilter(items []models.NewsItem, sel models.FilterSelection) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		if !passesPolarity(&item, sel) {
			continue
		}
		if !passesTag(&item, sel) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func passesPolarity(item *models.NewsItem, sel models.FilterSelection) bool {
	if sel.Positive == sel.Negative {
		return true
	}
	if sel.Positive {
		return item.SentimentScore >= 0
	}
	return item.SentimentScore < 0
}

func passesTag(item *models.NewsItem, sel models.FilterSelection) bool {
	// An empty tag selection is treated as the "All" sentinel.
	if sel.Tag == models.TagAll || sel.Tag == "" {
		return true
	}
	return item.HasTag(sel.Tag)
}
