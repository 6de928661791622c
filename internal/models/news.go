// Package models defines the domain types shared across Newsdesk services
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// NewsSource represents one article backing a story.
type NewsSource struct {
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Link           string   `json:"link"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
	SentimentScore *float64 `json:"sentiment_score,omitempty"`
}

// NewsItem is the canonical story shape the dashboard works with.
// The backend has shipped several payload shapes over time (legacy
// single-source items, multi-source items, recommendation-derived items);
// Normalize folds all of them into this one model.
type NewsItem struct {
	Ticker         string       `json:"ticker"`
	Tag            string       `json:"tag"` // comma-separated category list
	Title          string       `json:"title"`
	Summary        string       `json:"summary"`
	News           string       `json:"news,omitempty"` // raw combined text
	Sources        []NewsSource `json:"sources"`
	SentimentScore float64      `json:"sentiment_score"`
	RelevanceScore *float64     `json:"relevance_score,omitempty"`
	Reason         string       `json:"reason,omitempty"`
	Source         string       `json:"source,omitempty"` // legacy single-source name
	Link           string       `json:"link,omitempty"`   // legacy single-source URL
}

// IsPositive classifies polarity by sentiment sign. Zero counts as positive.
func (n *NewsItem) IsPositive() bool {
	return n.SentimentScore >= 0
}

// Tags returns the comma-split, trimmed, non-empty tag segments.
func (n *NewsItem) Tags() []string {
	parts := strings.Split(n.Tag, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// HasTag reports whether the exact segment appears in the tag list.
// Matching is case-sensitive, whole segment only.
func (n *NewsItem) HasTag(tag string) bool {
	for _, t := range n.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}

// DisplaySources returns the authoritative source list, synthesizing a single
// entry from the legacy source/link pair when the list is empty and both
// legacy fields are present.
func (n *NewsItem) DisplaySources() []NewsSource {
	if len(n.Sources) > 0 {
		return n.Sources
	}
	if n.Source != "" && n.Link != "" {
		return []NewsSource{{Name: n.Source, Title: n.Title, Link: n.Link}}
	}
	return nil
}

// Normalize converts an arbitrary backend record into a NewsItem. It never
// fails: absent fields coerce to type-appropriate defaults, non-string values
// are stringified, and non-numeric scores fall back per field.
func Normalize(raw map[string]any) NewsItem {
	item := NewsItem{
		Ticker:  coerceString(raw["ticker"]),
		Tag:     coerceString(raw["tag"]),
		Title:   coerceString(raw["title"]),
		Summary: coerceString(raw["summary"]),
		News:    coerceString(raw["news"]),
		Reason:  coerceString(raw["reason"]),
		Sources: normalizeSources(raw["sources"]),
	}

	if item.Title == "" {
		item.Title = coerceString(raw["headline"])
	}

	// Legacy feeds shipped the score under "sentiment".
	if score, ok := coerceFloat(raw["sentiment_score"]); ok {
		item.SentimentScore = score
	} else if score, ok := coerceFloat(raw["sentiment"]); ok {
		item.SentimentScore = score
	}
	if score, ok := coerceFloat(raw["relevance_score"]); ok {
		item.RelevanceScore = &score
	}

	// When sources are present they are authoritative; the legacy fields
	// mirror sources[0]. Otherwise carry the raw legacy fields through.
	if len(item.Sources) > 0 {
		item.Source = item.Sources[0].Name
		item.Link = item.Sources[0].Link
	} else {
		item.Source = coerceString(raw["source"])
		item.Link = coerceString(raw["link"])
	}

	return item
}

func normalizeSources(v any) []NewsSource {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return []NewsSource{}
	}

	sources := make([]NewsSource, 0, len(list))
	for _, entry := range list {
		fields, _ := entry.(map[string]any)
		src := NewsSource{
			Name:  coerceString(fields["name"]),
			Title: coerceString(fields["title"]),
			Link:  coerceString(fields["link"]),
		}
		if score, ok := coerceFloat(fields["relevance_score"]); ok {
			src.RelevanceScore = &score
		}
		if score, ok := coerceFloat(fields["sentiment_score"]); ok {
			src.SentimentScore = &score
		}
		sources = append(sources, src)
	}
	return sources
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func coerceFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case nil:
		return 0, false
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
