// Package impact maps stories to the clients they affect
package impact

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ternlane/newsdesk/internal/models"
)

// excerptLen is the fixed prefix length of a client-impact excerpt.
const excerptLen = 80

// MatchClients filters a recommendations corpus by textual relevance to a
// ticker/headline pair and aggregates the matches into a deduplicated
// client-impact list, in first-occurrence order.
//
// A recommendation matches when its ticker equals the requested one
// (case-insensitive), when the full headline appears as a substring of its
// news text, or when the ticker appears as a whole token in its news or
// recommendation text. "AAPL" matches "buy AAPL today" but not "AAPLE".
func MatchClients(ticker, headline string, corpus []models.Recommendation) []models.ClientImpact {
	impacts := []models.ClientImpact{}
	if len(corpus) == 0 {
		return impacts
	}

	pattern := tickerPattern(ticker)
	headlineLower := strings.ToLower(headline)

	seen := make(map[string]struct{})
	for _, rec := range corpus {
		if !matches(&rec, ticker, headlineLower, pattern) {
			continue
		}
		if _, ok := seen[rec.ClientName]; ok {
			continue
		}
		seen[rec.ClientName] = struct{}{}
		impacts = append(impacts, models.ClientImpact{
			Name:   rec.ClientName,
			Impact: excerpt(rec.News),
		})
	}
	return impacts
}

func matches(rec *models.Recommendation, ticker, headlineLower string, pattern *regexp.Regexp) bool {
	if rec.Ticker != "" && strings.EqualFold(rec.Ticker, ticker) {
		return true
	}
	if headlineLower != "" && strings.Contains(strings.ToLower(rec.News), headlineLower) {
		return true
	}
	if pattern != nil {
		return pattern.MatchString(rec.News) || pattern.MatchString(rec.Recommendation)
	}
	return false
}

// tickerPattern matches the ticker as a token bounded by non-word characters
// or string edges, case-insensitive.
func tickerPattern(ticker string) *regexp.Regexp {
	if strings.TrimSpace(ticker) == "" {
		return nil
	}
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ticker) + `\b`)
}

// excerpt produces the display excerpt for an impact entry: a fixed-length
// prefix of the recommendation's news text plus an ellipsis marker. It is not
// meant to be semantically complete.
func excerpt(news string) string {
	if utf8.RuneCountInString(news) <= excerptLen {
		return news + "..."
	}
	runes := []rune(news)
	return string(runes[:excerptLen]) + "..."
}
