package models

// Recommendation is one client's exposure to one news story, as produced by
// the backend's recommendation engine. The news text is free-form and may
// contain "Topic:"/"Summary:" line markers.
type Recommendation struct {
	Ticker          string       `json:"ticker"`
	News            string       `json:"news"`
	Sources         []NewsSource `json:"sources,omitempty"`
	ClientName      string       `json:"client_name"`
	Recommendation  string       `json:"recommendation"`
	RateOfReturn    string       `json:"rate_of_return"`
	PortfolioRisk   string       `json:"portfolio_risk"`
	BankCommissions string       `json:"bank_commissions"`
	Tag             string       `json:"tag,omitempty"`
}

// ClientImpact is a derived view: one entry per distinct client impacted by a
// story. Impact is a human-readable excerpt, not a structured value.
type ClientImpact struct {
	Name   string `json:"name"`
	Impact string `json:"impact"`
}

// TagAll is the sentinel meaning "no tag restriction".
const TagAll = "All"

// FilterSelection is the ephemeral filter state for the news view.
type FilterSelection struct {
	Positive bool   `json:"positive"`
	Negative bool   `json:"negative"`
	Tag      string `json:"tag"`
}
