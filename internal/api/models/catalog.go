package models

import (
	"time"

	"github.com/TaylorONeal/jetsweep/internal/airport"
	"github.com/TaylorONeal/jetsweep/internal/conditions"
	"github.com/TaylorONeal/jetsweep/internal/recent"
)

// AirportListResponse is the airport picker data.
type AirportListResponse struct {
	Airports []airport.Option `json:"airports"`
	Count    int              `json:"count"`

	// Tiers lists the size tiers from smallest to largest.
	Tiers []airport.Tier `json:"tiers"`
}

// AirportResolveResponse is a resolved airport query.
type AirportResolveResponse struct {
	Query      string          `json:"query"`
	Profile    airport.Profile `json:"profile"`
	IsEstimate bool            `json:"isEstimate"`
}

// ConditionsResponse is the analysis of one departure time.
type ConditionsResponse struct {
	At          time.Time             `json:"at"`
	Conditions  conditions.Conditions `json:"conditions"`
	Description string                `json:"description"`
}

// RecentSearch is a stored search with its display age.
type RecentSearch struct {
	recent.Search
	Age string `json:"age"`
}

// RecentSearchesResponse lists recent searches, newest first.
type RecentSearchesResponse struct {
	Searches []RecentSearch `json:"searches"`
}

// NewRecentSearchesResponse attaches display ages relative to now.
func NewRecentSearchesResponse(searches []recent.Search, now time.Time) RecentSearchesResponse {
	out := make([]RecentSearch, len(searches))
	for i, s := range searches {
		out[i] = RecentSearch{Search: s, Age: recent.FormatAge(s.CreatedAt, now)}
	}
	return RecentSearchesResponse{Searches: out}
}
