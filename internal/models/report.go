package models

import (
	"fmt"
	"sort"
	"strings"
)

// Filter operators. An empty operator on an include filter means the card
// only has to be present; OperatorAny is the explicit spelling of the same
// thing. Exclude filters ignore the operator entirely.
const (
	OperatorEqual        = "="
	OperatorLess         = "<"
	OperatorGreater      = ">"
	OperatorGreaterEqual = ">="
	OperatorLessEqual    = "<="
	OperatorAny          = "any"
)

// FilterDescriptor is one include/exclude condition on a card's presence or
// copy count.
type FilterDescriptor struct {
	CardID   string `json:"cardId"`
	Operator string `json:"operator,omitempty"`
	Count    *int   `json:"count,omitempty"`
}

// Key returns a canonical string form used in cache keys and diagnostics.
func (f FilterDescriptor) Key() string {
	if f.Operator == "" && f.Count == nil {
		return f.CardID
	}
	count := "-"
	if f.Count != nil {
		count = fmt.Sprintf("%d", *f.Count)
	}
	return fmt.Sprintf("%s%s%s", f.CardID, f.Operator, count)
}

// FilterSet is a full filter selection, split into include and exclude lists
// by caller convention. Filters combine by logical AND.
type FilterSet struct {
	Include []FilterDescriptor `json:"include"`
	Exclude []FilterDescriptor `json:"exclude"`
}

// Key returns a canonical, order-insensitive string form of the filter set.
// Two selections that differ only in filter order produce the same key.
func (fs FilterSet) Key() string {
	inc := make([]string, len(fs.Include))
	for i, f := range fs.Include {
		inc[i] = f.Key()
	}
	exc := make([]string, len(fs.Exclude))
	for i, f := range fs.Exclude {
		exc[i] = f.Key()
	}
	sort.Strings(inc)
	sort.Strings(exc)
	return "+" + strings.Join(inc, ",") + "|-" + strings.Join(exc, ",")
}

// Empty reports whether the set carries no filters at all.
func (fs FilterSet) Empty() bool {
	return len(fs.Include) == 0 && len(fs.Exclude) == 0
}

// DistributionEntry is one bucket of a card's copy-count histogram: how many
// eligible decks play exactly Copies copies.
type DistributionEntry struct {
	Copies  int     `json:"copies"`
	Players int     `json:"players"`
	Percent float64 `json:"percent"`
}

// CardUsageStat is the found/total/percentage/distribution summary for one
// card over a deck pool.
type CardUsageStat struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Set            string              `json:"set"`
	Number         string              `json:"number"`
	Category       string              `json:"category"`
	Found          int                 `json:"found"`
	Total          int                 `json:"total"`
	Pct            float64             `json:"pct"`
	Dist           []DistributionEntry `json:"dist"`
	AlwaysIncluded bool                `json:"alwaysIncluded"`
}

// SubsetReport is the usage-stat report for a deck pool narrowed by a filter
// combination. A baseline report is simply a SubsetReport with empty filters.
type SubsetReport struct {
	DeckTotal int             `json:"deckTotal"`
	Items     []CardUsageStat `json:"items"`
	Filters   FilterSet       `json:"filters"`
}

// CardIndexSummary is the per-card entry of an archetype index document.
type CardIndexSummary struct {
	Name string  `json:"name"`
	Pct  float64 `json:"pct"`
}

// SubsetIndexEntry describes one deduplicated subset in an archetype index.
// PrimaryFilters is the first filter combination that produced the subset's
// content hash; later combinations with the same hash land in
// AlternateFilters.
type SubsetIndexEntry struct {
	DeckTotal        int         `json:"deckTotal"`
	PrimaryFilters   FilterSet   `json:"primaryFilters"`
	AlternateFilters []FilterSet `json:"alternateFilters"`
}

// ArchetypeIndex is the build-time artifact published alongside the per-subset
// report documents.
type ArchetypeIndex struct {
	Archetype           string                      `json:"archetype"`
	DeckTotal           int                         `json:"deckTotal"`
	TotalCombinations   int                         `json:"totalCombinations"`
	UniqueSubsets       int                         `json:"uniqueSubsets"`
	SkippedSmallSubsets int                         `json:"skippedSmallSubsets"`
	Cards               map[string]CardIndexSummary `json:"cards"`
	Subsets             map[string]SubsetIndexEntry `json:"subsets"`
}

// FilterReportRequest is the payload for POST /api/archetypes/:archetype/report
type FilterReportRequest struct {
	Include []FilterDescriptor `json:"include"`
	Exclude []FilterDescriptor `json:"exclude"`
	// MaxPlacement restricts the pool to decks that placed at or above the
	// given rank before filters run (0 = whole pool).
	MaxPlacement int `json:"maxPlacement,omitempty"`
}
