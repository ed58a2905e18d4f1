package analysis

import (
	"sort"

	"github.com/codyseavey/deck-meta/backend/internal/models"
)

// ComboOptions bound the build-time combination enumeration. Values come from
// configuration, not hardcoded constants.
type ComboOptions struct {
	// MinCardUsagePercent is the baseline usage a card needs to seed
	// combinations at all.
	MinCardUsagePercent float64
	// MaxCrossFilters caps how many top cards participate in cross
	// include/exclude pairs.
	MaxCrossFilters int
	// MaxCountVariations caps how many per-count "=" filters each seed card
	// contributes.
	MaxCountVariations int
}

// Combination is one evaluated filter combination and the deck subset it
// selects.
type Combination struct {
	Filters  models.FilterSet
	Eligible DeckSet
}

// GenerateCombinations enumerates single-card and cross-card filter
// combinations over the pool, evaluates each through the filter engine, and
// drops the useless ones: combinations selecting no decks, and combinations
// selecting the entire unfiltered pool (no-ops). Returns the surviving
// combinations and the number of candidates evaluated.
func GenerateCombinations(idx *DeckIndex, baseline []models.CardUsageStat, opts ComboOptions) ([]Combination, int) {
	seeds := meaningfulCards(baseline, opts.MinCardUsagePercent)

	var candidates []models.FilterSet
	for _, stat := range seeds {
		candidates = append(candidates, singleCardCombos(idx, stat, opts)...)
	}
	candidates = append(candidates, crossCombos(idx, seeds, opts)...)

	combos := make([]Combination, 0, len(candidates))
	for _, fs := range candidates {
		eligible := ApplyFilters(idx, fs)
		if len(eligible) == 0 || len(eligible) == len(idx.deckIDs) {
			continue
		}
		combos = append(combos, Combination{Filters: fs, Eligible: eligible})
	}
	return combos, len(candidates)
}

// meaningfulCards returns baseline stats at or above the usage floor, in
// baseline order (usage descending).
func meaningfulCards(baseline []models.CardUsageStat, minPct float64) []models.CardUsageStat {
	out := make([]models.CardUsageStat, 0, len(baseline))
	for _, stat := range baseline {
		if stat.Pct >= minPct {
			out = append(out, stat)
		}
	}
	return out
}

// singleCardCombos produces the per-card combinations for one seed: a bare
// include, an "=" include for each of its most-played copy counts, a ">="
// include anchored at the second-most-common count, and a bare exclude.
func singleCardCombos(idx *DeckIndex, stat models.CardUsageStat, opts ComboOptions) []models.FilterSet {
	var out []models.FilterSet

	out = append(out, models.FilterSet{
		Include: []models.FilterDescriptor{{CardID: stat.ID}},
	})

	counts := popularCounts(idx, stat.ID)
	limit := opts.MaxCountVariations
	if limit > len(counts) {
		limit = len(counts)
	}
	for i := 0; i < limit; i++ {
		count := counts[i]
		out = append(out, models.FilterSet{
			Include: []models.FilterDescriptor{{
				CardID:   stat.ID,
				Operator: models.OperatorEqual,
				Count:    &count,
			}},
		})
	}
	if len(counts) >= 2 {
		anchor := counts[1]
		out = append(out, models.FilterSet{
			Include: []models.FilterDescriptor{{
				CardID:   stat.ID,
				Operator: models.OperatorGreaterEqual,
				Count:    &anchor,
			}},
		})
	}

	out = append(out, models.FilterSet{
		Exclude: []models.FilterDescriptor{{CardID: stat.ID}},
	})

	return out
}

// crossCombos pairs the top cards by usage: every (include A, exclude B)
// with A != B, plus one count-qualified include of A with the same exclude.
func crossCombos(idx *DeckIndex, seeds []models.CardUsageStat, opts ComboOptions) []models.FilterSet {
	top := seeds
	if opts.MaxCrossFilters < len(top) {
		top = top[:opts.MaxCrossFilters]
	}

	var out []models.FilterSet
	for _, include := range top {
		counts := popularCounts(idx, include.ID)
		for _, exclude := range top {
			if include.ID == exclude.ID {
				continue
			}
			out = append(out, models.FilterSet{
				Include: []models.FilterDescriptor{{CardID: include.ID}},
				Exclude: []models.FilterDescriptor{{CardID: exclude.ID}},
			})
			if len(counts) > 0 {
				count := counts[0]
				out = append(out, models.FilterSet{
					Include: []models.FilterDescriptor{{
						CardID:   include.ID,
						Operator: models.OperatorEqual,
						Count:    &count,
					}},
					Exclude: []models.FilterDescriptor{{CardID: exclude.ID}},
				})
			}
		}
	}
	return out
}

// popularCounts returns the distinct copy counts played for a card across
// the whole pool, most-played first. Ties break toward the higher count so
// "4 copies" outranks "1 copy" at equal popularity.
func popularCounts(idx *DeckIndex, cardID string) []int {
	histogram := make(map[int]int)
	for deckID := range idx.presence[cardID] {
		histogram[idx.counts[cardID][deckID]]++
	}

	counts := make([]int, 0, len(histogram))
	for copies := range histogram {
		counts = append(counts, copies)
	}
	sort.Slice(counts, func(i, j int) bool {
		if histogram[counts[i]] != histogram[counts[j]] {
			return histogram[counts[i]] > histogram[counts[j]]
		}
		return counts[i] > counts[j]
	})
	return counts
}
