package analysis

import (
	"math"
	"sort"

	"github.com/codyseavey/deck-meta/backend/internal/cards"
	"github.com/codyseavey/deck-meta/backend/internal/models"
)

// Round2 rounds to two decimal places, the precision every published
// percentage uses.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Aggregate computes per-card usage statistics over the eligible subset of an
// indexed pool. total is the size of the eligible pool; percentages and
// distributions are relative to it, so re-aggregating a filtered pool is a
// full recompute, never an incremental adjustment of the baseline (a card
// that was filtered on becomes 100% of the new pool).
func Aggregate(idx *DeckIndex, eligible DeckSet, total int) []models.CardUsageStat {
	items := make([]models.CardUsageStat, 0, len(idx.presence))

	for _, cardID := range idx.CardIDs() {
		found := 0
		histogram := make(map[int]int)
		for deckID := range idx.presence[cardID] {
			if !eligible.Contains(deckID) {
				continue
			}
			found++
			histogram[idx.counts[cardID][deckID]]++
		}
		if found == 0 {
			continue
		}

		ref := idx.refs[cardID]
		items = append(items, models.CardUsageStat{
			ID:             cardID,
			Name:           ref.Name,
			Set:            ref.Set,
			Number:         ref.Number,
			Category:       string(ref.Category),
			Found:          found,
			Total:          total,
			Pct:            percentage(found, total),
			Dist:           buildDistribution(histogram, total),
			AlwaysIncluded: found == total,
		})
	}

	sortStats(items)
	return items
}

// BaselineReport aggregates the whole pool with no filters applied.
func BaselineReport(idx *DeckIndex) *models.SubsetReport {
	return Report(idx, idx.DeckIDs(), models.FilterSet{})
}

// Report builds a SubsetReport for an eligible deck set.
func Report(idx *DeckIndex, eligible DeckSet, filters models.FilterSet) *models.SubsetReport {
	total := len(eligible)
	// Duplicate deck IDs collapse in the eligible set but still count toward
	// an unfiltered pool's total.
	if filters.Empty() && len(eligible) == len(idx.deckIDs) {
		total = idx.poolSize
	}
	return &models.SubsetReport{
		DeckTotal: total,
		Items:     Aggregate(idx, eligible, total),
		Filters:   filters,
	}
}

func percentage(found, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(100 * float64(found) / float64(total))
}

// buildDistribution turns a copies -> players histogram into sorted entries.
// The sum of players across entries always equals the card's found count.
func buildDistribution(histogram map[int]int, total int) []models.DistributionEntry {
	dist := make([]models.DistributionEntry, 0, len(histogram))
	for copies, players := range histogram {
		dist = append(dist, models.DistributionEntry{
			Copies:  copies,
			Players: players,
			Percent: percentage(players, total),
		})
	}
	sort.Slice(dist, func(i, j int) bool {
		return dist[i].Copies < dist[j].Copies
	})
	return dist
}

// sortStats orders items by usage descending, then category display order,
// then name, for deterministic output.
func sortStats(items []models.CardUsageStat) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Pct != items[j].Pct {
			return items[i].Pct > items[j].Pct
		}
		ri := cards.Rank(cards.Category(items[i].Category))
		rj := cards.Rank(cards.Category(items[j].Category))
		if ri != rj {
			return ri < rj
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}
