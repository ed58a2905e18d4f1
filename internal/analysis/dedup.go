package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/codyseavey/deck-meta/backend/internal/models"
)

// IndexOptions configure the build-time index path.
type IndexOptions struct {
	ComboOptions
	// MinSubsetSize is the smallest matching deck count a subset needs to be
	// published. Smaller subsets are counted for diagnostics but excluded
	// from output. Larger values trade completeness for smaller payloads.
	MinSubsetSize int
}

func (o IndexOptions) validate() error {
	if o.MinSubsetSize < 1 {
		return fmt.Errorf("min subset size must be at least 1, got %d", o.MinSubsetSize)
	}
	if o.MaxCountVariations < 0 || o.MaxCrossFilters < 0 {
		return fmt.Errorf("combination limits must not be negative")
	}
	if o.MinCardUsagePercent < 0 || o.MinCardUsagePercent > 100 {
		return fmt.Errorf("min card usage percent must be in [0,100], got %v", o.MinCardUsagePercent)
	}
	return nil
}

// IndexResult is the output of one archetype's build-time run: the index
// document plus the full report for each published subset, keyed by subset id.
type IndexResult struct {
	Index   *models.ArchetypeIndex
	Reports map[string]*models.SubsetReport
}

// ContentHash fingerprints a report's item list. The serialization writes
// every field in a fixed order so two reports with identical statistics
// always hash identically; the hash itself is SHA-256 hex.
func ContentHash(items []models.CardUsageStat) string {
	h := sha256.New()
	for _, item := range items {
		fmt.Fprintf(h, "%s\x1f%s\x1f%s\x1f%s\x1f%d\x1f%d\x1f%.2f\x1f%t\x1f",
			item.ID, item.Name, item.Set, item.Number,
			item.Found, item.Total, item.Pct, item.AlwaysIncluded)
		for _, d := range item.Dist {
			fmt.Fprintf(h, "%d:%d:%.2f,", d.Copies, d.Players, d.Percent)
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BuildArchetypeIndex runs the full build-time pipeline for one pool:
// enumerate combinations, collapse combinations whose resulting statistics
// hash identically, and drop subsets below the publish threshold. The first
// combination to produce a hash becomes the subset's primary filter set;
// later ones are recorded as alternates.
func BuildArchetypeIndex(archetype string, idx *DeckIndex, opts IndexOptions) (*IndexResult, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid index options: %w", err)
	}

	baseline := BaselineReport(idx)
	combos, evaluated := GenerateCombinations(idx, baseline.Items, opts.ComboOptions)

	index := &models.ArchetypeIndex{
		Archetype:         archetype,
		DeckTotal:         baseline.DeckTotal,
		TotalCombinations: evaluated,
		Cards:             make(map[string]models.CardIndexSummary, len(baseline.Items)),
		Subsets:           make(map[string]models.SubsetIndexEntry),
	}
	for _, item := range baseline.Items {
		index.Cards[item.ID] = models.CardIndexSummary{Name: item.Name, Pct: item.Pct}
	}

	result := &IndexResult{
		Index:   index,
		Reports: make(map[string]*models.SubsetReport),
	}

	subsetByHash := make(map[string]string) // content hash -> subset id
	skippedHashes := make(map[string]bool)  // small subsets, counted once

	for _, combo := range combos {
		report := Report(idx, combo.Eligible, combo.Filters)
		hash := ContentHash(report.Items)

		if subsetID, ok := subsetByHash[hash]; ok {
			entry := index.Subsets[subsetID]
			entry.AlternateFilters = append(entry.AlternateFilters, combo.Filters)
			index.Subsets[subsetID] = entry
			continue
		}
		if skippedHashes[hash] {
			continue
		}

		if report.DeckTotal < opts.MinSubsetSize {
			skippedHashes[hash] = true
			index.SkippedSmallSubsets++
			continue
		}

		subsetID := fmt.Sprintf("subset_%03d", len(subsetByHash)+1)
		subsetByHash[hash] = subsetID
		index.Subsets[subsetID] = models.SubsetIndexEntry{
			DeckTotal:        report.DeckTotal,
			PrimaryFilters:   combo.Filters,
			AlternateFilters: []models.FilterSet{},
		}
		result.Reports[subsetID] = report
	}

	index.UniqueSubsets = len(subsetByHash)
	return result, nil
}
