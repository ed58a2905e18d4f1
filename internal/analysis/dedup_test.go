package analysis

import (
	"strings"
	"testing"

	"github.com/codyseavey/deck-meta/backend/internal/models"
)

func TestContentHashDeterministic(t *testing.T) {
	report := BaselineReport(lunatonePool())

	if ContentHash(report.Items) != ContentHash(report.Items) {
		t.Error("hashing the same items twice should be identical")
	}
	if len(ContentHash(report.Items)) != 64 {
		t.Error("expected a sha256 hex digest")
	}
}

func TestContentHashMatchesForEqualSubsets(t *testing.T) {
	idx := lunatonePool()

	// Two different filter combinations that select the same decks produce
	// the same statistics, and therefore the same hash.
	one := ApplyFilters(idx, models.FilterSet{
		Include: []models.FilterDescriptor{{CardID: "SVI~007"}},
	})
	count := 2
	two := ApplyFilters(idx, models.FilterSet{
		Include: []models.FilterDescriptor{{
			CardID: "SVI~007", Operator: models.OperatorGreaterEqual, Count: &count,
		}},
	})

	hashOne := ContentHash(Aggregate(idx, one, len(one)))
	hashTwo := ContentHash(Aggregate(idx, two, len(two)))
	if hashOne != hashTwo {
		t.Error("equal subsets should hash identically")
	}

	different := ApplyFilters(idx, models.FilterSet{
		Exclude: []models.FilterDescriptor{{CardID: "SVI~007"}},
	})
	hashDifferent := ContentHash(Aggregate(idx, different, len(different)))
	if hashOne == hashDifferent {
		t.Error("different subsets should hash differently")
	}
}

func TestBuildArchetypeIndexMergesDuplicates(t *testing.T) {
	idx := comboPool()

	result, err := BuildArchetypeIndex("test", idx, IndexOptions{
		ComboOptions:  defaultComboOptions(),
		MinSubsetSize: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	index := result.Index
	if index.Archetype != "test" || index.DeckTotal != 4 {
		t.Errorf("unexpected index header: %+v", index)
	}
	if index.TotalCombinations == 0 {
		t.Error("expected evaluated combinations to be counted")
	}
	if index.UniqueSubsets != len(index.Subsets) {
		t.Errorf("uniqueSubsets %d disagrees with subset map size %d",
			index.UniqueSubsets, len(index.Subsets))
	}

	// Splitter's bare include and its ">=2" include select the same three
	// decks: the second combination must land in alternateFilters of the
	// first subset, not create a new one.
	var merged bool
	for _, entry := range index.Subsets {
		if len(entry.AlternateFilters) > 0 {
			merged = true
		}
	}
	if !merged {
		t.Error("expected at least one combination merged as an alternate")
	}

	// Every published subset has its report document.
	for subsetID := range index.Subsets {
		if !strings.HasPrefix(subsetID, "subset_") {
			t.Errorf("unexpected subset id %q", subsetID)
		}
		report, ok := result.Reports[subsetID]
		if !ok {
			t.Errorf("missing report for %s", subsetID)
			continue
		}
		if report.DeckTotal != index.Subsets[subsetID].DeckTotal {
			t.Errorf("%s: report deckTotal %d != index deckTotal %d",
				subsetID, report.DeckTotal, index.Subsets[subsetID].DeckTotal)
		}
	}
}

func TestBuildArchetypeIndexThreshold(t *testing.T) {
	idx := comboPool()

	// d4 is the only deck without Splitter; subsets of size 1 fall below a
	// threshold of 2 and must be skipped but counted.
	result, err := BuildArchetypeIndex("test", idx, IndexOptions{
		ComboOptions:  defaultComboOptions(),
		MinSubsetSize: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Index.SkippedSmallSubsets == 0 {
		t.Error("expected small subsets to be counted as skipped")
	}
	for subsetID, entry := range result.Index.Subsets {
		if entry.DeckTotal < 2 {
			t.Errorf("%s: subset below threshold was published (deckTotal=%d)",
				subsetID, entry.DeckTotal)
		}
	}
}

func TestBuildArchetypeIndexValidatesOptions(t *testing.T) {
	idx := comboPool()

	_, err := BuildArchetypeIndex("test", idx, IndexOptions{
		ComboOptions:  defaultComboOptions(),
		MinSubsetSize: 0,
	})
	if err == nil {
		t.Error("expected an error for a zero subset-size threshold")
	}

	opts := IndexOptions{ComboOptions: defaultComboOptions(), MinSubsetSize: 1}
	opts.MinCardUsagePercent = 150
	if _, err := BuildArchetypeIndex("test", idx, opts); err == nil {
		t.Error("expected an error for an out-of-range usage floor")
	}
}

func TestBuildArchetypeIndexCardsSummary(t *testing.T) {
	idx := comboPool()

	result, err := BuildArchetypeIndex("test", idx, IndexOptions{
		ComboOptions:  defaultComboOptions(),
		MinSubsetSize: 1,
	})
	if err != nil {
		t.Fatal(err)
	}

	staple, ok := result.Index.Cards["TST~001"]
	if !ok {
		t.Fatal("expected Staple in the card summary")
	}
	if staple.Name != "Staple" || staple.Pct != 100 {
		t.Errorf("unexpected summary for Staple: %+v", staple)
	}
}
