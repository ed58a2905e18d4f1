package analysis

import (
	"testing"

	"github.com/codyseavey/deck-meta/backend/internal/models"
)

// Pool of 3 decks where Lunatone appears in decks 1-2 but not 3.
func lunatonePool() *DeckIndex {
	return BuildDeckIndex([]models.Deck{
		deck("d1", card("Lunatone", "svi", "7", 2), card("Solrock", "svi", "8", 2)),
		deck("d2", card("Lunatone", "svi", "7", 3)),
		deck("d3", card("Solrock", "svi", "8", 4)),
	})
}

func findStat(t *testing.T, items []models.CardUsageStat, id string) models.CardUsageStat {
	t.Helper()
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("card %s not found in report items", id)
	return models.CardUsageStat{}
}

func TestBaselineReport(t *testing.T) {
	report := BaselineReport(lunatonePool())

	if report.DeckTotal != 3 {
		t.Fatalf("expected deckTotal 3, got %d", report.DeckTotal)
	}

	lunatone := findStat(t, report.Items, "SVI~007")
	if lunatone.Found != 2 || lunatone.Total != 3 {
		t.Errorf("expected found=2 total=3, got found=%d total=%d", lunatone.Found, lunatone.Total)
	}
	if lunatone.Pct != 66.67 {
		t.Errorf("expected pct 66.67, got %v", lunatone.Pct)
	}
	if lunatone.AlwaysIncluded {
		t.Error("card missing from one deck should not be alwaysIncluded")
	}
}

func TestAggregateInvariants(t *testing.T) {
	idx := lunatonePool()
	report := BaselineReport(idx)

	for _, item := range report.Items {
		if item.Found > item.Total {
			t.Errorf("%s: found %d > total %d", item.ID, item.Found, item.Total)
		}
		players := 0
		for _, entry := range item.Dist {
			players += entry.Players
		}
		if players != item.Found {
			t.Errorf("%s: dist players sum %d != found %d", item.ID, players, item.Found)
		}
	}
}

// Filtering a card on makes it 100% of the new pool: percentages and
// distributions are pool-relative and must be fully recomputed.
func TestFilteredReportRecomputesPercentages(t *testing.T) {
	idx := lunatonePool()

	count := 1
	filters := models.FilterSet{
		Include: []models.FilterDescriptor{{
			CardID:   "SVI~007",
			Operator: models.OperatorGreaterEqual,
			Count:    &count,
		}},
	}
	eligible := ApplyFilters(idx, filters)
	report := Report(idx, eligible, filters)

	if report.DeckTotal != 2 {
		t.Fatalf("expected deckTotal 2, got %d", report.DeckTotal)
	}
	lunatone := findStat(t, report.Items, "SVI~007")
	if lunatone.Found != 2 || lunatone.Total != 2 {
		t.Errorf("expected found=2 total=2, got found=%d total=%d", lunatone.Found, lunatone.Total)
	}
	if lunatone.Pct != 100 {
		t.Errorf("expected pct 100 in filtered pool, got %v", lunatone.Pct)
	}
	if !lunatone.AlwaysIncluded {
		t.Error("card present in every eligible deck should be alwaysIncluded")
	}
}

// Pool of 4 decks: TestCard at 2 copies in 1 deck, 4 copies in 3 decks.
func TestDistributionHistogram(t *testing.T) {
	idx := BuildDeckIndex([]models.Deck{
		deck("d1", card("TestCard", "tst", "1", 2)),
		deck("d2", card("TestCard", "tst", "1", 4)),
		deck("d3", card("TestCard", "tst", "1", 4)),
		deck("d4", card("TestCard", "tst", "1", 4)),
	})

	baseline := BaselineReport(idx)
	stat := findStat(t, baseline.Items, "TST~001")
	if len(stat.Dist) != 2 {
		t.Fatalf("expected 2 distribution entries, got %d", len(stat.Dist))
	}
	if stat.Dist[0].Copies != 2 || stat.Dist[0].Players != 1 {
		t.Errorf("expected {copies:2, players:1}, got %+v", stat.Dist[0])
	}
	if stat.Dist[1].Copies != 4 || stat.Dist[1].Players != 3 {
		t.Errorf("expected {copies:4, players:3}, got %+v", stat.Dist[1])
	}

	// Filter on exactly 4 copies: the histogram rebuilds from the eligible
	// decks only.
	count := 4
	filters := models.FilterSet{
		Include: []models.FilterDescriptor{{
			CardID:   "TST~001",
			Operator: models.OperatorEqual,
			Count:    &count,
		}},
	}
	eligible := ApplyFilters(idx, filters)
	filtered := Report(idx, eligible, filters)

	if filtered.DeckTotal != 3 {
		t.Fatalf("expected deckTotal 3, got %d", filtered.DeckTotal)
	}
	stat = findStat(t, filtered.Items, "TST~001")
	if len(stat.Dist) != 1 {
		t.Fatalf("expected single distribution entry, got %+v", stat.Dist)
	}
	if stat.Dist[0].Copies != 4 || stat.Dist[0].Players != 3 || stat.Dist[0].Percent != 100 {
		t.Errorf("expected {copies:4, players:3, percent:100}, got %+v", stat.Dist[0])
	}
}

func TestAggregateEmptyPool(t *testing.T) {
	idx := lunatonePool()
	report := Report(idx, make(DeckSet), models.FilterSet{
		Exclude: []models.FilterDescriptor{{CardID: "SVI~007"}, {CardID: "SVI~008"}},
	})

	if report.DeckTotal != 0 {
		t.Errorf("expected deckTotal 0, got %d", report.DeckTotal)
	}
	if len(report.Items) != 0 {
		t.Errorf("expected no items for empty pool, got %d", len(report.Items))
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{66.666666, 66.67},
		{100, 100},
		{0, 0},
		{33.333333, 33.33},
		{12.345, 12.35},
	}
	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.expected {
			t.Errorf("Round2(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestReportSortsByUsageThenCategory(t *testing.T) {
	idx := BuildDeckIndex([]models.Deck{
		deck("d1",
			card("Iono", "pal", "185", 4),
			card("Charizard ex", "obf", "125", 3),
		),
		deck("d2",
			card("Iono", "pal", "185", 4),
			card("Charizard ex", "obf", "125", 3),
		),
	})

	report := BaselineReport(idx)
	if len(report.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(report.Items))
	}
	// Both at 100%: pokemon sorts before supporters.
	if report.Items[0].Name != "Charizard ex" {
		t.Errorf("expected Charizard ex first, got %s", report.Items[0].Name)
	}
}
