package analysis

import (
	"testing"

	"github.com/codyseavey/deck-meta/backend/internal/models"
)

func deck(id string, cards ...models.DeckCard) models.Deck {
	return models.Deck{ID: id, Archetype: "test", Cards: cards}
}

func card(name, set, number string, count int) models.DeckCard {
	return models.DeckCard{Name: name, Set: set, Number: number, Count: count}
}

func TestBuildDeckIndexCollapsesDuplicateLines(t *testing.T) {
	// The same printing on two decklist lines must sum, not overwrite.
	idx := BuildDeckIndex([]models.Deck{
		deck("d1",
			card("Lunatone", "svi", "7", 2),
			card("Lunatone", "SVI", "007", 1),
		),
	})

	if got := idx.Copies("SVI~007", "d1"); got != 3 {
		t.Errorf("expected 3 total copies after collapsing lines, got %d", got)
	}
	if presence := idx.Presence("SVI~007"); len(presence) != 1 {
		t.Errorf("expected 1 deck containing the card, got %d", len(presence))
	}
}

func TestBuildDeckIndexSkipsUnresolvableCards(t *testing.T) {
	idx := BuildDeckIndex([]models.Deck{
		deck("d1",
			card("Lunatone", "svi", "7", 2),
			card("Mystery Card", "", "", 4),
		),
	})

	// The bad entry is skipped, but the deck stays indexed for its other
	// cards and still counts toward the pool.
	if idx.PoolSize() != 1 {
		t.Errorf("expected pool size 1, got %d", idx.PoolSize())
	}
	if !idx.DeckIDs().Contains("d1") {
		t.Error("deck should remain indexed despite a bad card entry")
	}
	if len(idx.CardIDs()) != 1 {
		t.Errorf("expected 1 indexed card, got %d", len(idx.CardIDs()))
	}
}

func TestBuildDeckIndexKeepsDuplicateDeckIDs(t *testing.T) {
	// Duplicate deck IDs are not deduplicated; each counts toward totals.
	idx := BuildDeckIndex([]models.Deck{
		deck("d1", card("Lunatone", "svi", "7", 2)),
		deck("d1", card("Lunatone", "svi", "7", 2)),
	})

	if idx.PoolSize() != 2 {
		t.Errorf("expected pool size 2 for duplicate deck ids, got %d", idx.PoolSize())
	}
}

func TestFingerprintIsOrderIndependent(t *testing.T) {
	a := BuildDeckIndex([]models.Deck{
		deck("d1", card("Lunatone", "svi", "7", 2)),
		deck("d2", card("Solrock", "svi", "8", 3)),
	})
	b := BuildDeckIndex([]models.Deck{
		deck("d2", card("Solrock", "svi", "8", 3)),
		deck("d1", card("Lunatone", "svi", "7", 2)),
	})

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints should match for the same pool in different order")
	}

	c := BuildDeckIndex([]models.Deck{
		deck("d1", card("Lunatone", "svi", "7", 4)),
		deck("d2", card("Solrock", "svi", "8", 3)),
	})
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprints should differ when copy counts differ")
	}
}
