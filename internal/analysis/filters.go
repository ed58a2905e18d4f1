package analysis

import "github.com/codyseavey/deck-meta/backend/internal/models"

// ApplyFilters evaluates a filter set against an indexed pool and returns the
// eligible deck IDs. Filters combine by logical AND; there is no OR across
// filters. Contradictory filters on the same card simply produce an empty
// set, which is a normal outcome rather than an error.
func ApplyFilters(idx *DeckIndex, filters models.FilterSet) DeckSet {
	eligible := idx.DeckIDs()

	for _, f := range filters.Include {
		decksWithCard := idx.Presence(f.CardID)
		if len(decksWithCard) == 0 {
			// An include on a card nobody plays matches nothing.
			return make(DeckSet)
		}
		for deckID := range eligible {
			if !decksWithCard.Contains(deckID) {
				delete(eligible, deckID)
				continue
			}
			if !includeCountSatisfied(f, idx.Copies(f.CardID, deckID)) {
				delete(eligible, deckID)
			}
		}
	}

	// Exclude is presence-only: any recorded copy count disqualifies the
	// deck, regardless of the descriptor's operator.
	for _, f := range filters.Exclude {
		for deckID := range idx.Presence(f.CardID) {
			delete(eligible, deckID)
		}
	}

	return eligible
}

// includeCountSatisfied checks an include filter's count condition against
// the copies a deck plays. Descriptors without an operator or count, and the
// explicit "any" operator, are presence-only.
func includeCountSatisfied(f models.FilterDescriptor, copies int) bool {
	if f.Operator == "" || f.Operator == models.OperatorAny || f.Count == nil {
		return true
	}
	switch f.Operator {
	case models.OperatorEqual:
		return copies == *f.Count
	case models.OperatorLess:
		return copies < *f.Count
	case models.OperatorGreater:
		return copies > *f.Count
	case models.OperatorGreaterEqual:
		return copies >= *f.Count
	case models.OperatorLessEqual:
		return copies <= *f.Count
	default:
		// Unknown operators behave as presence-only rather than silently
		// emptying the pool.
		return true
	}
}
