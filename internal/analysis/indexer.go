// Package analysis implements the deck aggregation and filter-combination
// engine: per-card usage statistics over a deck pool, include/exclude filter
// evaluation, and the build-time enumeration of interesting filter
// combinations.
package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"sort"

	"github.com/codyseavey/deck-meta/backend/internal/cards"
	"github.com/codyseavey/deck-meta/backend/internal/models"
)

// DeckSet is a set of deck IDs.
type DeckSet map[string]struct{}

// NewDeckSet builds a DeckSet from ids.
func NewDeckSet(ids ...string) DeckSet {
	s := make(DeckSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s DeckSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy.
func (s DeckSet) Clone() DeckSet {
	out := make(DeckSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// cardRef keeps the display identity recorded the first time a card
// identifier is seen in the pool.
type cardRef struct {
	Name     string
	Set      string
	Number   string
	Category cards.Category
}

// DeckIndex is the derived lookup structure over one deck pool: which decks
// contain each card and how many copies each of those decks plays. It is a
// pure function of the pool and is never mutated after Build.
type DeckIndex struct {
	// presence maps card identifier -> set of deck IDs containing it.
	presence map[string]DeckSet
	// counts maps card identifier -> deck ID -> total copies in that deck.
	counts map[string]map[string]int
	// refs maps card identifier -> display identity.
	refs map[string]cardRef
	// decks maps deck ID -> deck, for placement lookups. Later duplicates of
	// an ID overwrite earlier ones here; totals are unaffected.
	decks map[string]models.Deck
	// deckIDs holds every indexed deck ID, including decks whose cards all
	// failed to resolve.
	deckIDs DeckSet
	// poolSize is the number of decks in the input pool. Duplicate deck IDs
	// each count toward the total even though the ID sets collapse them.
	poolSize int

	fingerprint string
}

// BuildDeckIndex indexes a deck pool. Cards lacking a resolvable set/number
// are skipped per-card with a warning; the deck remains indexed for every
// other card. Duplicate deck IDs in the pool are not deduplicated.
func BuildDeckIndex(pool []models.Deck) *DeckIndex {
	idx := &DeckIndex{
		presence: make(map[string]DeckSet),
		counts:   make(map[string]map[string]int),
		refs:     make(map[string]cardRef),
		decks:    make(map[string]models.Deck, len(pool)),
		deckIDs:  make(DeckSet, len(pool)),
		poolSize: len(pool),
	}

	for _, deck := range pool {
		idx.deckIDs[deck.ID] = struct{}{}
		idx.decks[deck.ID] = deck

		// Collapse the decklist by identifier first, summing counts when the
		// same printing appears on more than one line. counts must reflect
		// total copies per deck, not per list entry.
		perDeck := make(map[string]int)
		for _, card := range deck.Cards {
			if card.Name == "" {
				log.Printf("Warning: deck %s: skipping card entry with no name", deck.ID)
				continue
			}
			id, ok := cards.BuildCardIdentifier(card.Set, card.Number)
			if !ok {
				log.Printf("Warning: deck %s: skipping %q (unresolvable set/number)", deck.ID, card.Name)
				continue
			}
			perDeck[id] += card.Count
			if _, seen := idx.refs[id]; !seen {
				idx.refs[id] = cardRef{
					Name:     card.Name,
					Set:      card.Set,
					Number:   cards.NormalizeCardNumber(card.Number),
					Category: cards.ClassifyName(card.Name),
				}
			}
		}

		for id, count := range perDeck {
			if idx.presence[id] == nil {
				idx.presence[id] = make(DeckSet)
				idx.counts[id] = make(map[string]int)
			}
			idx.presence[id][deck.ID] = struct{}{}
			idx.counts[id][deck.ID] = count
		}
	}

	idx.fingerprint = computeFingerprint(idx)
	return idx
}

// PoolSize returns the number of decks in the indexed pool.
func (idx *DeckIndex) PoolSize() int {
	return idx.poolSize
}

// DeckIDs returns a copy of the full eligible set (every indexed deck).
func (idx *DeckIndex) DeckIDs() DeckSet {
	return idx.deckIDs.Clone()
}

// Presence returns the set of decks containing the card, or nil.
func (idx *DeckIndex) Presence(cardID string) DeckSet {
	return idx.presence[cardID]
}

// Copies returns the recorded copy count for a card in a deck (0 if absent).
func (idx *DeckIndex) Copies(cardID, deckID string) int {
	return idx.counts[cardID][deckID]
}

// Deck returns the indexed deck for an ID.
func (idx *DeckIndex) Deck(deckID string) (models.Deck, bool) {
	d, ok := idx.decks[deckID]
	return d, ok
}

// CardIDs returns every distinct card identifier in the pool, sorted.
func (idx *DeckIndex) CardIDs() []string {
	ids := make([]string, 0, len(idx.presence))
	for id := range idx.presence {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Fingerprint is a content hash of the indexed pool, used as a memoization
// key. Two pools with the same decks and card counts share a fingerprint
// regardless of input order.
func (idx *DeckIndex) Fingerprint() string {
	return idx.fingerprint
}

func computeFingerprint(idx *DeckIndex) string {
	h := sha256.New()
	for _, cardID := range idx.CardIDs() {
		deckIDs := make([]string, 0, len(idx.presence[cardID]))
		for deckID := range idx.presence[cardID] {
			deckIDs = append(deckIDs, deckID)
		}
		sort.Strings(deckIDs)
		for _, deckID := range deckIDs {
			fmt.Fprintf(h, "%s\x00%s\x00%d\n", cardID, deckID, idx.counts[cardID][deckID])
		}
	}
	fmt.Fprintf(h, "pool:%d", idx.poolSize)
	return hex.EncodeToString(h.Sum(nil))
}
