package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codyseavey/deck-meta/backend/internal/analysis"
	"github.com/codyseavey/deck-meta/backend/internal/metrics"
	"github.com/codyseavey/deck-meta/backend/internal/models"
)

// DeckPoolService owns the loaded deck pools, one per archetype, and the
// derived deck indexes. Pools are read-only once loaded; imports replace the
// affected pool and rebuild its index rather than mutating in place.
type DeckPoolService struct {
	mu      sync.RWMutex
	pools   map[string][]models.Deck
	indexes map[string]*analysis.DeckIndex
}

func NewDeckPoolService() *DeckPoolService {
	return &DeckPoolService{
		pools:   make(map[string][]models.Deck),
		indexes: make(map[string]*analysis.DeckIndex),
	}
}

// LoadFromDir reads archetype pools from a directory of JSON decklist files.
// Each file holds one archetype's deck array; the archetype name comes from
// the decks themselves, falling back to the filename. Unreadable files are
// skipped with a warning, never aborting the rest of the load.
func (s *DeckPoolService) LoadFromDir(dataDir string) error {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Deck data directory %s not found, starting with no file-backed pools", dataDir)
			return nil
		}
		return fmt.Errorf("failed to read deck data directory: %w", err)
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dataDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: failed to read deck file %s: %v", path, err)
			continue
		}

		var decks []models.Deck
		if err := json.Unmarshal(data, &decks); err != nil {
			log.Printf("Warning: failed to parse deck file %s: %v", path, err)
			continue
		}

		fallback := strings.TrimSuffix(entry.Name(), ".json")
		for i := range decks {
			if decks[i].Archetype == "" {
				decks[i].Archetype = fallback
			}
		}
		s.addDecks(decks)
		loaded += len(decks)
	}

	s.mu.RLock()
	poolCount := len(s.pools)
	s.mu.RUnlock()
	log.Printf("Deck data loaded: %d decks across %d archetype pools", loaded, poolCount)
	return nil
}

// LoadFromDB merges stored decks into the in-memory pools.
func (s *DeckPoolService) LoadFromDB(db *gorm.DB) error {
	var decks []models.Deck
	if err := db.Preload("Cards").Find(&decks).Error; err != nil {
		return fmt.Errorf("failed to load decks from database: %w", err)
	}
	s.addDecks(decks)
	if len(decks) > 0 {
		log.Printf("Loaded %d stored decks from database", len(decks))
	}
	return nil
}

// addDecks appends validated decks to their archetype pools and rebuilds the
// affected indexes.
func (s *DeckPoolService) addDecks(decks []models.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()

	touched := make(map[string]bool)
	for _, deck := range decks {
		if deck.Archetype == "" {
			log.Printf("Warning: skipping deck %s with no archetype", deck.ID)
			continue
		}
		if deck.ID == "" {
			deck.ID = uuid.New().String()
		}
		s.pools[deck.Archetype] = append(s.pools[deck.Archetype], deck)
		touched[deck.Archetype] = true
	}

	for archetype := range touched {
		s.rebuildIndexLocked(archetype)
	}
}

func (s *DeckPoolService) rebuildIndexLocked(archetype string) {
	pool := s.pools[archetype]
	s.indexes[archetype] = analysis.BuildDeckIndex(pool)
	metrics.DecksIndexed.WithLabelValues(archetype).Set(float64(len(pool)))
}

// Archetypes lists the loaded pools with deck counts, sorted by name.
func (s *DeckPoolService) Archetypes() []models.ArchetypeSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ArchetypeSummary, 0, len(s.pools))
	for archetype, pool := range s.pools {
		out = append(out, models.ArchetypeSummary{
			Archetype: archetype,
			DeckTotal: len(pool),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Archetype < out[j].Archetype
	})
	return out
}

// Pool returns the deck pool for an archetype.
func (s *DeckPoolService) Pool(archetype string) ([]models.Deck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pool, ok := s.pools[archetype]
	return pool, ok
}

// Index returns the deck index for an archetype.
func (s *DeckPoolService) Index(archetype string) (*analysis.DeckIndex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.indexes[archetype]
	return idx, ok
}

// ImportDecks validates and stores a batch of decks, then merges them into
// the in-memory pools. Malformed decks are skipped per-entry with a warning
// in the response; they never abort the rest of the batch.
func (s *DeckPoolService) ImportDecks(db *gorm.DB, decks []models.Deck) (*models.DeckImportResponse, error) {
	resp := &models.DeckImportResponse{}
	valid := make([]models.Deck, 0, len(decks))

	for i := range decks {
		deck := decks[i]
		if deck.Archetype == "" {
			resp.Skipped++
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("deck %d: missing archetype", i))
			continue
		}
		if len(deck.Cards) == 0 {
			resp.Skipped++
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("deck %d: no cards", i))
			continue
		}
		if deck.ID == "" {
			deck.ID = uuid.New().String()
		}

		kept := make([]models.DeckCard, 0, len(deck.Cards))
		for _, card := range deck.Cards {
			if card.Name == "" || card.Count < 0 {
				metrics.DeckEntriesSkipped.Inc()
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("deck %s: dropped malformed card entry", deck.ID))
				continue
			}
			card.Set = strings.ToUpper(strings.TrimSpace(card.Set))
			kept = append(kept, card)
		}
		deck.Cards = kept
		valid = append(valid, deck)
	}

	if len(valid) > 0 && db != nil {
		if err := db.Save(&valid).Error; err != nil {
			return nil, fmt.Errorf("failed to store decks: %w", err)
		}
	}

	s.addDecks(valid)
	resp.Imported = len(valid)
	return resp, nil
}
