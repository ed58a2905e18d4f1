package services

import (
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codyseavey/deck-meta/backend/internal/analysis"
	"github.com/codyseavey/deck-meta/backend/internal/metrics"
	"github.com/codyseavey/deck-meta/backend/internal/models"
)

// TokenSource issues request-generation tokens for stale-result discarding.
// A caller captures a token before computing, and the result is only applied
// if no newer token has been issued since: a slow response can never
// overwrite the outcome of a newer, faster one. There is no cancellation of
// in-flight work, only discard-on-arrival.
type TokenSource struct {
	n atomic.Uint64
}

// Begin issues a new token, superseding all earlier ones.
func (t *TokenSource) Begin() uint64 {
	return t.n.Add(1)
}

// Current returns the most recently issued token.
func (t *TokenSource) Current() uint64 {
	return t.n.Load()
}

// ErrUnknownArchetype is returned for pools that were never loaded.
type ErrUnknownArchetype struct {
	Archetype string
}

func (e *ErrUnknownArchetype) Error() string {
	return fmt.Sprintf("unknown archetype %q", e.Archetype)
}

// ReportService computes baseline and filtered usage reports. Every report is
// a pure function of (pool, filters, placement mode), which makes results
// memoizable: the cache key is the pool's content fingerprint plus the
// canonical filter key, so a reloaded pool with different contents can never
// serve stale entries.
type ReportService struct {
	pools  *DeckPoolService
	cache  *lru.Cache[string, *models.SubsetReport]
	tokens TokenSource
}

func NewReportService(pools *DeckPoolService, cacheSize int) (*ReportService, error) {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, err := lru.New[string, *models.SubsetReport](cacheSize)
	if err != nil {
		return nil, err
	}
	return &ReportService{pools: pools, cache: cache}, nil
}

// Baseline returns the unfiltered report for an archetype pool.
func (s *ReportService) Baseline(archetype string) (*models.SubsetReport, error) {
	return s.Filtered(archetype, models.FilterSet{}, 0)
}

// Filtered returns the report for an archetype pool narrowed by a filter set
// and an optional placement cutoff. An empty eligible set (including one
// produced by contradictory filters) is a normal outcome: the report has
// deckTotal 0 and no items.
func (s *ReportService) Filtered(archetype string, filters models.FilterSet, maxPlacement int) (*models.SubsetReport, error) {
	idx, ok := s.pools.Index(archetype)
	if !ok {
		return nil, &ErrUnknownArchetype{Archetype: archetype}
	}

	key := cacheKey(idx.Fingerprint(), filters, maxPlacement)
	if report, ok := s.cache.Get(key); ok {
		metrics.ReportCacheHits.Inc()
		return report, nil
	}
	metrics.ReportCacheMisses.Inc()

	start := time.Now()
	eligible := analysis.ApplyFilters(idx, filters)
	if maxPlacement > 0 {
		narrowByPlacement(idx, eligible, maxPlacement)
	}

	report := analysis.Report(idx, eligible, filters)

	metrics.ReportDuration.Observe(time.Since(start).Seconds())
	if filters.Empty() && maxPlacement == 0 {
		metrics.ReportsComputed.WithLabelValues("baseline").Inc()
	} else {
		metrics.ReportsComputed.WithLabelValues("filtered").Inc()
	}

	s.cache.Add(key, report)
	return report, nil
}

// Apply computes a filtered report under a fresh request token. When a newer
// request began while this one was computing, the result is discarded and
// applied=false is returned; the caller should drop it rather than render it.
func (s *ReportService) Apply(archetype string, filters models.FilterSet, maxPlacement int) (report *models.SubsetReport, applied bool, err error) {
	token := s.tokens.Begin()

	report, err = s.Filtered(archetype, filters, maxPlacement)
	if err != nil {
		return nil, false, err
	}

	if s.tokens.Current() != token {
		metrics.StaleResultsDiscarded.Inc()
		return nil, false, nil
	}
	return report, true, nil
}

func cacheKey(fingerprint string, filters models.FilterSet, maxPlacement int) string {
	return fmt.Sprintf("%s|p%d|%s", fingerprint, maxPlacement, filters.Key())
}

// narrowByPlacement removes decks that placed worse than the cutoff, or that
// carry no placement at all.
func narrowByPlacement(idx *analysis.DeckIndex, eligible analysis.DeckSet, maxPlacement int) {
	for deckID := range eligible {
		deck, ok := idx.Deck(deckID)
		if !ok || deck.Placement == nil || *deck.Placement > maxPlacement {
			delete(eligible, deckID)
		}
	}
}
