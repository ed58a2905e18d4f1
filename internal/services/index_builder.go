package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/codyseavey/deck-meta/backend/internal/analysis"
	"github.com/codyseavey/deck-meta/backend/internal/metrics"
)

// IndexBuilder runs the build-time combination path: for each archetype pool
// large enough to analyze, it enumerates filter combinations, deduplicates
// the resulting subsets, and publishes an index document plus one report
// document per subset under the output directory.
type IndexBuilder struct {
	pools    *DeckPoolService
	opts     analysis.IndexOptions
	minDecks int
	outDir   string
	interval time.Duration

	mu        sync.RWMutex
	lastBuild time.Time
}

func NewIndexBuilder(pools *DeckPoolService, opts analysis.IndexOptions, minDecks int, outDir string, interval time.Duration) *IndexBuilder {
	return &IndexBuilder{
		pools:    pools,
		opts:     opts,
		minDecks: minDecks,
		outDir:   outDir,
		interval: interval,
	}
}

// BuildAll builds and writes indexes for every loaded archetype pool. Pools
// with fewer decks than the analysis minimum are skipped, which is not an
// error; their interactive single-filter path still works.
func (b *IndexBuilder) BuildAll() error {
	archetypes := b.pools.Archetypes()
	built := 0

	for _, summary := range archetypes {
		if summary.DeckTotal < b.minDecks {
			log.Printf("Index builder: skipping %s (%d decks, need %d)",
				summary.Archetype, summary.DeckTotal, b.minDecks)
			continue
		}
		if err := b.buildArchetype(summary.Archetype); err != nil {
			return fmt.Errorf("archetype %s: %w", summary.Archetype, err)
		}
		built++
	}

	b.mu.Lock()
	b.lastBuild = time.Now()
	b.mu.Unlock()

	log.Printf("Index builder: built %d of %d archetype indexes", built, len(archetypes))
	return nil
}

func (b *IndexBuilder) buildArchetype(archetype string) error {
	idx, ok := b.pools.Index(archetype)
	if !ok {
		return fmt.Errorf("no index for archetype %q", archetype)
	}

	start := time.Now()
	result, err := analysis.BuildArchetypeIndex(archetype, idx, b.opts)
	if err != nil {
		return err
	}

	metrics.CombinationsEvaluated.Add(float64(result.Index.TotalCombinations))
	metrics.SubsetsPublished.Add(float64(len(result.Reports)))
	metrics.SubsetsSkippedSmall.Add(float64(result.Index.SkippedSmallSubsets))
	for _, entry := range result.Index.Subsets {
		metrics.SubsetsMerged.Add(float64(len(entry.AlternateFilters)))
	}

	dir := filepath.Join(b.outDir, slugify(archetype))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "index.json"), result.Index); err != nil {
		return err
	}
	for subsetID, report := range result.Reports {
		if err := writeJSON(filepath.Join(dir, subsetID+".json"), report); err != nil {
			return err
		}
	}

	metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
	log.Printf("Index builder: %s: %d combinations -> %d unique subsets (%d skipped below threshold)",
		archetype, result.Index.TotalCombinations, result.Index.UniqueSubsets,
		result.Index.SkippedSmallSubsets)
	return nil
}

// Start runs the builder on an interval until the context is cancelled. A
// zero interval disables the worker.
func (b *IndexBuilder) Start(ctx context.Context) {
	if b.interval <= 0 {
		return
	}

	log.Printf("Index builder started: rebuilding every %v", b.interval)
	if err := b.BuildAll(); err != nil {
		log.Printf("Index builder: initial build failed: %v", err)
	}

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Index builder stopping...")
			return
		case <-ticker.C:
			if err := b.BuildAll(); err != nil {
				log.Printf("Index builder: rebuild failed: %v", err)
			}
		}
	}
}

// LastBuild reports when the most recent full build finished.
func (b *IndexBuilder) LastBuild() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastBuild
}

// slugify maps an archetype name to a filesystem-safe directory name.
func slugify(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	return strings.Trim(sb.String(), "-")
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
