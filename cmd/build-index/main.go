// Command build-index runs the build-time combination path once: it loads the
// deck pools, enumerates and deduplicates filter combinations for every
// archetype large enough to analyze, and writes the index and subset report
// documents for static publication.
package main

import (
	"flag"
	"log"

	"github.com/codyseavey/deck-meta/backend/internal/analysis"
	"github.com/codyseavey/deck-meta/backend/internal/config"
	"github.com/codyseavey/deck-meta/backend/internal/services"
)

func main() {
	cfg := config.Load()

	dataDir := flag.String("data", cfg.DeckDataDir, "directory of archetype decklist JSON files")
	outDir := flag.String("out", cfg.OutputDir, "directory to write index documents to")
	flag.Parse()

	poolService := services.NewDeckPoolService()
	if err := poolService.LoadFromDir(*dataDir); err != nil {
		log.Fatalf("Failed to load deck pools: %v", err)
	}
	if len(poolService.Archetypes()) == 0 {
		log.Fatalf("No deck pools found in %s", *dataDir)
	}

	builder := services.NewIndexBuilder(
		poolService,
		analysis.IndexOptions{
			ComboOptions: analysis.ComboOptions{
				MinCardUsagePercent: cfg.MinCardUsagePercent,
				MaxCrossFilters:     cfg.MaxCrossFilters,
				MaxCountVariations:  cfg.MaxCountVariations,
			},
			MinSubsetSize: cfg.MinSubsetSize,
		},
		cfg.MinDecksForAnalysis,
		*outDir,
		0, // one-shot, no background rebuilds
	)

	if err := builder.BuildAll(); err != nil {
		log.Fatalf("Index build failed: %v", err)
	}
}
