package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codyseavey/deck-meta/backend/internal/analysis"
	"github.com/codyseavey/deck-meta/backend/internal/api"
	"github.com/codyseavey/deck-meta/backend/internal/config"
	"github.com/codyseavey/deck-meta/backend/internal/database"
	"github.com/codyseavey/deck-meta/backend/internal/services"
)

func main() {
	cfg := config.Load()

	// Initialize database
	if err := database.Initialize(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Load deck pools from the data directory and merge stored decks
	poolService := services.NewDeckPoolService()
	if err := poolService.LoadFromDir(cfg.DeckDataDir); err != nil {
		log.Fatalf("Failed to load deck pools: %v", err)
	}
	if err := poolService.LoadFromDB(database.GetDB()); err != nil {
		log.Fatalf("Failed to load stored decks: %v", err)
	}

	reportService, err := services.NewReportService(poolService, cfg.ReportCacheSize)
	if err != nil {
		log.Fatalf("Failed to initialize report service: %v", err)
	}

	indexBuilder := services.NewIndexBuilder(
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
		cfg.OutputDir,
		time.Duration(cfg.IndexRebuildInterval)*time.Minute,
	)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start index rebuild worker in background with panic recovery
	if cfg.IndexRebuildInterval > 0 {
		go runIndexWorker(ctx, indexBuilder)
	}

	// Setup router
	router := api.SetupRouter(cfg, reportService, poolService)

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the index builder
	cancel()

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// runIndexWorker keeps the index rebuild worker alive across panics.
func runIndexWorker(ctx context.Context, builder *services.IndexBuilder) {
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("PANIC in index builder: %v - restarting in 30 seconds", r)
				}
			}()
			builder.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			return // Graceful shutdown
		case <-time.After(30 * time.Second):
			log.Println("Index builder restarting after panic recovery...")
		}
	}
}
