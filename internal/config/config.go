package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBPath      string
	DeckDataDir string
	OutputDir   string

	CORSAllowedOrigins string
	RateLimitRPS       float64
	RateLimitBurst     int

	// Analysis tunables. These are knobs, not environment-coupled constants:
	// the engine only ever sees the resolved values.
	MinDecksForAnalysis  int
	MinCardUsagePercent  float64
	MaxCrossFilters      int
	MaxCountVariations   int
	MinSubsetSize        int
	ReportCacheSize      int
	IndexRebuildInterval int // minutes, 0 disables the background worker
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Port:        envOr("PORT", "8080"),
		DBPath:      envOr("DB_PATH", "./deck_meta.db"),
		DeckDataDir: envOr("DECK_DATA_DIR", "./data/decks"),
		OutputDir:   envOr("OUTPUT_DIR", "./data/indexes"),

		CORSAllowedOrigins: envOr("CORS_ALLOWED_ORIGINS", ""),
		RateLimitRPS:       envFloatOr("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     envIntOr("RATE_LIMIT_BURST", 20),

		MinDecksForAnalysis:  envIntOr("MIN_DECKS_FOR_ANALYSIS", 5),
		MinCardUsagePercent:  envFloatOr("MIN_CARD_USAGE_PERCENT", 20),
		MaxCrossFilters:      envIntOr("MAX_CROSS_FILTERS", 10),
		MaxCountVariations:   envIntOr("MAX_COUNT_VARIATIONS", 3),
		MinSubsetSize:        envIntOr("MIN_SUBSET_SIZE", 3),
		ReportCacheSize:      envIntOr("REPORT_CACHE_SIZE", 256),
		IndexRebuildInterval: envIntOr("INDEX_REBUILD_INTERVAL_MINUTES", 0),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
