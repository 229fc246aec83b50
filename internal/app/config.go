package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/corey/vacha/internal/domain/search"
	"github.com/corey/vacha/internal/domain/similarity"
	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvLexicon    = "VACHA_LEXICON"
	EnvFuzzyMin   = "VACHA_FUZZY_MIN"
	EnvFuzzyLimit = "VACHA_FUZZY_LIMIT"
	EnvMetric     = "VACHA_METRIC"
	EnvCacheSize  = "VACHA_CACHE_SIZE"
	EnvScanner    = "VACHA_SCANNER"
	EnvHTTPAddr   = "VACHA_HTTP_ADDR"
	EnvDebug      = "VACHA_DEBUG"
)

// Root scanner implementations.
const (
	ScannerAhoCorasick = "aho-corasick"
	ScannerSet         = "set"
)

// Config is the resolved runtime configuration.
type Config struct {
	Lexicon    string // path to .xlsx, .csv or .db
	FuzzyMin   int    // default fuzzy tolerance, 50–95
	FuzzyLimit int    // max fuzzy results
	Metric     string // similarity metric name
	CacheSize  int    // segmentation LRU entries, 0 disables
	Scanner    string // root scanner implementation
	HTTPAddr   string // listen address for `vacha serve`
	Debug      bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Lexicon:    "dictionary.xlsx",
		FuzzyMin:   search.DefaultMinScore,
		FuzzyLimit: search.DefaultLimit,
		Metric:     similarity.DefaultMetric,
		CacheSize:  4096,
		Scanner:    ScannerAhoCorasick,
		HTTPAddr:   "127.0.0.1:8750",
	}
}

// LoadConfig reads a .env file from the working directory when present,
// then overlays the VACHA_* environment on the defaults. Variables already
// set in the environment win over the file.
func LoadConfig() Config {
	_ = godotenv.Load()

	d := DefaultConfig()
	return Config{
		Lexicon:    getEnv(EnvLexicon, d.Lexicon),
		FuzzyMin:   getEnvInt(EnvFuzzyMin, d.FuzzyMin),
		FuzzyLimit: getEnvInt(EnvFuzzyLimit, d.FuzzyLimit),
		Metric:     getEnv(EnvMetric, d.Metric),
		CacheSize:  getEnvInt(EnvCacheSize, d.CacheSize),
		Scanner:    getEnv(EnvScanner, d.Scanner),
		HTTPAddr:   getEnv(EnvHTTPAddr, d.HTTPAddr),
		Debug:      getEnvBool(EnvDebug, d.Debug),
	}
}

// Validate checks every field that has a constrained range.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Lexicon) == "" {
		return fmt.Errorf("%s: lexicon path is empty", EnvLexicon)
	}
	if err := ValidateMinScore(c.FuzzyMin); err != nil {
		return err
	}
	if c.FuzzyLimit < 1 {
		return fmt.Errorf("%s: fuzzy limit must be at least 1, got %d", EnvFuzzyLimit, c.FuzzyLimit)
	}
	if _, err := similarity.ByName(c.Metric); err != nil {
		return err
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%s: cache size must not be negative, got %d", EnvCacheSize, c.CacheSize)
	}
	switch c.Scanner {
	case ScannerAhoCorasick, ScannerSet:
	default:
		return fmt.Errorf("%s: unknown scanner %q (want %s or %s)", EnvScanner, c.Scanner, ScannerAhoCorasick, ScannerSet)
	}
	return nil
}

// ValidateMinScore reports ErrFuzzyRange when n is outside 50–95.
func ValidateMinScore(n int) error {
	if n < search.MinScoreFloor || n > search.MinScoreCeiling {
		return fmt.Errorf("%w: got %d", ErrFuzzyRange, n)
	}
	return nil
}

// ClampMinScore pins n into 50–95.
func ClampMinScore(n int) int {
	return min(max(n, search.MinScoreFloor), search.MinScoreCeiling)
}

// getEnv gets environment variable with default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets integer environment variable with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets boolean environment variable with default
func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return defaultValue
}
