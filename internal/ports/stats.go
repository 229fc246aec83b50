package ports

import "time"

// LexiconStats describes the lexicon snapshot currently serving queries.
// Reported by `vacha config`, the shell banner and GET /api/health.
type LexiconStats struct {
	Source     string    `json:"source"`
	Entries    int       `json:"entries"`
	Roots      int       `json:"roots"`
	Patterns   int       `json:"patterns"`
	CacheLen   int       `json:"cache_len"`
	LoadedAt   time.Time `json:"loaded_at"`
	Reloads    int64     `json:"reloads"`
	Metric     string    `json:"metric"`
	Scanner    string    `json:"scanner"`
	FuzzyMin   int       `json:"fuzzy_min"`
	FuzzyLimit int       `json:"fuzzy_limit"`
}
