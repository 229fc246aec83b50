package app

import (
	"fmt"
	"time"

	"github.com/corey/vacha/internal/adapters/ahocorasick"
	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/corey/vacha/internal/domain/search"
	"github.com/corey/vacha/internal/domain/segment"
	"github.com/corey/vacha/internal/domain/similarity"
	"github.com/corey/vacha/internal/ports"
)

// Snapshot is everything derived from one load of the lexicon. It is built
// once and never mutated, so a reload swaps the whole value.
type Snapshot struct {
	Source     string
	LoadedAt   time.Time
	Lexicon    *lexicon.Lexicon
	Roots      *lexicon.RootSet
	Segmenter  *segment.Segmenter
	Analyzer   *segment.Analyzer
	Engine     *search.Engine
	Decomposer *decompose.Decomposer
}

// NewSnapshot builds the lexicon, root set, segmenter, scorer, search engine
// and decomposer for rows under cfg.
func NewSnapshot(source string, rows []ports.Row, cfg Config) (*Snapshot, error) {
	sim, err := similarity.ByName(cfg.Metric)
	if err != nil {
		return nil, err
	}

	lex := lexicon.New(rows)
	roots := lexicon.BuildRoots(lex)

	var scanner ports.RootScanner
	switch cfg.Scanner {
	case ScannerSet:
		scanner = segment.NewSetScanner(roots)
	case ScannerAhoCorasick, "":
		scanner = ahocorasick.NewScanner(roots.Sorted())
	default:
		return nil, fmt.Errorf("unknown scanner %q", cfg.Scanner)
	}

	segmenter := segment.NewSegmenter(scanner, cfg.CacheSize)
	analyzer := segment.NewAnalyzer(lex, segmenter, segment.NewScorer(lex, sim))

	return &Snapshot{
		Source:     source,
		LoadedAt:   time.Now(),
		Lexicon:    lex,
		Roots:      roots,
		Segmenter:  segmenter,
		Analyzer:   analyzer,
		Engine:     search.NewEngine(lex, sim).WithLimit(cfg.FuzzyLimit),
		Decomposer: decompose.New(lex, analyzer),
	}, nil
}
