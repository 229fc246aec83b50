// Package app wires the lexicon source, domain packages and adapters into
// the operations exposed by the CLI, the shell and the HTTP server.
package app

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/corey/vacha/internal/domain/search"
	"github.com/corey/vacha/internal/domain/segment"
	"github.com/corey/vacha/internal/ports"
)

// Service answers queries against the current lexicon snapshot. All methods
// are safe for concurrent use; a reload replaces the snapshot atomically and
// in-flight queries finish on the snapshot they started with.
type Service struct {
	cfg     Config
	source  ports.Source
	log     *slog.Logger
	current atomic.Pointer[Snapshot]
	reloads atomic.Int64
	watcher ports.Watcher
}

// New opens the lexicon named by cfg.Lexicon and loads the first snapshot.
func New(cfg Config, log *slog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := OpenSource(cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	return NewWithSource(src, cfg, log)
}

// NewWithSource loads the first snapshot from src. A failed first load is
// fatal; later reloads are not.
func NewWithSource(src ports.Source, cfg Config, log *slog.Logger) (*Service, error) {
	if log == nil {
		log = discardLogger()
	}
	s := &Service{cfg: cfg, source: src, log: log}
	snap, err := s.build()
	if err != nil {
		return nil, err
	}
	s.current.Store(snap)
	log.Info("lexicon loaded",
		"source", snap.Source,
		"entries", snap.Lexicon.Len(),
		"roots", snap.Roots.Len())
	return s, nil
}

func (s *Service) build() (*Snapshot, error) {
	start := time.Now()
	rows, err := s.source.Load()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.source.Describe(), err)
	}
	snap, err := NewSnapshot(s.source.Describe(), rows, s.cfg)
	if err != nil {
		return nil, err
	}
	s.log.Debug("snapshot built", "rows", len(rows), "elapsed", time.Since(start))
	return snap, nil
}

// Snapshot returns the snapshot currently serving queries.
func (s *Service) Snapshot() *Snapshot {
	return s.current.Load()
}

// Config returns the configuration the service was created with.
func (s *Service) Config() Config {
	return s.cfg
}

// Reload rebuilds the snapshot from the source. On failure the previous
// snapshot stays in service and the error is returned.
func (s *Service) Reload() error {
	snap, err := s.build()
	if err != nil {
		s.log.Warn("reload failed, keeping previous lexicon", "source", s.source.Describe(), "err", err)
		return err
	}
	s.current.Store(snap)
	s.reloads.Add(1)
	s.log.Info("lexicon reloaded", "entries", snap.Lexicon.Len(), "roots", snap.Roots.Len())
	return nil
}

// Watch reloads the lexicon whenever the file at path changes.
func (s *Service) Watch(w ports.Watcher, path string) error {
	if err := w.Watch(path, s.onLexiconChanged); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	s.watcher = w
	s.log.Info("watching lexicon", "path", path)
	return nil
}

func (s *Service) onLexiconChanged(path string) {
	s.log.Debug("lexicon changed", "path", path)
	_ = s.Reload()
}

// Close stops the watcher if one is running.
func (s *Service) Close() error {
	if s.watcher != nil {
		return s.watcher.Stop()
	}
	return nil
}

// Search runs an exact/wildcard search with fuzzy fallback.
func (s *Service) Search(query string, dir search.Direction, minScore int) (search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return search.Result{}, ErrEmptyQuery
	}
	if err := ValidateMinScore(minScore); err != nil {
		return search.Result{}, err
	}
	res := s.Snapshot().Engine.Search(query, dir, minScore)
	s.log.Debug("search", "query", res.Query, "dir", dir.Short(), "mode", res.Mode, "blocks", len(res.Blocks))
	return res, nil
}

// Decompose builds the decomposition tree for one word.
func (s *Service) Decompose(word string) (*decompose.Node, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyQuery
	}
	return s.Snapshot().Decomposer.Decompose(word), nil
}

// DecomposeWords renders the decomposition section for words.
func (s *Service) DecomposeWords(words []string) string {
	return s.Snapshot().Decomposer.Report(words)
}

// DecomposeResult renders the decomposition section for a search result.
// Only English to Eald-vacha results with at least one block qualify.
func (s *Service) DecomposeResult(res search.Result) (string, error) {
	if res.Direction != search.EnglishToHeadword || len(res.Blocks) == 0 {
		return "", ErrDecomposeUnavailable
	}
	return s.DecomposeWords(res.Headwords()), nil
}

// Segment ranks the plausible compound readings of word.
func (s *Service) Segment(word string) (segment.Decompositions, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return segment.Decompositions{}, ErrEmptyQuery
	}
	return s.Snapshot().Analyzer.Possible(word), nil
}

// Roots returns the sorted root set of the current snapshot.
func (s *Service) Roots() []string {
	return s.Snapshot().Roots.Sorted()
}

// Stats describes the current snapshot.
func (s *Service) Stats() ports.LexiconStats {
	snap := s.Snapshot()
	return ports.LexiconStats{
		Source:     snap.Source,
		Entries:    snap.Lexicon.Len(),
		Roots:      snap.Roots.Len(),
		Patterns:   snap.Segmenter.Patterns(),
		CacheLen:   snap.Segmenter.CacheLen(),
		LoadedAt:   snap.LoadedAt,
		Reloads:    s.reloads.Load(),
		Metric:     s.cfg.Metric,
		Scanner:    s.cfg.Scanner,
		FuzzyMin:   s.cfg.FuzzyMin,
		FuzzyLimit: s.cfg.FuzzyLimit,
	}
}
