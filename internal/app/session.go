package app

import (
	"strings"
	"sync"

	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/corey/vacha/internal/domain/search"
)

// Session holds the per-user state of an interactive front end: search
// direction, fuzzy tolerance, the pending negation prefix and the last
// result, which gates decomposition.
type Session struct {
	svc *Service

	mu       sync.Mutex
	dir      search.Direction
	minScore int
	negate   bool
	last     *search.Result
}

// NewSession starts a session searching English to Eald-vacha at the
// service's configured fuzzy tolerance.
func NewSession(svc *Service) *Session {
	return &Session{
		svc:      svc,
		dir:      search.EnglishToHeadword,
		minScore: ClampMinScore(svc.Config().FuzzyMin),
	}
}

// Direction returns the current search direction.
func (s *Session) Direction() search.Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// SetDirection switches the search direction. Decomposition becomes
// unavailable until the next successful English to Eald-vacha search.
func (s *Session) SetDirection(d search.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d != s.dir {
		s.dir = d
		s.last = nil
	}
}

// MinScore returns the fuzzy tolerance.
func (s *Session) MinScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minScore
}

// SetMinScore sets the fuzzy tolerance, rejecting values outside 50–95.
func (s *Session) SetMinScore(n int) error {
	if err := ValidateMinScore(n); err != nil {
		return err
	}
	s.mu.Lock()
	s.minScore = n
	s.mu.Unlock()
	return nil
}

// AdjustMin moves the fuzzy tolerance by delta, clamped to 50–95, and
// returns the new value.
func (s *Session) AdjustMin(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minScore = ClampMinScore(s.minScore + delta)
	return s.minScore
}

// ArmNegation makes the next query start with the negation prefix.
func (s *Session) ArmNegation() {
	s.mu.Lock()
	s.negate = true
	s.mu.Unlock()
}

// NegationArmed reports whether the next query gets the negation prefix.
func (s *Session) NegationArmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.negate
}

// Search runs query in the current direction. A pending negation prefix is
// applied and consumed. The result is remembered for Decompose when it is a
// non-empty English to Eald-vacha result.
func (s *Session) Search(query string) (search.Result, error) {
	s.mu.Lock()
	dir, minScore := s.dir, s.minScore
	if s.negate && strings.TrimSpace(query) != "" {
		query = decompose.NegationPrefix + strings.TrimSpace(query)
		s.negate = false
	}
	s.mu.Unlock()

	res, err := s.svc.Search(query, dir, minScore)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
	if err != nil {
		return res, err
	}
	if res.Direction == search.EnglishToHeadword && len(res.Blocks) > 0 {
		s.last = &res
	}
	return res, nil
}

// CanDecompose reports whether Decompose would succeed.
func (s *Session) CanDecompose() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last != nil
}

// Decompose renders the decomposition section for the headwords of the last
// search. It returns ErrDecomposeUnavailable unless the last search was a
// successful English to Eald-vacha search.
func (s *Session) Decompose() (string, error) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		return "", ErrDecomposeUnavailable
	}
	return s.svc.DecomposeResult(*last)
}
