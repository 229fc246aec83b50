package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/corey/vacha/internal/domain/lexicon"
	"github.com/corey/vacha/internal/domain/search"
	"github.com/corey/vacha/internal/domain/segment"
	"github.com/corey/vacha/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexBackend wires the domain packages directly over a fixed lexicon.
type lexBackend struct {
	engine     *search.Engine
	decomposer *decompose.Decomposer
	analyzer   *segment.Analyzer
	entries    int
}

func newLexBackend(rows ...ports.Row) *lexBackend {
	lex := lexicon.New(rows)
	roots := lexicon.BuildRoots(lex)
	analyzer := segment.NewAnalyzer(lex,
		segment.NewSegmenter(segment.NewSetScanner(roots), 0),
		segment.NewScorer(lex, nil))
	return &lexBackend{
		engine:     search.NewEngine(lex, nil),
		decomposer: decompose.New(lex, analyzer),
		analyzer:   analyzer,
		entries:    lex.Len(),
	}
}

var errEmpty = errors.New("please enter something to search")

func (b *lexBackend) Search(q string, dir search.Direction, minScore int) (search.Result, error) {
	if strings.TrimSpace(q) == "" {
		return search.Result{}, errEmpty
	}
	if minScore < search.MinScoreFloor || minScore > search.MinScoreCeiling {
		return search.Result{}, errors.New("fuzzy tolerance must be between 50 and 95")
	}
	return b.engine.Search(q, dir, minScore), nil
}

func (b *lexBackend) Decompose(word string) (*decompose.Node, error) {
	if strings.TrimSpace(word) == "" {
		return nil, errEmpty
	}
	return b.decomposer.Decompose(word), nil
}

func (b *lexBackend) DecomposeWords(words []string) string {
	return b.decomposer.Report(words)
}

func (b *lexBackend) Segment(word string) (segment.Decompositions, error) {
	if strings.TrimSpace(word) == "" {
		return segment.Decompositions{}, errEmpty
	}
	return b.analyzer.Possible(word), nil
}

func (b *lexBackend) Stats() ports.LexiconStats {
	return ports.LexiconStats{Source: "mem:test", Entries: b.entries, FuzzyMin: search.DefaultMinScore}
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	backend := newLexBackend(
		ports.Row{Headword: "fel-dor", Gloss: "fire lord"},
		ports.Row{Headword: "fel", Gloss: "fire"},
		ports.Row{Headword: "dor", Gloss: "lord"},
	)
	ts := httptest.NewServer(NewServer(backend, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, rawURL string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

// =============================================================================
// JSON API
// =============================================================================

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	var result HealthResult
	resp := getJSON(t, ts.URL+"/api/health", &result)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, 3, result.Lexicon.Entries)
	assert.Equal(t, "mem:test", result.Lexicon.Source)
}

func TestSearchEndpoint_Exact(t *testing.T) {
	ts := setupTestServer(t)

	var result SearchResult
	resp := getJSON(t, ts.URL+"/api/search?q=fire", &result)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, search.ModeExact, result.Result.Mode)
	require.Len(t, result.Result.Blocks, 1)
	assert.Equal(t, "fel", result.Result.Blocks[0].Result)
	assert.True(t, result.Decomposable)
	assert.Empty(t, result.Decompose)
	assert.Equal(t,
		"Match found for 'fire' in 'fire':\nEald-vacha: fel\nNotes: No notes available.\n\n",
		result.Text)
}

func TestSearchEndpoint_WithDecompose(t *testing.T) {
	ts := setupTestServer(t)

	var result SearchResult
	getJSON(t, ts.URL+"/api/search?q=fire+lord&decompose=true", &result)
	assert.Equal(t,
		"\n=== Decompositions ===\n\nDecomposition for fel-dor:\n"+
			"fel-dor (compound) → fire lord:\n  fel: fire\n  dor: lord\n\n",
		result.Decompose)
}

func TestSearchEndpoint_ReverseDirection(t *testing.T) {
	ts := setupTestServer(t)

	var result SearchResult
	getJSON(t, ts.URL+"/api/search?q=dor&dir=ev&decompose=1", &result)
	assert.Equal(t, search.HeadwordToEnglish, result.Result.Direction)
	require.Len(t, result.Result.Blocks, 1)
	assert.Equal(t, "lord", result.Result.Blocks[0].Result)
	assert.False(t, result.Decomposable)
	assert.Empty(t, result.Decompose)
}

func TestSearchEndpoint_FuzzyAndNone(t *testing.T) {
	ts := setupTestServer(t)

	var fuzzy SearchResult
	getJSON(t, ts.URL+"/api/search?q=fier", &fuzzy)
	assert.Equal(t, search.ModeFuzzy, fuzzy.Result.Mode)
	assert.True(t, strings.HasPrefix(fuzzy.Text, "No exact/wildcard match for 'fier'."))

	var none SearchResult
	getJSON(t, ts.URL+"/api/search?q=zzzz&min=95", &none)
	assert.Equal(t, search.ModeNone, none.Result.Mode)
	assert.Equal(t, "No matches found (exact, wildcard, or fuzzy ≥ 95%).\n", none.Text)
	assert.False(t, none.Decomposable)
}

func TestSearchEndpoint_BadRequests(t *testing.T) {
	ts := setupTestServer(t)

	for _, query := range []string{"q=", "q=fire&min=abc", "q=fire&min=20", "q=fire&dir=klingon"} {
		var result errorResult
		resp := getJSON(t, ts.URL+"/api/search?"+query, &result)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
		assert.NotEmpty(t, result.Error, query)
	}
}

func TestDecomposeEndpoint_Word(t *testing.T) {
	ts := setupTestServer(t)

	var result NodeResult
	resp := getJSON(t, ts.URL+"/api/decompose?word="+url.QueryEscape("nəfel"), &result)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, decompose.KindNegation, result.Tree.Kind)
	assert.Equal(t, "nəfel (negation prefix):\n  nə: not / negation / without\n  fel: fire", result.Text)

	var bad errorResult
	resp = getJSON(t, ts.URL+"/api/decompose", &bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func postDecompose(t *testing.T, ts *httptest.Server, body string, out any) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/decompose", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestDecomposeEndpoint_Blocks(t *testing.T) {
	ts := setupTestServer(t)

	var result ReportResult
	resp := postDecompose(t, ts,
		`{"blocks":["Match found for 'fire' in 'fire':\nEald-vacha: fel\nNotes: No notes available.\n"]}`, &result)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []string{"fel"}, result.Words)
	assert.Equal(t, "\n=== Decompositions ===\n\nDecomposition for fel:\nfel: fire\n\n", result.Text)
}

func TestDecomposeEndpoint_RenderedText(t *testing.T) {
	ts := setupTestServer(t)

	var searched SearchResult
	getJSON(t, ts.URL+"/api/search?q=*lord", &searched)
	body, err := json.Marshal(DecomposeRequest{Text: searched.Text})
	require.NoError(t, err)

	var result ReportResult
	postDecompose(t, ts, string(body), &result)
	assert.Equal(t, []string{"fel-dor", "dor"}, result.Words)
}

func TestDecomposeEndpoint_BadBodies(t *testing.T) {
	ts := setupTestServer(t)

	var result errorResult
	resp := postDecompose(t, ts, `not json`, &result)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postDecompose(t, ts, `{"blocks":["no headword line here"]}`, &result)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "no headwords found in request", result.Error)
}

func TestSegmentEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	var result SegmentResult
	getJSON(t, ts.URL+"/api/segment?word=feldor", &result)
	assert.Equal(t, 1, result.Decompositions.Segmentations)
	assert.Equal(t, "1. (score: 30%) fel: fire + dor: lord\n", result.Text)
}

func TestSegmentEndpoint_OverLongWord(t *testing.T) {
	ts := setupTestServer(t)

	var result SegmentResult
	resp := getJSON(t, ts.URL+"/api/segment?word="+strings.Repeat("fel", 20), &result)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, result.Decompositions.TooLong)
	assert.Equal(t, segment.WordTooLong, result.Text)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := setupTestServer(t)
	resp, err := http.Post(ts.URL+"/api/search?q=fire", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

// =============================================================================
// Page and lifecycle
// =============================================================================

func TestIndexHTML(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	ct := resp.Header.Get("Content-Type")
	assert.True(t, strings.HasPrefix(ct, "text/html"), "content-type should be text/html, got %s", ct)
}

func TestStartStop(t *testing.T) {
	srv := NewServer(newLexBackend(ports.Row{Headword: "fel", Gloss: "fire"}), nil)
	assert.Empty(t, srv.URL())
	require.NoError(t, srv.Start("127.0.0.1:0"))
	defer srv.Stop()

	resp, err := http.Get(srv.URL() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	srv.Stop()
	srv.Stop() // idempotent
}
