package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/corey/vacha/internal/domain/decompose"
	"github.com/corey/vacha/internal/domain/search"
	"github.com/corey/vacha/internal/domain/segment"
	"github.com/corey/vacha/internal/ports"
	"github.com/gorilla/mux"
)

// Backend is the query surface the server exposes. app.Service satisfies it.
// Every error it returns is caused by the request and maps to 400.
type Backend interface {
	Search(query string, dir search.Direction, minScore int) (search.Result, error)
	Decompose(word string) (*decompose.Node, error)
	DecomposeWords(words []string) string
	Segment(word string) (segment.Decompositions, error)
	Stats() ports.LexiconStats
}

// Server serves the lexicon JSON API and a minimal HTML page over HTTP.
type Server struct {
	backend  Backend
	log      *slog.Logger
	router   *mux.Router
	listener net.Listener
	httpSrv  *http.Server
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates a server over backend. Routes are registered at once so
// Handler can be used without Start.
func NewServer(backend Backend, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{backend: backend, log: log, started: time.Now()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/search", s.handleSearch).Methods("GET")
	api.HandleFunc("/decompose", s.handleDecompose).Methods("GET")
	api.HandleFunc("/decompose", s.handleDecomposeBlocks).Methods("POST")
	api.HandleFunc("/segment", s.handleSegment).Methods("GET")

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.PathPrefix("/static/").Handler(http.FileServerFS(staticFS)).Methods("GET")

	s.router.Use(s.requestLogging)
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.started = time.Now()
	s.httpSrv = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("http server stopped", "err", err)
		}
	}()
	s.log.Info("http server listening", "url", s.URL())
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.httpSrv.Shutdown(ctx)
		}
	})
}

// URL returns the base URL once started.
func (s *Server) URL() string {
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// HealthResult is the body of GET /api/health.
type HealthResult struct {
	Status  string             `json:"status"`
	Uptime  string             `json:"uptime"`
	Lexicon ports.LexiconStats `json:"lexicon"`
}

// SearchResult is the body of GET /api/search.
type SearchResult struct {
	Result       search.Result `json:"result"`
	Text         string        `json:"text"`
	Decomposable bool          `json:"decomposable"`
	Decompose    string        `json:"decompose,omitempty"`
}

// NodeResult is the body of GET /api/decompose.
type NodeResult struct {
	Tree *decompose.Node `json:"tree"`
	Text string          `json:"text"`
}

// DecomposeRequest is the body of POST /api/decompose. Blocks are rendered
// search result blocks; Text is a full rendered result that is split on the
// block separator; Words are headwords used as-is.
type DecomposeRequest struct {
	Blocks []string `json:"blocks,omitempty"`
	Text   string   `json:"text,omitempty"`
	Words  []string `json:"words,omitempty"`
}

// ReportResult is the body of POST /api/decompose.
type ReportResult struct {
	Words []string `json:"words"`
	Text  string   `json:"text"`
}

// SegmentResult is the body of GET /api/segment.
type SegmentResult struct {
	Decompositions segment.Decompositions `json:"decompositions"`
	Text           string                 `json:"text"`
}

type errorResult struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, staticFS, "static/index.html")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResult{
		Status:  "ok",
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Lexicon: s.backend.Stats(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dir := search.EnglishToHeadword
	if v := q.Get("dir"); v != "" {
		d, err := search.ParseDirection(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		dir = d
	}

	minScore := s.backend.Stats().FuzzyMin
	if v := q.Get("min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("min: %q is not a number", v))
			return
		}
		minScore = n
	}

	res, err := s.backend.Search(q.Get("q"), dir, minScore)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out := SearchResult{
		Result:       res,
		Text:         res.Text(),
		Decomposable: res.Direction == search.EnglishToHeadword && len(res.Blocks) > 0,
	}
	if out.Decomposable && truthy(q.Get("decompose")) {
		out.Decompose = s.backend.DecomposeWords(res.Headwords())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDecompose(w http.ResponseWriter, r *http.Request) {
	n, err := s.backend.Decompose(r.URL.Query().Get("word"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, NodeResult{Tree: n, Text: n.Render()})
}

func (s *Server) handleDecomposeBlocks(w http.ResponseWriter, r *http.Request) {
	var req DecomposeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON request: %w", err))
		return
	}

	blocks := req.Blocks
	if req.Text != "" {
		blocks = append(blocks, strings.Split(req.Text, search.BlockSeparator)...)
	}
	words := append(search.ParseHeadwords(blocks), req.Words...)
	if len(words) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no headwords found in request"))
		return
	}
	writeJSON(w, http.StatusOK, ReportResult{Words: words, Text: s.backend.DecomposeWords(words)})
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	d, err := s.backend.Segment(r.URL.Query().Get("word"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, SegmentResult{Decompositions: d, Text: d.String()})
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResult{Error: err.Error()})
}
