// Package server exposes the renderer over HTTP for callers that cannot
// link the library directly - typically the tool layer sitting between an
// automated agent and the editor process.
//
// The API is deliberately small: render a posted graph, or store a snapshot
// and render it later by id. Rendering is pure and deterministic, so
// transcripts are cached content-addressed by the snapshot bytes.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/graphscribe/graphscribe/pkg/cache"
	"github.com/graphscribe/graphscribe/pkg/describe"
	apperrors "github.com/graphscribe/graphscribe/pkg/errors"
	"github.com/graphscribe/graphscribe/pkg/graph"
	"github.com/graphscribe/graphscribe/pkg/store"
)

// DefaultCacheTTL bounds transcript cache growth. Entries never go stale
// (keys are content-addressed), so the TTL is purely a storage bound.
const DefaultCacheTTL = 24 * time.Hour

// Server wires the renderer, the snapshot store, and the transcript cache
// behind an HTTP API.
type Server struct {
	logger *log.Logger
	store  store.Store
	cache  cache.Cache
	ttl    time.Duration
}

// New creates a server. A nil cache disables caching.
func New(logger *log.Logger, st store.Store, c cache.Cache) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{logger: logger, store: st, cache: c, ttl: DefaultCacheTTL}
}

// SetCacheTTL overrides the transcript cache lifetime.
func (s *Server) SetCacheTTL(d time.Duration) {
	if d > 0 {
		s.ttl = d
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/describe", s.handleDescribe)
		r.Post("/summary", s.handleSummary)
		r.Post("/graphs", s.handleCreateGraph)
		r.Get("/graphs", s.handleListGraphs)
		r.Get("/graphs/{id}", s.handleGetGraph)
		r.Get("/graphs/{id}/describe", s.handleDescribeStored)
	})
	return r
}

// requestLogger tags each request with a UUID and logs method, path,
// status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		s.logger.Info("request",
			"id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDescribe renders a posted graph snapshot as a pseudocode transcript.
func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	s.renderPosted(w, r, cache.TranscriptKey, describe.Describe)
}

// handleSummary renders a posted graph snapshot as a flat summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.renderPosted(w, r, cache.SummaryKey, describe.Summarize)
}

// renderPosted is the shared decode → cache lookup → render → cache fill
// path for both rendering endpoints.
func (s *Server) renderPosted(w http.ResponseWriter, r *http.Request, keyFn func([]byte) string, renderFn func(graph.Graph) string) {
	g, ok := s.decodeGraph(w, r)
	if !ok {
		return
	}

	canonical, err := graph.MarshalGraph(g)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, apperrors.New(apperrors.ErrCodeInternal, "encode graph"))
		return
	}
	key := keyFn(canonical)

	if data, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		writeText(w, string(data))
		return
	} else if err != nil {
		// A broken cache degrades to a render, never to a failed request.
		s.logger.Warn("cache get failed", "err", err)
	}

	text := renderFn(g)
	if err := s.cache.Set(r.Context(), key, []byte(text), s.ttl); err != nil {
		s.logger.Warn("cache set failed", "err", err)
	}
	writeText(w, text)
}

// handleCreateGraph stores a snapshot and returns its id.
func (s *Server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	g, ok := s.decodeGraph(w, r)
	if !ok {
		return
	}

	id, err := s.store.Put(r.Context(), g)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleListGraphs returns stored snapshot metadata, newest first.
func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	type item struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		NodeCount int       `json:"node_count"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]item, len(snaps))
	for i, snap := range snaps {
		out[i] = item{ID: snap.ID, Name: snap.Name, NodeCount: len(snap.Graph.Nodes), CreatedAt: snap.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetGraph returns a stored snapshot.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleDescribeStored renders a stored snapshot by id.
func (s *Server) handleDescribeStored(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	writeText(w, describe.Describe(snap.Graph))
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) decodeGraph(w http.ResponseWriter, r *http.Request) (graph.Graph, bool) {
	g, err := graph.ReadGraph(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "decode graph"))
		return graph.Graph{}, false
	}
	return g, true
}

func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) (store.Snapshot, bool) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if apperrors.Is(err, apperrors.ErrCodeGraphNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return store.Snapshot{}, false
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return store.Snapshot{}, false
	}
	return snap, true
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	var body errorBody
	body.Error.Code = string(apperrors.GetCode(err))
	if body.Error.Code == "" {
		body.Error.Code = string(apperrors.ErrCodeInternal)
	}
	body.Error.Message = apperrors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, text)
}
