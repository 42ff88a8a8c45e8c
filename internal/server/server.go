package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"sqlprobe/internal/metrics"
	"sqlprobe/internal/models"
	"sqlprobe/internal/storage"
)

// Runner executes a single database probe.
type Runner interface {
	Run(ctx context.Context) models.ProbeResult
}

// Server wraps HTTP serving of the status page and the JSON API.
type Server struct {
	httpServer   *http.Server
	prober       Runner
	storage      *storage.ProbeStorage
	historyLimit int
}

// New creates a configured HTTP server for the probe service.
func New(addr string, prober Runner, store *storage.ProbeStorage, historyLimit int) *Server {
	if historyLimit <= 0 {
		historyLimit = 200
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer:   &http.Server{Addr: addr, Handler: mux},
		prober:       prober,
		storage:      store,
		historyLimit: historyLimit,
	}
	s.registerRoutes(mux)
	return s
}

// Run blocks and serves HTTP traffic.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/availability", s.handleAvailability)
	mux.HandleFunc("/api/status/ws", s.handleStatusWS)
}

// handleRoot probes the database inline and renders the outcome as HTML.
// The response is 200 whatever the probe outcome; failure is reported only
// through the page text.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	result := s.prober.Run(r.Context())
	if err := s.storage.Append(result); err != nil {
		slog.Warn("failed to record probe result", "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(renderPage(result)))
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}

type statusResponse struct {
	Latest      *models.ProbeResult `json:"latest"`
	GeneratedAt time.Time           `json:"generated_at"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	resp := statusResponse{GeneratedAt: time.Now().UTC()}
	if latest, ok := s.storage.Latest(); ok {
		resp.Latest = &latest
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	writeJSON(w, http.StatusOK, s.storage.HistoryN(limit))
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	summary := metrics.ComputeAvailability(s.storage.HistoryN(limit))
	writeJSON(w, http.StatusOK, summary)
}

func parseLimit(r *http.Request, fallback int) int {
	if fallback <= 0 {
		return fallback
	}
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value > fallback {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
