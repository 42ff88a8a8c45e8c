package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"sqlprobe/internal/metrics"
	"sqlprobe/internal/models"
)

const (
	streamPushInterval = 60 * time.Second
	streamWriteTimeout = 5 * time.Second
)

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

type statusSnapshot struct {
	GeneratedAt  time.Time                   `json:"generated_at"`
	Latest       *models.ProbeResult         `json:"latest,omitempty"`
	Availability metrics.AvailabilitySummary `json:"availability"`
	History      []models.ProbeResult        `json:"history"`
}

// handleStatusWS streams status snapshots over a websocket. Snapshots are
// built from recorded history; the stream never probes the database itself.
func (s *Server) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.historyLimit)
	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.serveStatusConnection(conn, limit)
}

func (s *Server) serveStatusConnection(conn *websocket.Conn, limit int) {
	defer conn.Close()

	if err := writeSnapshot(conn, s.buildStatusSnapshot(limit)); err != nil {
		return
	}

	ticker := time.NewTicker(streamPushInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ticker.C:
			if err := writeSnapshot(conn, s.buildStatusSnapshot(limit)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeSnapshot(conn *websocket.Conn, payload statusSnapshot) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(payload)
}

func (s *Server) buildStatusSnapshot(limit int) statusSnapshot {
	history := s.storage.HistoryN(limit)
	snapshot := statusSnapshot{
		GeneratedAt:  time.Now().UTC(),
		Availability: metrics.ComputeAvailability(history),
		History:      history,
	}
	if latest, ok := s.storage.Latest(); ok {
		snapshot.Latest = &latest
	}
	return snapshot
}
