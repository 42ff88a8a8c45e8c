package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"sqlprobe/internal/models"
)

// ProbeStorage handles persistence of probe history to disk.
type ProbeStorage struct {
	mu         sync.RWMutex
	path       string
	maxEntries int
	history    []models.ProbeResult
}

// NewProbeStorage creates a storage instance and loads existing history if
// present. maxEntries bounds the retained history; older entries are
// trimmed on append.
func NewProbeStorage(path string, maxEntries int) (*ProbeStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	s := &ProbeStorage{path: path, maxEntries: maxEntries}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Append adds a new probe result and persists the history to disk.
func (s *ProbeStorage) Append(result models.ProbeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, result)
	if s.maxEntries > 0 && len(s.history) > s.maxEntries {
		s.history = s.history[len(s.history)-s.maxEntries:]
	}
	return s.persist()
}

// Latest returns the most recent probe result if one exists.
func (s *ProbeStorage) Latest() (models.ProbeResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return models.ProbeResult{}, false
	}
	return s.history[len(s.history)-1], true
}

// History returns a copy of the entire history slice.
func (s *ProbeStorage) History() []models.ProbeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]models.ProbeResult, len(s.history))
	copy(copied, s.history)
	return copied
}

// HistoryN returns a copy of the most recent n results, oldest first.
func (s *ProbeStorage) HistoryN(n int) []models.ProbeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}
	copied := make([]models.ProbeResult, n)
	copy(copied, s.history[len(s.history)-n:])
	return copied
}

func (s *ProbeStorage) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.history = []models.ProbeResult{}
			return nil
		}
		return fmt.Errorf("read history: %w", err)
	}

	if len(data) == 0 {
		s.history = []models.ProbeResult{}
		return nil
	}

	var entries []models.ProbeResult
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse history: %w", err)
	}

	s.history = entries
	return nil
}

func (s *ProbeStorage) persist() error {
	bytes, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp history: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
