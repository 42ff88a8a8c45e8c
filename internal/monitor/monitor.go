package monitor

import (
	"context"
	"log/slog"
	"time"

	"sqlprobe/internal/models"
)

// Runner executes a single probe.
type Runner interface {
	Run(ctx context.Context) models.ProbeResult
}

// Recorder persists probe results.
type Recorder interface {
	Append(result models.ProbeResult) error
}

// Monitor periodically runs the probe and persists its result. It is
// optional: the status page always probes inline, the monitor only keeps
// history flowing when nobody is watching.
type Monitor struct {
	interval time.Duration
	runner   Runner
	recorder Recorder

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a monitor running the probe at the given interval.
func New(interval time.Duration, runner Runner, recorder Recorder) *Monitor {
	if interval < time.Minute {
		interval = time.Minute
	}

	return &Monitor{
		interval: interval,
		runner:   runner,
		recorder: recorder,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the monitoring loop in a goroutine.
func (m *Monitor) Start() {
	go m.run()
}

// Stop requests graceful loop termination and waits until it is done.
func (m *Monitor) Stop() {
	select {
	case <-m.doneCh:
		return
	default:
	}
	close(m.stopCh)
	<-m.doneCh
}

// RunOnce executes a single probe and records the result.
func (m *Monitor) RunOnce(ctx context.Context) (models.ProbeResult, error) {
	result := m.runner.Run(ctx)
	if err := m.recorder.Append(result); err != nil {
		return result, err
	}
	return result, nil
}

func (m *Monitor) run() {
	defer close(m.doneCh)

	if _, err := m.RunOnce(context.Background()); err != nil {
		slog.Warn("initial probe failed to record", "error", err)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := m.RunOnce(context.Background()); err != nil {
				slog.Warn("probe tick failed to record", "error", err)
			}
		case <-m.stopCh:
			return
		}
	}
}
