package models

import "time"

// ProbeState classifies the outcome of a database connectivity probe.
type ProbeState string

const (
	// ProbeStateNotConfigured means no connection string was supplied.
	ProbeStateNotConfigured ProbeState = "not_configured"
	// ProbeStateSuccess means token acquisition, connect and query all passed.
	ProbeStateSuccess ProbeState = "success"
	// ProbeStateFailure means some step of the probe chain failed.
	ProbeStateFailure ProbeState = "failure"
)

// ProbeResult captures the outcome of a single database connectivity probe.
// ServerTime is only set on success, Error only on failure.
type ProbeResult struct {
	State      ProbeState `json:"state"`
	ServerTime *time.Time `json:"server_time,omitempty"`
	LatencyMS  *float64   `json:"latency_ms,omitempty"`
	Error      string     `json:"error,omitempty"`
	CheckedAt  time.Time  `json:"checked_at"`
}

// OK reports whether the probe reached the database and ran its query.
func (r ProbeResult) OK() bool {
	return r.State == ProbeStateSuccess
}
