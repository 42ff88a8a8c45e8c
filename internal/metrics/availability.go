package metrics

import (
	"math"
	"time"

	"sqlprobe/internal/models"
)

// AvailabilitySummary summarises database reachability over probe history.
// Not-configured results are counted separately; they are an expected state,
// not a failure.
type AvailabilitySummary struct {
	AvailabilityPercent float64 `json:"availability_percent"`
	TotalProbes         int     `json:"total_probes"`
	Passing             int     `json:"passing"`
	Failing             int     `json:"failing"`
	NotConfigured       int     `json:"not_configured"`
	LastState           string  `json:"last_state,omitempty"`
	LastError           string  `json:"last_error,omitempty"`
	LastChecked         string  `json:"last_checked,omitempty"`
}

// ComputeAvailability aggregates availability statistics from history.
func ComputeAvailability(history []models.ProbeResult) AvailabilitySummary {
	summary := AvailabilitySummary{}
	var lastChecked time.Time

	for _, result := range history {
		switch result.State {
		case models.ProbeStateSuccess:
			summary.Passing++
		case models.ProbeStateFailure:
			summary.Failing++
		case models.ProbeStateNotConfigured:
			summary.NotConfigured++
		}
		if result.CheckedAt.After(lastChecked) {
			lastChecked = result.CheckedAt
			summary.LastState = string(result.State)
			summary.LastError = result.Error
		}
	}

	summary.TotalProbes = summary.Passing + summary.Failing + summary.NotConfigured
	attempted := summary.Passing + summary.Failing
	if attempted > 0 {
		summary.AvailabilityPercent = round2(float64(summary.Passing) / float64(attempted) * 100)
	}
	if !lastChecked.IsZero() {
		summary.LastChecked = lastChecked.UTC().Format(time.RFC3339)
	}
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
