package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sqlprobe/internal/models"
)

func TestRenderPage_NotConfigured(t *testing.T) {
	page := renderPage(models.ProbeResult{State: models.ProbeStateNotConfigured})
	require.Contains(t, page, "<h1>Welcome to the SQL connectivity probe</h1>")
	require.Contains(t, page, "No database connection string configured")
}

func TestRenderPage_Success(t *testing.T) {
	serverTime := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	page := renderPage(models.ProbeResult{
		State:      models.ProbeStateSuccess,
		ServerTime: &serverTime,
	})
	require.Contains(t, page, "Successfully connected to the database.")
	require.Contains(t, page, "Server time: 2025-06-01T12:30:00Z")
}

func TestRenderPage_Failure(t *testing.T) {
	page := renderPage(models.ProbeResult{
		State: models.ProbeStateFailure,
		Error: "login error: token audience rejected",
	})
	require.Contains(t, page, "Database connection failed: login error: token audience rejected")
}

func TestRenderPage_FailureIsNotEscaped(t *testing.T) {
	// Documented behavior: the message passes through verbatim.
	page := renderPage(models.ProbeResult{
		State: models.ProbeStateFailure,
		Error: `unexpected response <b>503</b>`,
	})
	require.Contains(t, page, "unexpected response <b>503</b>")
}
