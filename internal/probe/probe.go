package probe

import (
	"context"
	"strings"
	"time"

	"sqlprobe/internal/identity"
	"sqlprobe/internal/models"
)

// Conn is an open database session that can run the probe query.
type Conn interface {
	ServerTime(ctx context.Context) (time.Time, error)
	Close() error
}

// Connector opens database sessions authenticated with a bearer token.
type Connector interface {
	Open(ctx context.Context, connString, accessToken string) (Conn, error)
}

// Prober performs a single best-effort database connectivity check:
// acquire a token, open a connection with it, run one scalar query.
// The first failing step wins and the rest are skipped; failures become
// part of the result, they never propagate.
type Prober struct {
	connString string
	tokens     identity.TokenProvider
	connector  Connector
	timeout    time.Duration
}

// New creates a prober for the given connection string. An empty connection
// string is valid and reported as not configured on every run.
func New(connString string, tokens identity.TokenProvider, connector Connector, timeout time.Duration) *Prober {
	return &Prober{
		connString: connString,
		tokens:     tokens,
		connector:  connector,
		timeout:    timeout,
	}
}

// Run executes one probe. Each run opens and closes its own connection;
// nothing is reused between runs.
func (p *Prober) Run(ctx context.Context) models.ProbeResult {
	result := models.ProbeResult{CheckedAt: time.Now().UTC()}

	if strings.TrimSpace(p.connString) == "" {
		result.State = models.ProbeStateNotConfigured
		return result
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()

	token, err := p.tokens.GetToken(ctx)
	if err != nil {
		return failed(result, err)
	}

	conn, err := p.connector.Open(ctx, p.connString, token.Token)
	if err != nil {
		return failed(result, err)
	}
	defer conn.Close()

	serverTime, err := conn.ServerTime(ctx)
	if err != nil {
		return failed(result, err)
	}

	latency := float64(time.Since(start).Milliseconds())
	result.State = models.ProbeStateSuccess
	result.ServerTime = &serverTime
	result.LatencyMS = &latency
	return result
}

func failed(result models.ProbeResult, err error) models.ProbeResult {
	result.State = models.ProbeStateFailure
	result.Error = err.Error()
	return result
}
