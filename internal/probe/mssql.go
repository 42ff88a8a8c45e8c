package probe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
)

// serverTimeQuery is the fixed scalar query run against the database.
const serverTimeQuery = "SELECT SYSDATETIMEOFFSET()"

// mssqlConnector opens Azure SQL sessions authenticated with an access
// token in place of a username/password.
type mssqlConnector struct{}

// NewMSSQLConnector returns the production Connector backed by go-mssqldb.
func NewMSSQLConnector() Connector {
	return mssqlConnector{}
}

func (mssqlConnector) Open(ctx context.Context, connString, accessToken string) (Conn, error) {
	connector, err := mssql.NewAccessTokenConnector(connString, func() (string, error) {
		return accessToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("build connector: %w", err)
	}

	db := sql.OpenDB(connector)
	// OpenDB does not dial. Ping forces the handshake so connection
	// failures surface here instead of at query time.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open connection: %w", err)
	}
	return &mssqlConn{db: db}, nil
}

type mssqlConn struct {
	db *sql.DB
}

func (c *mssqlConn) ServerTime(ctx context.Context) (time.Time, error) {
	var serverTime time.Time
	if err := c.db.QueryRowContext(ctx, serverTimeQuery).Scan(&serverTime); err != nil {
		return time.Time{}, fmt.Errorf("query server time: %w", err)
	}
	return serverTime, nil
}

func (c *mssqlConn) Close() error {
	return c.db.Close()
}
