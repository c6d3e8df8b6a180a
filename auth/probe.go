package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
)

// Prober proves a credential is accepted by the backing system by opening a
// short-lived, pool-independent connection with it.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: probes carry their own timeout and must honor cancellation.
// - Ownership: the probe connection is always torn down on the probe's own
//   exit path, regardless of outcome or caller cancellation.
type Prober interface {
	// ProbePassword tests a username/secret pair under the given login mechanism.
	ProbePassword(ctx context.Context, username, secret, logmech string) error

	// ProbeToken tests a bearer token under the token-based login mechanism.
	ProbeToken(ctx context.Context, token string) error
}

// ProberConfig configures the SQL prober.
type ProberConfig struct {
	// Driver is the database/sql driver name, also used as the DSN scheme.
	// Default: "teradata"
	Driver string

	// Host and Port locate the backing system.
	// Default port: 1025
	Host string
	Port int

	// Database is the default database for probe connections.
	Database string

	// Timeout bounds the whole probe: connect plus trivial query.
	// Default: 5 seconds
	Timeout time.Duration
}

// SQLProber validates credentials by opening a fresh connection with the
// caller's credentials and running a trivial query. It never touches the
// shared pool.
type SQLProber struct {
	config ProberConfig

	// open is swappable for tests.
	open func(ctx context.Context, driver, dsn string) (*sqlx.DB, error)
}

// NewSQLProber creates a SQL prober.
func NewSQLProber(config ProberConfig) *SQLProber {
	if config.Driver == "" {
		config.Driver = "teradata"
	}
	if config.Port <= 0 {
		config.Port = 1025
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &SQLProber{
		config: config,
		open:   sqlx.ConnectContext,
	}
}

// ProbePassword opens a short-lived connection with the given credentials
// and login mechanism. A successful trivial query proves validity.
func (p *SQLProber) ProbePassword(ctx context.Context, username, secret, logmech string) error {
	dsn := fmt.Sprintf("%s://%s:%s@%s:%d/%s?LOGMECH=%s",
		p.config.Driver,
		url.QueryEscape(username),
		url.QueryEscape(secret),
		p.config.Host,
		p.config.Port,
		p.config.Database,
		logmech,
	)
	return p.probe(ctx, dsn)
}

// ProbeToken opens a short-lived connection using the token-based login
// mechanism; no username is required.
func (p *SQLProber) ProbeToken(ctx context.Context, token string) error {
	dsn := fmt.Sprintf("%s://@%s:%d/%s?LOGMECH=JWT&LOGDATA=token=%s",
		p.config.Driver,
		p.config.Host,
		p.config.Port,
		p.config.Database,
		url.QueryEscape(token),
	)
	return p.probe(ctx, dsn)
}

func (p *SQLProber) probe(ctx context.Context, dsn string) error {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	db, err := p.open(ctx, p.config.Driver, dsn)
	if err != nil {
		return fmt.Errorf("auth: probe connect: %w", err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRowxContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("auth: probe query: %w", err)
	}
	return nil
}

// Ensure SQLProber implements Prober
var _ Prober = (*SQLProber)(nil)
