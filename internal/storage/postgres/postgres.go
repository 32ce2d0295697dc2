// Package postgres stores report summaries in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/checkup/internal/config"
)

// ErrUnreachable is returned when the report history database does not answer.
var ErrUnreachable = errors.New("database unreachable")

// PingTimeout bounds the reachability check made when a pool is opened.
const PingTimeout = 3 * time.Second

// Pool is a report history connection pool.
type Pool struct {
	pool *pgxpool.Pool
	addr string
}

// NewPool opens a pool for cfg and checks that the server answers.
//
// Precondition: cfg.Enabled must be true.
// Postcondition: Returns a Pool that answered a ping, or an error wrapping
// ErrUnreachable when the server did not respond within PingTimeout.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "checkup"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	p := &Pool{pool: pool, addr: fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Name)}
	if err := p.Health(ctx, PingTimeout); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Health pings the server.
//
// Postcondition: Returns nil, or an error wrapping ErrUnreachable that names
// the server address.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnreachable, p.addr, err)
	}
	return nil
}

// Reports returns a repository over this pool.
func (p *Pool) Reports() *ReportRepository {
	return NewReportRepository(p.pool)
}

// Close releases every connection. The pool is unusable afterwards.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB exposes the raw pool for test schema setup.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}
