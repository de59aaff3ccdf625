package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitness-scheduler/common/metrics"

	"github.com/uptrace/bun"
)

// ErrConnectionFailed marks failures to reach the store at all, as opposed
// to failures of a statement on a live connection.
var ErrConnectionFailed = errors.New("database connection failed")

// Gateway hands out one dedicated connection per operation.
type Gateway struct {
	db      *bun.DB
	metrics *metrics.DatabaseMetrics
}

func NewGateway(db *bun.DB, m *metrics.Metrics) *Gateway {
	g := &Gateway{db: db}
	if m != nil {
		g.metrics = m.Database
	}
	return g
}

// WithConn acquires a connection, runs fn on it and releases it on every
// exit path.
func (g *Gateway) WithConn(ctx context.Context, fn func(ctx context.Context, conn bun.Conn) error) error {
	start := time.Now()
	conn, err := g.db.Conn(ctx)
	g.metrics.RecordAcquire(ctx, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer conn.Close()

	return fn(ctx, conn)
}

// Ping checks that a connection can be acquired and used.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		if err := conn.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
		}
		return nil
	})
}

// Observe times a single statement and records it under operation/table.
func (g *Gateway) Observe(ctx context.Context, operation, table string, fn func() error) error {
	start := time.Now()
	err := fn()
	g.metrics.RecordQuery(ctx, operation, table, time.Since(start), err)
	return err
}
