package checkers

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = time.Second

// PostgresChecker pings the pgx pool the user repository runs on.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

func (c *PostgresChecker) Name() string { return "postgres" }

// Check reports pool saturation alongside a failed ping.
func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.pool.Ping(ctx); err != nil {
		st := c.pool.Stat()
		return fmt.Errorf("ping (%d/%d conns acquired): %w", st.AcquiredConns(), st.MaxConns(), err)
	}
	return nil
}
