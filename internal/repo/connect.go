package repo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectTimeout is how long Connect keeps retrying before giving up.
const ConnectTimeout = 30 * time.Second

// Connect opens a pool and pings it with exponential backoff until the
// database answers, ctx is done, or ConnectTimeout elapses. Containers
// started together routinely see the API come up before Postgres.
func Connect(ctx context.Context, dsn string, log *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.Connect: %w", err)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = ConnectTimeout

	ping := func() error { return pool.Ping(ctx) }
	notify := func(err error, wait time.Duration) {
		log.WarnContext(ctx, "database not ready, retrying", "wait", wait, "error", err)
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(exp, ctx), notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.Connect: ping: %w", err)
	}
	return pool, nil
}
