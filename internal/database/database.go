package database

import (
	"context"
	"fmt"
	"time"

	"cafeteria-dash/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const (
	pingAttempts = 5
	pingBackoff  = 500 * time.Millisecond
)

// NewPool opens the pool used to read the catalog at startup. The database
// may still be starting, so the first ping is retried a few times.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	lifetime := time.Duration(cfg.MaxConnLifetime) * time.Second
	pc.MaxConns = int32(cfg.MaxConnections)
	pc.MinConns = int32(cfg.MinConnections)
	pc.MaxConnLifetime = lifetime
	pc.MaxConnIdleTime = lifetime

	log := logger.With().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Logger()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := ping(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Int32("max_connections", pc.MaxConns).Msg("catalog database ready")
	return pool, nil
}

func ping(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = pingBackoff
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, pingAttempts-1), ctx)

	attempt := 0
	err := backoff.RetryNotify(
		func() error {
			attempt++
			return pool.Ping(ctx)
		},
		policy,
		func(err error, wait time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("catalog database not reachable yet")
		},
	)
	if err != nil {
		return fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
	}
	return nil
}

// ApplySchema creates the catalog tables when they do not exist yet.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool, schema string, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply catalog schema: %w", err)
	}
	logger.Info().Msg("catalog schema applied")
	return nil
}
