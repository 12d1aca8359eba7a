package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool — пул соединений к Postgres по DSN.
// maxConns > 0 переопределяет размер пула; queryTimeout > 0 задаёт
// statement_timeout на стороне сервера, чтобы зависший запрос не держал соединение.
// В конце Ping — fail-fast при недоступной БД.
func NewPool(ctx context.Context, dsn string, maxConns int32, queryTimeout time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if queryTimeout > 0 {
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = durationMillis(queryTimeout)
	}

	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if connErr := pool.Ping(ctx); connErr != nil {
		pool.Close()
		return nil, connErr
	}

	return pool, nil
}
