package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/pratham13103/OfferLetter-Verification/library/yamlenv"
)

type PostgresConfig struct {
	Conn        *yamlenv.Env[string] `yaml:"conn"`
	MaxConns    *yamlenv.Env[int32]  `yaml:"max_conns"`
	AutoMigrate *yamlenv.Env[bool]   `yaml:"auto_migrate"`
}

type PG struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewPG открывает пул соединений и проверяет доступность базы.
// Соединение берётся из пула на время одного запроса и возвращается обратно.
func NewPG(ctx context.Context, conn string, maxConns int32, log zerolog.Logger) (*PG, error) {
	cfg, err := pgxpool.ParseConfig(conn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	l := log.With().Str("component", "pg").Logger()
	l.Info().
		Str("host", cfg.ConnConfig.Host).
		Str("database", cfg.ConnConfig.Database).
		Int32("max_conns", cfg.MaxConns).
		Msg("postgres connected")

	return &PG{pool: pool, log: l}, nil
}

func (p *PG) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *PG) Close() {
	if p == nil || p.pool == nil {
		return
	}

	p.pool.Close()
	p.log.Info().Msg("postgres pool closed")
}
