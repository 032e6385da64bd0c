package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

type postgresStore struct {
	db *sql.DB
}

// NewPostgres mirrors keys into the kv_mirror table (see migrations/).
func NewPostgres(db *sql.DB) Store {
	return &postgresStore{db: db}
}

func (p *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_mirror WHERE key = $1`,
		key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("kv get failed",
			zap.String("layer", "repository"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}
	return value, nil
}

func (p *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_mirror (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`, key, string(value))
	if err != nil {
		logger.FromCtx(ctx).Error("kv set failed",
			zap.String("layer", "repository"),
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}

	logger.FromCtx(ctx).Debug("kv set",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (p *postgresStore) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM kv_mirror WHERE key = $1`, key)
	return err
}
