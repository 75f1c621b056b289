package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/gymnasion/internal/adapters/file"
	"github.com/aretw0/gymnasion/pkg/adapters/memory"
	"github.com/aretw0/gymnasion/pkg/adapters/redis"
	"github.com/aretw0/gymnasion/pkg/persistence/middleware"
	"github.com/aretw0/gymnasion/pkg/ports"
)

// Backend is the session persistence selected by the configuration.
type Backend struct {
	Store  ports.SessionStore
	Locker ports.DistributedLocker // nil unless the store is shared across replicas
	close  func() error
}

// Close releases connections held by the backend.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackend builds the configured store, wrapped in the redaction and
// encryption middleware when they are enabled.
func (c Config) OpenBackend(ctx context.Context, logger *slog.Logger) (*Backend, error) {
	b := &Backend{}

	var base ports.SessionStore
	switch c.Store {
	case StoreFile:
		base = file.New(c.SessionDir, file.WithTTL(c.SessionTTL))
	case StoreRedis:
		rs := redis.New(c.RedisAddr, c.RedisPassword, c.RedisDB,
			redis.WithPrefix(c.RedisPrefix),
			redis.WithTTL(c.SessionTTL),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", c.RedisAddr, err)
		}
		base = rs
		b.close = rs.Close
		if c.RedisLock {
			b.Locker = redis.NewLocker(rs.Client(), c.RedisPrefix)
		}
	default:
		base = memory.NewStore(memory.WithTTL(c.SessionTTL))
	}

	var mws []middleware.Middleware
	if len(c.RedactPatterns) > 0 {
		redact, err := middleware.NewRedactionMiddleware(c.RedactPatterns)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		mws = append(mws, redact)
	}
	enc, err := c.Encryption()
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if enc != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(*enc))
	}

	b.Store = middleware.Chain(base, mws...)
	logger.Info("session store ready",
		"store", c.Store,
		"encrypted", enc != nil,
		"redacted", len(c.RedactPatterns) > 0,
		"distributed_lock", b.Locker != nil,
	)
	return b, nil
}
