package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/statusmap/internal/config"
	"github.com/aretw0/statusmap/pkg/adapters/memory"
	"github.com/aretw0/statusmap/pkg/adapters/redis"
	"github.com/aretw0/statusmap/pkg/adapters/sqlite"
	"github.com/aretw0/statusmap/pkg/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore creates the definition store selected by cfg.
// The returned closer releases its connections.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (ports.DefinitionStore, io.Closer, error) {
	switch cfg.Kind {
	case "", config.StoreMemory:
		return memory.NewStore(), nopCloser{}, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithTTL(cfg.Redis.TTL)}
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		return store, store, nil
	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}
