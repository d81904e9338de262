package repository

import (
	"context"
	"fmt"
	"time"

	"nexus/internal/cache"
	"nexus/internal/config"
	"nexus/internal/database"
)

// OpenKV connects the backend selected by cfg.StoreDriver. The returned
// closer releases the connection.
func OpenKV(cfg *config.Config) (KVStore, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return NewMemoryKV(), func() error { return nil }, nil
	case config.StoreRedis:
		client, err := cache.NewClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis store: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis store: %w", err)
		}
		return NewRedisKV(client), client.Close, nil
	case config.StorePostgres, config.StoreSQLite:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		closer := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return NewSQLKV(db), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
