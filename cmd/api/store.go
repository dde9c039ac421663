package main

import (
	"context"
	"fmt"

	"github.com/TaylorONeal/jetsweep/internal/config"
	"github.com/TaylorONeal/jetsweep/internal/database"
	"github.com/TaylorONeal/jetsweep/internal/recent"
)

// openStore connects the configured recent search backend. The returned
// close function releases its connections.
func openStore(ctx context.Context, cfg *config.Config) (recent.Repository, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := recent.NewSQLiteRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("prepare sqlite schema: %w", err)
		}
		return repo, func() { _ = db.Close() }, nil

	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		repo := recent.NewPostgresRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("prepare postgres schema: %w", err)
		}
		return repo, pool.Close, nil

	case config.StoreRedis:
		client, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return recent.NewRedisRepository(client), func() { _ = client.Close() }, nil

	default:
		return recent.NewInMemoryRepository(), func() {}, nil
	}
}
