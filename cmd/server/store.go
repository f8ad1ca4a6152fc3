package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm/logger"

	"github.com/artem13815/accounts/pkg/config"
	"github.com/artem13815/accounts/pkg/health"
	"github.com/artem13815/accounts/pkg/health/checkers"
	pgrepo "github.com/artem13815/accounts/pkg/repository/postgres"
	sqliterepo "github.com/artem13815/accounts/pkg/repository/sqlite"
	pgstore "github.com/artem13815/accounts/pkg/storage/postgres"
	sqlitestore "github.com/artem13815/accounts/pkg/storage/sqlite"
	"github.com/artem13815/accounts/pkg/user"
)

// store bundles the repository for the configured driver with its readiness check.
type store struct {
	repo    user.Repository
	checker health.Checker
	close   func()
}

func openStore(ctx context.Context, cfg config.Config, migrate bool) (*store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := sqlitestore.Open(cfg.SQLitePath, logger.Warn)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := sqliterepo.AutoMigrate(db); err != nil {
				_ = sqlitestore.Close(db)
				return nil, err
			}
		}
		return &store{
			repo:    sqliterepo.NewUserRepository(db),
			checker: checkers.NewSQLiteChecker(db),
			close: func() {
				if err := sqlitestore.Close(db); err != nil {
					log.Printf("close sqlite: %v", err)
				}
			},
		}, nil
	default:
		pool, err := pgstore.Connect(ctx, cfg.DatabaseURL, pgstore.PoolOptions{})
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		if migrate {
			if err := pgstore.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &store{
			repo:    pgrepo.NewUserRepository(pool),
			checker: checkers.NewPostgresChecker(pool),
			close:   pool.Close,
		}, nil
	}
}
