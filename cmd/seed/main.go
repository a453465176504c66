package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-docs/internal/auth"
	"github.com/spec-kit/hr-docs/internal/config"
	"github.com/spec-kit/hr-docs/internal/observability"
	"github.com/spec-kit/hr-docs/internal/persistence"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	name := flag.String("name", "Administrador", "admin display name")
	password := flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password (defaults to SEED_ADMIN_PASSWORD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if *password == "" {
		logger.Fatal("admin password required: pass -password or set SEED_ADMIN_PASSWORD")
	}
	if cfg.Postgres.DSN == "" {
		logger.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	hash, err := auth.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	admin := persistence.SeedAdmin{Username: *username, Name: *name, PasswordHash: hash}
	if err := persistence.SeedInitialData(ctx, pg.PoolHandle(), admin, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed complete", zap.String("username", *username))
}
