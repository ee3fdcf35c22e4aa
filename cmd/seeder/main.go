// cmd/seeder/main.go
//
// Writes the initial inventory snapshot into the configured persistence
// backend. Refuses to overwrite an existing snapshot unless -force is given.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gaoyipack/inventaris-be/internal/adapters/db"
	redis_a "github.com/gaoyipack/inventaris-be/internal/adapters/redis_adapter"
	"github.com/gaoyipack/inventaris-be/internal/core/domain"
	"github.com/gaoyipack/inventaris-be/internal/core/ports"
	"github.com/gaoyipack/inventaris-be/internal/pkg/config"
	"github.com/gaoyipack/inventaris-be/internal/pkg/logger"
)

func main() {
	force := flag.Bool("force", false, "overwrite an existing snapshot")
	flag.Parse()

	slogger := logger.SetupLogger("info", "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	store, cleanup, err := buildSnapshotStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize snapshot store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	if !*force {
		if _, err := store.Load(ctx); err == nil {
			slogger.Info("snapshot already exists, nothing to do (use -force to overwrite)")
			return
		} else if !errors.Is(err, ports.ErrNoSnapshot) {
			slogger.Error("failed to check existing snapshot", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	snapshot := domain.NewSnapshot(domain.SeedRecords(), time.Now())
	if err := store.Save(ctx, snapshot); err != nil {
		slogger.Error("failed to save seed snapshot", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("seed snapshot written",
		slog.String("backend", cfg.Persistence.Backend),
		slog.String("snapshot_id", snapshot.SnapshotID.String()),
		slog.Int("records", len(snapshot.Records)))
}

// buildSnapshotStore wires the snapshot store selected by configuration
func buildSnapshotStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.SnapshotStore, func(), error) {
	switch cfg.Persistence.Backend {
	case config.BackendPostgres:
		migrator, err := db.NewMigrator(cfg.DatabaseURL(), slogger)
		if err != nil {
			return nil, nil, err
		}
		if err := migrator.Up(ctx); err != nil {
			migrator.Close()
			return nil, nil, err
		}
		migrator.Close()

		database, err := db.NewDatabase(ctx, &db.Config{
			Host:            cfg.Database.Host,
			Port:            cfg.Database.Port,
			User:            cfg.Database.User,
			Password:        cfg.Database.Password,
			Database:        cfg.Database.Name,
			SSLMode:         cfg.Database.SSLMode,
			MaxConnections:  cfg.Database.MaxConnections,
			MinConnections:  cfg.Database.MinConnections,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			ConnectTimeout:  cfg.Database.ConnectTimeout,
		}, slogger)
		if err != nil {
			return nil, nil, err
		}
		return db.NewSnapshotStore(database, slogger), database.Close, nil

	default:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, err
		}
		cleanup := func() { client.Close() }
		return redis_a.NewSnapshotStore(client, cfg.Redis.SnapshotKey, slogger), cleanup, nil
	}
}
