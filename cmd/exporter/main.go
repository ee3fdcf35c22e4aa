// cmd/exporter/main.go
//
// Renders the current inventory snapshot to an .xlsx file on disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gaoyipack/inventaris-be/internal/adapters/db"
	"github.com/gaoyipack/inventaris-be/internal/adapters/excel"
	redis_a "github.com/gaoyipack/inventaris-be/internal/adapters/redis_adapter"
	"github.com/gaoyipack/inventaris-be/internal/core/ports"
	"github.com/gaoyipack/inventaris-be/internal/core/services"
	"github.com/gaoyipack/inventaris-be/internal/pkg/config"
	"github.com/gaoyipack/inventaris-be/internal/pkg/logger"
)

func main() {
	output := flag.String("o", "", "output file path (default: <export dir>/<prefix>_<timestamp>.xlsx)")
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

	service := services.NewInventoryService(store, excel.NewExporter(slogger), slogger)
	if err := service.Load(ctx); err != nil {
		slogger.Error("failed to load inventory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	data, err := service.Export(ctx)
	if err != nil {
		slogger.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	path := *output
	if path == "" {
		filename := fmt.Sprintf("%s_%s.xlsx", cfg.Export.FilePrefix, time.Now().Format("20060102_150405"))
		path = filepath.Join(cfg.Export.Directory, filename)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		slogger.Error("failed to write export file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("export written",
		slog.String("path", path),
		slog.Int("records", len(service.Records())),
		slog.Int("bytes", len(data)))
}

// buildSnapshotStore wires the snapshot store selected by configuration
func buildSnapshotStore(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.SnapshotStore, func(), error) {
	switch cfg.Persistence.Backend {
	case config.BackendPostgres:
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
