// test/helpers/helpers.go
package helpers

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/gaoyipack/inventaris-be/internal/adapters/db"
	"github.com/gaoyipack/inventaris-be/internal/core/domain"
)

// TestDB represents a test database instance
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests and runs
// the embedded migrations against it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_inventaris",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:            "localhost",
		Port:            resource.GetPort("5432/tcp"),
		User:            "test",
		Password:        "test",
		Database:        "test_inventaris",
		SSLMode:         "disable",
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute * 30,
		ConnectTimeout:  time.Second * 10,
	}

	// Wait for the database to accept connections
	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	migrator, err := db.NewMigrator(dbConfig.URL(), TestLogger())
	require.NoError(t, err, "Could not create migrator")
	require.NoError(t, migrator.Up(context.Background()), "Could not run migrations")
	require.NoError(t, migrator.Close())

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis starts an in-process Redis server and returns a client
// connected to it. Both are cleaned up with the test.
func SetupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return client, mr
}

// CreateTestItemRecord creates a valid item record for testing, optionally
// customized by override functions.
func CreateTestItemRecord(overrides ...func(*domain.ItemRecord)) *domain.ItemRecord {
	record := &domain.ItemRecord{
		MaterialCode:     "A1",
		MaterialName:     "Test Material",
		Specification:    "Test Spec 100x50",
		WarehouseName:    "Main Warehouse",
		LotNo:            "LOT-01",
		StockUnit:        "Pcs",
		InventoryQty:     100,
		InitialQty:       100,
		InventoryStatus:  "Available",
		InventoryOrg:     "PT GAOYI PACKAGING INDONESIA",
		TypeOfOwner:      "Business Org",
		OwnerName:        "PT GAOYI PACKAGING INDONESIA",
		MaterialGrouping: "Pulp",
		History:          []domain.LedgerEntry{},
	}

	for _, override := range overrides {
		override(record)
	}

	return record
}

// FixedTime returns a stable UTC timestamp for deterministic ledger entries
func FixedTime() time.Time {
	return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
}
