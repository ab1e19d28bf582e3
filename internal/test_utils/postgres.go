package test_utils

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/utilization/internal/config"
	"github.com/klokku/utilization/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const snapshotName = "utilization-test-snapshot"

// TestDB is a migrated Postgres container shared by the tests of one package.
// Err is set when the container could not be started; Open then skips the calling test.
type TestDB struct {
	Container *postgres.PostgresContainer
	Config    config.Database
	Err       error
}

// StartPostgres starts a Postgres container, applies all migrations and snapshots the result
// so every test can start from a clean schema.
func StartPostgres() *TestDB {
	ctx := context.Background()
	cfg := config.Database{
		User: "test_utilization",
		Pass: "test_utilization",
		Name: "utilization",
	}

	container, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(cfg.Name),
		postgres.WithUsername(cfg.User),
		postgres.WithPassword(cfg.Pass),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Warnf("failed to start postgres container, repository tests will be skipped: %v", err)
		return &TestDB{Err: err}
	}

	host, err := container.Host(ctx)
	if err != nil {
		return &TestDB{Container: container, Err: err}
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return &TestDB{Container: container, Err: err}
	}
	cfg.Host = host
	cfg.Port = port.Int()
	log.Infof("Postgres container started at %s:%d", cfg.Host, cfg.Port)

	if err := database.Migrate(cfg); err != nil {
		return &TestDB{Container: container, Err: err}
	}
	if err := container.Snapshot(ctx, postgres.WithSnapshotName(snapshotName)); err != nil {
		return &TestDB{Container: container, Err: err}
	}
	return &TestDB{Container: container, Config: cfg}
}

// Open returns a pool to the test database. The database is restored to the migrated snapshot
// when the test finishes.
func (d *TestDB) Open(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if d.Err != nil {
		t.Skipf("postgres not available: %v", d.Err)
	}
	ctx := context.Background()
	pool, err := database.Open(ctx, d.Config)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}
	t.Cleanup(func() {
		pool.Close()
		if err := d.Container.Restore(ctx, postgres.WithSnapshotName(snapshotName)); err != nil {
			t.Errorf("failed to restore database snapshot: %v", err)
		}
	})
	return pool
}

// Terminate stops the container, if one was started.
func (d *TestDB) Terminate() {
	if d.Container == nil {
		return
	}
	if err := testcontainers.TerminateContainer(d.Container); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
}
