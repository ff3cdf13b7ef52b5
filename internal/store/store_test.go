package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestLeasesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tuid"),
		postgres.WithUsername("tuid"),
		postgres.WithPassword("tuid_pass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections"),
		),
	)
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	pool, err := NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to connect: %s", err)
	}
	defer pool.Close()

	leases := NewLeases(pool, 30*time.Second)
	if err := leases.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %s", err)
	}

	t.Run("AcquireLowestFree", func(t *testing.T) {
		id, err := leases.Acquire(ctx, "instance-a")
		if err != nil {
			t.Fatalf("failed to acquire lease: %s", err)
		}
		if id != 0 {
			t.Errorf("expected machine id 0, got %d", id)
		}
	})

	t.Run("AcquireSkipsHeld", func(t *testing.T) {
		id, err := leases.Acquire(ctx, "instance-b")
		if err != nil {
			t.Fatalf("failed to acquire lease: %s", err)
		}
		if id != 1 {
			t.Errorf("expected machine id 1, got %d", id)
		}
	})

	t.Run("Heartbeat", func(t *testing.T) {
		if err := leases.Heartbeat(ctx, 0, "instance-a"); err != nil {
			t.Fatalf("heartbeat failed: %s", err)
		}
	})

	t.Run("HeartbeatWrongOwner", func(t *testing.T) {
		err := leases.Heartbeat(ctx, 0, "instance-z")
		if !errors.Is(err, ErrLeaseLost) {
			t.Fatalf("expected ErrLeaseLost, got %v", err)
		}
	})

	t.Run("ReleaseThenReacquire", func(t *testing.T) {
		if err := leases.Release(ctx, 0, "instance-a"); err != nil {
			t.Fatalf("release failed: %s", err)
		}
		id, err := leases.Acquire(ctx, "instance-c")
		if err != nil {
			t.Fatalf("failed to acquire lease: %s", err)
		}
		if id != 0 {
			t.Errorf("expected released machine id 0, got %d", id)
		}
	})

	t.Run("ExpiredLeaseReclaimed", func(t *testing.T) {
		_, err := pool.Exec(ctx,
			`UPDATE tuid.machine_leases SET heartbeat_at = now() - interval '1 hour' WHERE machine_id = 1`)
		if err != nil {
			t.Fatalf("failed to age lease: %s", err)
		}
		id, err := leases.Acquire(ctx, "instance-d")
		if err != nil {
			t.Fatalf("failed to acquire lease: %s", err)
		}
		if id != 1 {
			t.Errorf("expected expired machine id 1, got %d", id)
		}
	})

	t.Run("HeartbeatAfterReclaimFails", func(t *testing.T) {
		err := leases.Heartbeat(ctx, 1, "instance-b")
		if !errors.Is(err, ErrLeaseLost) {
			t.Fatalf("expected ErrLeaseLost, got %v", err)
		}
	})
}
