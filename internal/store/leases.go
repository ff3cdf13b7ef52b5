package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lzjever/mbos-tuid/internal/observability"
)

// Leases hands out machine IDs (0-255) to tuid-api replicas. A lease stays
// valid as long as its holder heartbeats within the TTL; expired leases are
// reclaimed on the next Acquire.
type Leases struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// ErrNoFreeMachineID is returned when all 256 machine IDs hold live leases.
var ErrNoFreeMachineID = errors.New("store: no free machine id")

// ErrLeaseLost is returned by Heartbeat when the lease row no longer belongs
// to this owner. The holder must stop minting: another instance may hold the
// same machine ID.
var ErrLeaseLost = errors.New("store: machine id lease lost")

func NewLeases(pool *pgxpool.Pool, ttl time.Duration) *Leases {
	return &Leases{pool: pool, ttl: ttl}
}

// Migrate creates the lease schema if it does not exist.
func (l *Leases) Migrate(ctx context.Context) error {
	_, err := l.pool.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS tuid;
		CREATE TABLE IF NOT EXISTS tuid.machine_leases (
			machine_id   SMALLINT PRIMARY KEY CHECK (machine_id BETWEEN 0 AND 255),
			owner        TEXT NOT NULL,
			heartbeat_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return fmt.Errorf("migrate leases: %w", err)
	}
	return nil
}

const claimSQL = `
	INSERT INTO tuid.machine_leases (machine_id, owner, heartbeat_at)
	SELECT i::smallint, $1, now()
	FROM generate_series(0, 255) AS i
	WHERE NOT EXISTS (
		SELECT 1 FROM tuid.machine_leases l WHERE l.machine_id = i
	)
	ORDER BY i
	LIMIT 1
	ON CONFLICT (machine_id) DO NOTHING
	RETURNING machine_id
`

// Acquire claims the lowest free machine ID for the given owner, reclaiming
// expired leases first. Two racing instances can pick the same candidate;
// the loser's insert conflicts and it retries with the next one.
func (l *Leases) Acquire(ctx context.Context, owner string) (byte, error) {
	start := time.Now()
	for attempt := 0; attempt < 10; attempt++ {
		_, err := l.pool.Exec(ctx,
			`DELETE FROM tuid.machine_leases WHERE heartbeat_at < now() - make_interval(secs => $1)`,
			l.ttl.Seconds())
		if err != nil {
			return 0, fmt.Errorf("reclaim expired leases: %w", err)
		}

		var machineID int16
		err = l.pool.QueryRow(ctx, claimSQL, owner).Scan(&machineID)
		if err == nil {
			observability.LeaseAcquireDuration.Observe(time.Since(start).Seconds())
			return byte(machineID), nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("claim machine id: %w", err)
		}
		// No candidate: either the table is full or an insert raced.
		var held int
		if err := l.pool.QueryRow(ctx, `SELECT count(*) FROM tuid.machine_leases`).Scan(&held); err != nil {
			return 0, fmt.Errorf("count leases: %w", err)
		}
		if held >= 256 {
			return 0, ErrNoFreeMachineID
		}
	}
	return 0, ErrNoFreeMachineID
}

// Heartbeat extends the lease. A zero-row update means the lease expired and
// was reclaimed, which the holder must treat as fatal.
func (l *Leases) Heartbeat(ctx context.Context, machineID byte, owner string) error {
	tag, err := l.pool.Exec(ctx,
		`UPDATE tuid.machine_leases SET heartbeat_at = now() WHERE machine_id = $1 AND owner = $2`,
		int16(machineID), owner)
	if err != nil {
		return fmt.Errorf("heartbeat lease: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrLeaseLost
	}
	return nil
}

// Release frees the machine ID on clean shutdown.
func (l *Leases) Release(ctx context.Context, machineID byte, owner string) error {
	_, err := l.pool.Exec(ctx,
		`DELETE FROM tuid.machine_leases WHERE machine_id = $1 AND owner = $2`,
		int16(machineID), owner)
	if err != nil {
		return fmt.Errorf("release lease: %w", err)
	}
	return nil
}
