package minter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/mbos-tuid/internal/observability"
	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

// Mode selects the anti-collision policy of the underlying generator.
type Mode string

const (
	ModeSequence Mode = "sequence"
	ModeRandom   Mode = "random"
)

// Minter owns the process-wide tuid generator and serializes access to it.
// pkg/tuid generators carry no internal locking, so all HTTP handlers mint
// through this single mutex.
type Minter struct {
	mu          sync.Mutex
	mode        Mode
	machineID   byte
	seq         *tuid.Generator
	rnd         *tuid.RandomGenerator
	seenRetries uint64
	log         *zap.Logger
}

// New builds a Minter for the given mode and machine ID. Construction reads
// the clock and fails if it is behind the tuid epoch.
func New(mode Mode, machineID byte, log *zap.Logger) (*Minter, error) {
	m := &Minter{mode: mode, machineID: machineID, log: log}
	var err error
	switch mode {
	case ModeSequence:
		m.seq, err = tuid.NewGenerator(machineID)
	case ModeRandom:
		m.rnd, err = tuid.NewRandomGenerator(machineID)
	default:
		return nil, fmt.Errorf("unknown minter mode %q", mode)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Mint produces n IDs or fails with the underlying generator error. A batch
// is all-or-nothing: a capacity or clock failure mid-batch discards the IDs
// minted so far (they were never observed by the caller).
func (m *Minter) Mint(n int) ([]tuid.ID, error) {
	start := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]tuid.ID, 0, n)
	for i := 0; i < n; i++ {
		id, err := m.next()
		if err != nil {
			observability.MintFailuresTotal.WithLabelValues(failureReason(err)).Inc()
			m.recordRetries()
			m.log.Warn("mint failed", zap.Error(err), zap.Int("requested", n), zap.Int("minted", i))
			return nil, err
		}
		ids = append(ids, id)
	}
	m.recordRetries()

	observability.IDsMintedTotal.WithLabelValues(string(m.mode)).Add(float64(n))
	observability.MintBatchSize.Observe(float64(n))
	observability.MintDuration.Observe(time.Since(start).Seconds())
	return ids, nil
}

// recordRetries publishes collision retries accumulated since the last
// reading. Callers must hold m.mu.
func (m *Minter) recordRetries() {
	if m.mode != ModeRandom {
		return
	}
	if r := m.rnd.DedupRetries(); r > m.seenRetries {
		observability.DedupRetriesTotal.Add(float64(r - m.seenRetries))
		m.seenRetries = r
	}
}

func (m *Minter) next() (tuid.ID, error) {
	if m.mode == ModeRandom {
		return m.rnd.Next()
	}
	return m.seq.Next()
}

func (m *Minter) Mode() Mode      { return m.mode }
func (m *Minter) MachineID() byte { return m.machineID }

func failureReason(err error) string {
	switch {
	case errors.Is(err, tuid.ErrCapacityExceeded):
		return "capacity"
	case errors.Is(err, tuid.ErrClockBehindEpoch):
		return "clock"
	}
	return "other"
}
