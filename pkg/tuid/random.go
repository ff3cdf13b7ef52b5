package tuid

import "math/rand"

// dedupRetryLimit caps the collision-retry loop in RandomGenerator.Next.
// With 16 bits of randomness per attempt the expected attempt count stays
// near 1 until a bucket is almost full, so hitting the cap means the bucket
// is effectively exhausted.
const dedupRetryLimit = 1000

// RandomGenerator mints IDs whose last two bytes are random, rejecting any
// value already issued in the current time bucket. Unlike Generator it does
// not order IDs within a bucket, but it avoids the predictability of a
// sequence counter. It holds mutable state with no internal locking; see the
// package documentation for the sharing discipline.
type RandomGenerator struct {
	machineID  byte
	lastPeriod int64
	issued     map[ID]struct{}
	retries    uint64
}

// NewRandomGenerator creates a RandomGenerator for the given machine ID. It
// reads the clock immediately and fails with ErrClockBehindEpoch if the
// system time is before Epoch.
func NewRandomGenerator(machineID byte) (*RandomGenerator, error) {
	elapsed, err := sinceEpoch()
	if err != nil {
		return nil, err
	}
	return &RandomGenerator{
		machineID:  machineID,
		lastPeriod: rescalePeriod(elapsed),
		issued:     make(map[ID]struct{}),
	}, nil
}

// Next mints a new ID. The dedup set is cleared when the time bucket
// advances. If dedupRetryLimit attempts all collide, Next returns
// ErrCapacityExceeded; it never returns a duplicate.
func (g *RandomGenerator) Next() (ID, error) {
	elapsed, err := sinceEpoch()
	if err != nil {
		return ID{}, err
	}
	period := rescalePeriod(elapsed)
	if period > g.lastPeriod {
		clear(g.issued)
	}
	for attempt := 0; attempt < dedupRetryLimit; attempt++ {
		id := encode(elapsed, g.machineID, uint16(rand.Uint32()))
		if _, dup := g.issued[id]; dup {
			g.retries++
			continue
		}
		g.issued[id] = struct{}{}
		g.lastPeriod = period
		return id, nil
	}
	return ID{}, ErrCapacityExceeded
}

// MachineID returns the disambiguator seed fixed at construction.
func (g *RandomGenerator) MachineID() byte { return g.machineID }

// DedupRetries returns the cumulative number of collision retries over the
// generator's lifetime. Callers can diff successive readings to observe
// collision pressure.
func (g *RandomGenerator) DedupRetries() uint64 { return g.retries }
