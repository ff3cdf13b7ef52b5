package tuid

import "math"

// Generator mints strictly increasing IDs on a single machine using a
// per-bucket sequence counter. It holds mutable state with no internal
// locking; see the package documentation for the sharing discipline.
type Generator struct {
	machineID  byte
	sequence   uint16
	lastPeriod int64
}

// NewGenerator creates a Generator for the given machine ID. It reads the
// clock immediately and fails with ErrClockBehindEpoch if the system time is
// before Epoch.
func NewGenerator(machineID byte) (*Generator, error) {
	elapsed, err := sinceEpoch()
	if err != nil {
		return nil, err
	}
	return &Generator{machineID: machineID, lastPeriod: rescalePeriod(elapsed)}, nil
}

// Next mints the next ID. The sequence counter resets when the time bucket
// advances, so the first ID of each bucket carries sequence 1. A bucket holds
// at most 65535 IDs; past that Next returns ErrCapacityExceeded instead of
// wrapping into a possible duplicate.
func (g *Generator) Next() (ID, error) {
	elapsed, err := sinceEpoch()
	if err != nil {
		return ID{}, err
	}
	period := rescalePeriod(elapsed)
	if period > g.lastPeriod {
		g.sequence = 0
	}
	if g.sequence == math.MaxUint16 {
		return ID{}, ErrCapacityExceeded
	}
	g.sequence++
	g.lastPeriod = period
	return encode(elapsed, g.machineID, g.sequence), nil
}

// MachineID returns the disambiguator seed fixed at construction.
func (g *Generator) MachineID() byte { return g.machineID }

// New mints a single ID with sequence 0 and no anti-collision state. Two
// calls within the same time bucket can return the same value, so this is
// only suitable for low-frequency use; prefer a Generator.
func New(machineID byte) (ID, error) {
	elapsed, err := sinceEpoch()
	if err != nil {
		return ID{}, err
	}
	return encode(elapsed, machineID, 0), nil
}
