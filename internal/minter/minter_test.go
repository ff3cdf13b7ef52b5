package minter

import (
	"testing"

	"go.uber.org/zap"

	"github.com/lzjever/mbos-tuid/pkg/tuid"
)

func TestNewUnknownMode(t *testing.T) {
	if _, err := New("roundrobin", 1, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestMintSequenceBatch(t *testing.T) {
	m, err := New(ModeSequence, 42, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ids, err := m.Mint(100)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if len(ids) != 100 {
		t.Fatalf("got %d ids, want 100", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1].Compare(ids[i]) >= 0 {
			t.Fatalf("ids not strictly increasing at #%d: %s >= %s", i, ids[i-1], ids[i])
		}
	}
	for _, id := range ids {
		if id.Disambiguator() != 42 {
			t.Fatalf("disambiguator = %d, want 42", id.Disambiguator())
		}
	}
}

func TestMintRandomBatchDistinct(t *testing.T) {
	m, err := New(ModeRandom, 7, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ids, err := m.Mint(500)
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	seen := make(map[tuid.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestAccessors(t *testing.T) {
	m, err := New(ModeSequence, 3, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Mode() != ModeSequence {
		t.Errorf("Mode() = %s", m.Mode())
	}
	if m.MachineID() != 3 {
		t.Errorf("MachineID() = %d", m.MachineID())
	}
}
