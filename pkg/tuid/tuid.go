package tuid

import (
	"encoding/binary"
	"strconv"
	"time"
)

// Epoch is the reference instant for all embedded timestamps, expressed in
// milliseconds since the Unix epoch: 2025-01-01T00:00:00Z. It is part of the
// wire format; changing it changes the meaning of every previously issued ID.
const Epoch int64 = 1735689600000

// ID is an 8-byte time-sortable identifier. The zero value is the ID minted
// at exactly Epoch by machine 0.
type ID [8]byte

// nowMillis is the clock read used by every generator. Tests freeze it.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// sinceEpoch returns milliseconds elapsed since Epoch, or ErrClockBehindEpoch
// if the system clock reads before it.
func sinceEpoch() (int64, error) {
	now := nowMillis()
	if now < Epoch {
		return 0, ErrClockBehindEpoch
	}
	return now - Epoch, nil
}

// encode packs milliseconds-since-Epoch, a disambiguator byte and two extra
// bytes into an ID. elapsed must be non-negative.
func encode(elapsed int64, disambiguator byte, extra uint16) ID {
	var id ID
	binary.BigEndian.PutUint32(id[0:4], uint32(elapsed/1000))
	id[4] = rescaleLow(uint16(elapsed % 1000))
	id[5] = disambiguator
	binary.BigEndian.PutUint16(id[6:8], extra)
	return id
}

// rescaleLow down-scales a millisecond value (0-999) to a single byte.
// The mapping is lossy but monotonic: several inputs share one output.
func rescaleLow(v uint16) byte {
	return byte(uint32(v) * 256 / 1000)
}

// upscaleLow approximately inverts rescaleLow. The result can undershoot the
// original millisecond value by a few units and is not a fixed point of the
// rescale/upscale pair; the loss happens once, at encode time.
func upscaleLow(v byte) uint16 {
	return uint16(uint32(v) * 1000 / 256)
}

// rescalePeriod quantizes elapsed milliseconds to the resolution the ID can
// actually carry. Generators use it as the time bucket for resetting their
// anti-collision state.
func rescalePeriod(elapsed int64) int64 {
	return (elapsed/1000)*1000 + int64(rescaleLow(uint16(elapsed%1000)))
}

// Bytes returns the raw 8-byte representation.
func (id ID) Bytes() []byte { b := make([]byte, 8); copy(b, id[:]); return b }

// String returns the 16-character lowercase hex form.
func (id ID) String() string { return fmtHex(id[:]) }

// Uint64 returns the ID as a big-endian unsigned integer. IDs compare in
// generation order under this view.
func (id ID) Uint64() uint64 { return binary.BigEndian.Uint64(id[:]) }

// FromUint64 is the exact inverse of Uint64.
func FromUint64(n uint64) ID {
	var id ID
	binary.BigEndian.PutUint64(id[:], n)
	return id
}

// ParseString parses the 16-character hex form produced by String. It returns
// a *FormatError when s has the wrong length or contains non-hex characters.
func ParseString(s string) (ID, error) {
	if len(s) != 16 {
		return ID{}, &FormatError{Reason: "wrong length"}
	}
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return ID{}, &FormatError{Reason: "invalid hex"}
	}
	return FromUint64(n), nil
}

// Time returns the timestamp embedded in the ID, in UTC. Precision is limited
// by the millisecond byte: the result may differ from the minting instant by
// up to ~4ms, but repeated decoding is stable.
func (id ID) Time() time.Time {
	high := binary.BigEndian.Uint32(id[0:4])
	ms := int64(high)*1000 + int64(upscaleLow(id[4])) + Epoch
	return time.UnixMilli(ms).UTC()
}

// Disambiguator returns byte 5: the machine ID, or a random byte depending on
// how the ID was minted.
func (id ID) Disambiguator() byte { return id[5] }

// Extra returns bytes 6-7 as a big-endian uint16: the sequence counter in
// sequence mode, two random bytes otherwise.
func (id ID) Extra() uint16 { return binary.BigEndian.Uint16(id[6:8]) }

// Compare returns -1, 0 or 1 ordering IDs by their uint64 view.
func (id ID) Compare(other ID) int {
	a, b := id.Uint64(), other.Uint64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// fmtHex is a small, allocation-lean hex encoder for fixed-size IDs.
func fmtHex(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexdigits[v>>4]
		out[i*2+1] = hexdigits[v&0x0f]
	}
	return string(out)
}
