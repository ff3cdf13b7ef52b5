// Package tuid implements a compact, time-sortable 8-byte unique identifier.
//
// # Format
//
// An ID is 8 bytes, big-endian throughout:
//
//	bytes 0-3  whole seconds since Epoch (uint32)
//	byte  4    milliseconds within the second, rescaled 0-999 -> 0-255
//	byte  5    disambiguator (machine ID, or a random byte)
//	bytes 6-7  sequence counter (uint16), or two random bytes
//
// Interpreted as a big-endian uint64, IDs sort in generation order. The
// embedded timestamp is lossy: the millisecond byte loses up to ~4ms of
// precision, an accepted trade-off for fitting in half the size of a UUID.
//
// # Generators
//
// Generator uses a per-bucket sequence counter and guarantees strictly
// increasing IDs on one machine, up to 65535 IDs per time bucket. Beyond
// that it returns ErrCapacityExceeded rather than silently wrapping.
//
// RandomGenerator fills bytes 6-7 with random bytes and rejects values it
// has already issued in the current bucket. Ordering across IDs from the
// same bucket is best-effort.
//
// Neither generator is safe for concurrent use. Give each goroutine its own
// generator with a distinct machine ID, or serialize calls externally.
//
// # Usage
//
//	g, err := tuid.NewGenerator(machineID)
//	if err != nil {
//		// system clock reads before tuid.Epoch
//	}
//	id, err := g.Next()
//	s := id.String()  // "00cd01daff010002"
//	n := id.Uint64()  // 57704355272392706
//	t := id.Time()    // embedded timestamp, UTC
package tuid
