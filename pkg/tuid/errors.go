package tuid

import "errors"

// ErrClockBehindEpoch is returned when the system clock reads earlier than
// Epoch. This is a configuration problem (a misset or rolled-back clock) and
// is never silently clamped.
var ErrClockBehindEpoch = errors.New("tuid: system clock reads before the reference epoch")

// ErrCapacityExceeded is returned when a generator cannot produce another
// unique ID within the current time bucket: the sequence counter reached
// 65535, or the randomized generator exhausted its retry budget.
var ErrCapacityExceeded = errors.New("tuid: id capacity exceeded for this time bucket")

// FormatError reports a malformed textual ID passed to ParseString.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "tuid: invalid id: " + e.Reason }
