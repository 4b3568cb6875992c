package inter

import (
	"time"
)

// Timestamp is the engine's native time unit: nanoseconds since the Unix
// epoch, stored as an unsigned integer so it can be compared and subtracted
// without floating point or time-zone concerns.
//
// All round-boundary checks are plain integer comparisons on this type
// (now >= periodStart + periodDuration), never wall-clock callbacks.
type Timestamp uint64

// NanosecondsPerDay is the length of one calendar day in Timestamp units.
// The daily quota bookkeeping divides by this to derive the day index.
const NanosecondsPerDay = Timestamp(24 * time.Hour)

// FromTime converts a stdlib time.Time into a Timestamp.
// Times before the Unix epoch are clamped to zero rather than wrapping.
func FromTime(t time.Time) Timestamp {
	ns := t.UnixNano()
	if ns < 0 {
		return 0
	}
	return Timestamp(ns)
}

// Time converts the Timestamp back into a stdlib time.Time (UTC).
func (t Timestamp) Time() time.Time {
	return time.Unix(0, int64(t)).UTC()
}

// Day returns the integer UTC day index of the timestamp.
//
// This index is the key for per-elector daily quotas: when the index
// changes at midnight UTC, usage counters naturally start from zero for
// the new key. There is no explicit reset step anywhere in the engine.
func (t Timestamp) Day() uint64 {
	return uint64(t / NanosecondsPerDay)
}

// Add returns the timestamp shifted forward by d. A negative duration
// larger than the timestamp clamps to zero.
func (t Timestamp) Add(d time.Duration) Timestamp {
	if d < 0 {
		neg := Timestamp(-d)
		if neg > t {
			return 0
		}
		return t - neg
	}
	return t + Timestamp(d)
}

// Elapsed returns t - since, or zero if since is in the future.
// Used for time-decay computations, which must never see a negative
// elapsed value.
func (t Timestamp) Elapsed(since Timestamp) Timestamp {
	if since > t {
		return 0
	}
	return t - since
}

// String returns an RFC3339 rendering for logs and config dumps.
func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339Nano)
}
