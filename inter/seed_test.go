package inter

import (
	"strings"
	"testing"
	"time"
)

// TestValidateContentHandle verifies the minimal syntactic shape check:
// non-empty, bounded length, printable ASCII, no whitespace. The handle
// is otherwise opaque; the engine never resolves it.
func TestValidateContentHandle(t *testing.T) {
	const maxLen = 128

	tests := []struct {
		name    string
		handle  string
		wantErr error
	}{
		{"valid CIDv0", "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", nil},
		{"valid CIDv1", "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi", nil},
		{"valid ipfs uri", "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", nil},
		{"empty", "", ErrEmptyContentHandle},
		{"embedded space", "Qm foo", ErrMalformedContentHandle},
		{"embedded newline", "Qm\nfoo", ErrMalformedContentHandle},
		{"control char", "Qm\x01foo", ErrMalformedContentHandle},
		{"non-ascii", "Qm\xc3\xa9", ErrMalformedContentHandle},
		{"too long", strings.Repeat("a", maxLen+1), ErrMalformedContentHandle},
		{"exactly max", strings.Repeat("a", maxLen), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContentHandle(tt.handle, maxLen)
			if err != tt.wantErr {
				t.Errorf("ValidateContentHandle(%q) = %v, want %v", tt.handle, err, tt.wantErr)
			}
		})
	}
}

// TestValidateContentHandle_unboundedLength verifies that maxLen <= 0
// disables the length ceiling but keeps the charset checks.
func TestValidateContentHandle_unboundedLength(t *testing.T) {
	long := strings.Repeat("a", 10000)
	if err := ValidateContentHandle(long, 0); err != nil {
		t.Errorf("maxLen=0 should disable length check, got %v", err)
	}
}

// TestSeedDecided verifies the decided predicate used by scoring and
// resolution gating.
func TestSeedDecided(t *testing.T) {
	s := Seed{ID: 1}
	if s.Decided() {
		t.Error("fresh seed reported decided")
	}
	s.SelectedInRound = 3
	if !s.Decided() {
		t.Error("winning seed not reported decided")
	}
}

// TestSeedEstimateSize sanity-checks the size estimate: it must grow
// with the content handle and never be zero for a populated seed.
func TestSeedEstimateSize(t *testing.T) {
	small := Seed{ID: 1, ContentHandle: "Qm"}
	big := Seed{ID: 2, ContentHandle: strings.Repeat("a", 100)}

	if small.EstimateSize() <= 0 {
		t.Errorf("EstimateSize() = %d, want > 0", small.EstimateSize())
	}
	if big.EstimateSize() <= small.EstimateSize() {
		t.Errorf("size did not grow with handle: %d <= %d", big.EstimateSize(), small.EstimateSize())
	}
}

// TestTimestampDay verifies the day-index derivation that keys the
// daily quotas, including the rollover at midnight UTC.
func TestTimestampDay(t *testing.T) {
	day0 := FromTime(time.Date(1970, 1, 1, 12, 0, 0, 0, time.UTC))
	day1 := FromTime(time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC))
	lateDay1 := FromTime(time.Date(1970, 1, 2, 23, 59, 59, 0, time.UTC))

	if day0.Day() != 0 {
		t.Errorf("noon of epoch day: Day() = %d, want 0", day0.Day())
	}
	if day1.Day() != 1 {
		t.Errorf("midnight rollover: Day() = %d, want 1", day1.Day())
	}
	if lateDay1.Day() != 1 {
		t.Errorf("end of day 1: Day() = %d, want 1", lateDay1.Day())
	}
}

// TestTimestampElapsed verifies elapsed-time computation never goes
// negative (the decay math depends on this).
func TestTimestampElapsed(t *testing.T) {
	a := Timestamp(100)
	b := Timestamp(300)

	if got := b.Elapsed(a); got != 200 {
		t.Errorf("Elapsed = %d, want 200", got)
	}
	if got := a.Elapsed(b); got != 0 {
		t.Errorf("negative elapsed should clamp to 0, got %d", got)
	}
}

// TestTimestampAdd covers forward shifts and the negative clamp.
func TestTimestampAdd(t *testing.T) {
	base := FromTime(time.Unix(1000, 0))

	if got := base.Add(time.Second); got != base+Timestamp(time.Second) {
		t.Errorf("Add(1s) = %d", got)
	}
	if got := Timestamp(5).Add(-time.Second); got != 0 {
		t.Errorf("underflowing Add should clamp to 0, got %d", got)
	}
}
