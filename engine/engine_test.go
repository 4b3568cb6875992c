package engine

import (
	"testing"
	"time"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/abraham-ai/go-abraham-curation/curation"
	"github.com/abraham-ai/go-abraham-curation/eligibility"
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// Test fixtures. The fake clock starts well inside day 1 so quota-day
// arithmetic has room in both directions, and every engine gets a fixed
// entropy source so pseudo-random outcomes are replayable.

var (
	governor = common.BytesToAddress([]byte("governor"))
	alice    = common.BytesToAddress([]byte("alice"))
	bob      = common.BytesToAddress([]byte("bob"))
	carol    = common.BytesToAddress([]byte("carol"))
)

const testHandle = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

// fakeClock is a settable clock shared with the engine under test.
type fakeClock struct {
	now inter.Timestamp
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: inter.FromTime(time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC))}
}

func (c *fakeClock) read() inter.Timestamp { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

// testRules returns a deterministic base config: one-hour rounds, no
// decay, free actions, persistent mode, earliest-submission tie-break,
// revert deadlock.
func testRules() curation.Rules {
	r := curation.FakeNetRules()
	r.Rounds.PeriodDuration = inter.Timestamp(time.Hour)
	r.Rounds.Mode = curation.Persistent
	r.Scoring.TimeDecayBase = 0 // tests opt into decay explicitly
	r.Quotas.BlessingsPerUnit = 5
	r.Quotas.CommandmentsPerUnit = 10
	r.Policy.TieBreak = curation.EarliestSubmission
	r.Policy.Deadlock = curation.Revert
	return r
}

// testOracle admits alice (2 units), bob (1 unit) and carol (3 units).
func testOracle() eligibility.Oracle {
	return eligibility.NewStaticOracle(map[common.Address][]uint64{
		alice: {1, 2},
		bob:   {3},
		carol: {4, 5, 6},
	})
}

// newTestEngine builds an engine over the fixtures and publishes an
// initial commitment root (the static oracle ignores it, but the root
// ledger must be non-empty for any proof to be consulted at all).
func newTestEngine(t *testing.T, rules curation.Rules) (*Engine, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)

	e, err := New(Config{
		Rules:    rules,
		Governor: governor,
		Oracle:   testOracle(),
		Clock:    clock.read,
		Entropy:  func() [32]byte { return [32]byte{0x42} },
		Logger:   quiet,
	})
	require.NoError(t, err)
	require.NoError(t, e.PublishRoot(governor, testRoot()))
	return e, clock
}

func testRoot() (h hash.Hash) {
	h[0] = 0xaa
	return h
}

// bless is a shorthand for a valid free blessing in tests.
func bless(t *testing.T, e *Engine, elector common.Address, id inter.SeedID, units []uint64) {
	t.Helper()
	_, err := e.Bless(elector, id, units, nil, nil)
	require.NoError(t, err)
}

// TestNew_rejectsBadConfig verifies constructor validation.
func TestNew_rejectsBadConfig(t *testing.T) {
	_, err := New(Config{Rules: testRules(), Oracle: nil})
	require.Error(t, err, "nil oracle must be rejected")

	bad := testRules()
	bad.Rounds.PeriodDuration = 0
	_, err = New(Config{Rules: bad, Oracle: testOracle()})
	require.Error(t, err, "invalid rules must be rejected")
}

// TestEngine_startsAtRoundOne verifies the initial lifecycle state.
func TestEngine_startsAtRoundOne(t *testing.T) {
	e, clock := newTestEngine(t, testRules())

	num, start := e.CurrentRound()
	require.EqualValues(t, 1, num)
	require.Equal(t, clock.now, start)
	require.False(t, e.IsResolvable())
	require.Equal(t, 0, e.EligibleCount())
	require.Equal(t, time.Hour, e.TimeRemaining())
}
