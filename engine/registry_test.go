package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abraham-ai/go-abraham-curation/inter"
)

func TestSubmitSeed(t *testing.T) {
	e, clock := newTestEngine(t, testRules())

	id1, err := e.SubmitSeed(alice, testHandle)
	require.NoError(t, err)
	require.EqualValues(t, 1, id1)

	clock.advance(1)
	id2, err := e.SubmitSeed(bob, "ipfs://bafybeibwzif")
	require.NoError(t, err)
	require.EqualValues(t, 2, id2)

	require.Equal(t, []inter.SeedID{1, 2}, e.EligibleSeeds())

	s, ok := e.SeedByID(id1)
	require.True(t, ok)
	require.Equal(t, alice, s.Creator)
	require.Equal(t, testHandle, s.ContentHandle)
	require.EqualValues(t, 1, s.SubmittedInRound)
	require.False(t, s.Decided())
	require.EqualValues(t, 0, s.BlessingScore)
}

func TestSubmitSeed_rejectsBadHandles(t *testing.T) {
	rules := testRules()
	rules.Limits.MaxContentHandleLen = 64
	e, _ := newTestEngine(t, rules)

	for name, handle := range map[string]string{
		"empty":         "",
		"too long":      strings.Repeat("a", 65),
		"control bytes": "Qm\x00abc",
		"whitespace":    "Qm abc",
		"non-ASCII":     "Qmábc",
	} {
		_, err := e.SubmitSeed(alice, handle)
		require.Error(t, err, name)
	}
	require.Equal(t, 0, e.EligibleCount())
}

func TestSubmitSeed_ceilings(t *testing.T) {
	rules := testRules()
	rules.Limits.MaxSeeds = 10
	rules.Limits.MaxSeedsPerRound = 2
	e, _ := newTestEngine(t, rules)

	_, err := e.SubmitSeed(alice, testHandle)
	require.NoError(t, err)
	_, err = e.SubmitSeed(bob, testHandle)
	require.NoError(t, err)

	// Per-round ceiling binds first.
	_, err = e.SubmitSeed(carol, testHandle)
	require.ErrorIs(t, err, ErrRoundSeedLimitReached)
}

func TestSubmitSeed_globalCeiling(t *testing.T) {
	rules := testRules()
	rules.Limits.MaxSeeds = 2
	rules.Limits.MaxSeedsPerRound = 10
	e, _ := newTestEngine(t, rules)

	_, err := e.SubmitSeed(alice, testHandle)
	require.NoError(t, err)
	_, err = e.SubmitSeed(bob, testHandle)
	require.NoError(t, err)
	_, err = e.SubmitSeed(carol, testHandle)
	require.ErrorIs(t, err, ErrSeedLimitReached)
}

func TestRetractSeed(t *testing.T) {
	e, _ := newTestEngine(t, testRules())

	id, err := e.SubmitSeed(alice, testHandle)
	require.NoError(t, err)
	bless(t, e, bob, id, []uint64{3})

	require.ErrorIs(t, e.RetractSeed(bob, id), ErrNotCreator)
	require.ErrorIs(t, e.RetractSeed(alice, 99), ErrSeedNotFound)

	require.NoError(t, e.RetractSeed(alice, id))
	require.Equal(t, 0, e.EligibleCount())

	// Retraction is permanent and leaves the score for audit.
	require.ErrorIs(t, e.RetractSeed(alice, id), ErrSeedRetracted)
	s, ok := e.SeedByID(id)
	require.True(t, ok)
	require.True(t, s.Retracted)
	require.NotZero(t, s.BlessingScore)

	// A retracted seed accepts neither blessings nor commandments.
	_, err = e.Bless(bob, id, []uint64{3}, nil, nil)
	require.ErrorIs(t, err, ErrSeedRetracted)
	_, err = e.Command(bob, id, testHandle, []uint64{3}, nil, nil)
	require.ErrorIs(t, err, ErrSeedRetracted)
}

func TestRetractSeed_afterWin(t *testing.T) {
	e, clock := newTestEngine(t, testRules())

	id, err := e.SubmitSeed(alice, testHandle)
	require.NoError(t, err)
	bless(t, e, bob, id, []uint64{3})

	clock.advance(time.Hour)
	_, err = e.Advance()
	require.NoError(t, err)

	require.ErrorIs(t, e.RetractSeed(alice, id), ErrSeedAlreadySelected)
}

func TestSubmitSeed_openWhilePeriodElapsed(t *testing.T) {
	// Under the revert policy an unresolved round must keep accepting
	// submissions after its period ends, or the deadlock could never be
	// broken.
	e, clock := newTestEngine(t, testRules())

	clock.advance(2 * time.Hour)
	require.True(t, e.IsResolvable())

	id, err := e.SubmitSeed(alice, testHandle)
	require.NoError(t, err)
	bless(t, e, bob, id, []uint64{3})

	rec, err := e.Advance()
	require.NoError(t, err)
	require.Equal(t, id, rec.SeedID)
}
