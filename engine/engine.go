// Package engine implements the round-based curation state machine: a
// community submits candidate works ("seeds"), verified holders of a
// reference collectible cast rate-limited, dampened votes ("blessings")
// and comments ("commandments"), and at each period boundary the engine
// deterministically selects at most one winning seed per round.
//
// The engine is a single-writer, serialized state machine. Every
// mutating operation (SubmitSeed, RetractSeed, Bless, Command, Advance,
// and the governor operations) takes the write lock, validates fully
// before its first mutation, and either fully succeeds or fails with no
// state change. Read-only queries are served under the read lock so they
// never block progress. There is no blocking I/O inside any state
// transition: eligibility proofs are verified by a pure function over
// already-published commitment roots.
//
// All outcomes are replayable: scoring uses fixed-point integer
// arithmetic only, the eligible set has a defined scan order, and the
// pseudo-random fallback draws from an explicitly injected entropy
// source rather than a hidden clock read.
package engine

import (
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"

	"github.com/abraham-ai/go-abraham-curation/curation"
	"github.com/abraham-ai/go-abraham-curation/eligibility"
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// Config carries everything an Engine needs at construction. Rules,
// Governor and Oracle are mandatory; the rest default sensibly.
type Config struct {
	// Rules is the initial current configuration (also seeds pending).
	Rules curation.Rules

	// Governor is the sole address authorized to stage rules, move the
	// treasury and publish commitment roots.
	Governor common.Address

	// Oracle verifies electorate membership proofs.
	Oracle eligibility.Oracle

	// Clock supplies engine time. Defaults to the wall clock. Tests
	// inject a fake to drive round boundaries deterministically.
	Clock func() inter.Timestamp

	// Entropy feeds the pseudo-random tie-break and deadlock fallbacks.
	// Injected explicitly so tests can fix it and so its best-effort
	// nature is visible in the wiring rather than hidden in a clock
	// read. Defaults to a keccak of the current time.
	Entropy func() [32]byte

	// Logger receives structured engine logs. Defaults to the standard
	// logrus logger.
	Logger logrus.FieldLogger

	// OnWinner, if set, is invoked with the winner record each time a
	// round resolves with a winner. It is called after the state
	// transition completes and outside the engine lock; the external
	// elevation workflow behind it owns its own idempotency and
	// failure recovery.
	OnWinner func(inter.WinnerRecord)
}

// pairKey identifies one (elector, seed) contribution stream.
type pairKey struct {
	elector common.Address
	seed    inter.SeedID
}

// pairState is the per-(elector, seed) bookkeeping that makes scoring
// O(1) per call: the cumulative counts are the dampening inputs, and the
// last-applied dampened values let each call add only the delta instead
// of recomputing from history.
type pairState struct {
	blessings    uint64
	blessApplied inter.Score
	commandments uint64
	cmdApplied   inter.Score
}

// dayUsage tracks an elector's consumption against the daily quotas.
// The day index is part of the record: when it differs from today's,
// the counters read as zero. That is the entire reset mechanism.
type dayUsage struct {
	day          uint64
	blessings    uint32
	commandments uint32
}

// RoundRecord is one immutable entry of resolved-round history.
type RoundRecord struct {
	Number      idx.Epoch
	PeriodStart inter.Timestamp
	ResolvedAt  inter.Timestamp
	Winner      inter.SeedID // NoSeed if the round was skipped
	FinalScore  inter.Score
}

// Engine is the curation state machine. It is the sole mutator of all
// state it holds; external collaborators interact only through the
// exported methods.
type Engine struct {
	mu  sync.RWMutex
	log logrus.FieldLogger

	oracle  eligibility.Oracle
	roots   eligibility.RootLedger
	clock   func() inter.Timestamp
	entropy func() [32]byte
	emit    func(inter.WinnerRecord)

	governor common.Address

	rules rulesLedger

	seeds      map[inter.SeedID]*inter.Seed
	nextSeedID inter.SeedID
	eligible   eligibleSet

	roundNumber idx.Epoch
	periodStart inter.Timestamp
	submitted   []inter.SeedID // submission index of the open round
	history     []RoundRecord

	pairs map[pairKey]*pairState
	usage map[common.Address]*dayUsage

	treasuryAccrued *big.Int
}

// New constructs an engine with round 1 open as of the current clock.
func New(cfg Config) (*Engine, error) {
	if cfg.Oracle == nil {
		return nil, errors.New("engine: nil oracle")
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = func() inter.Timestamp { return inter.FromTime(time.Now()) }
	}
	if cfg.Entropy == nil {
		clock := cfg.Clock
		cfg.Entropy = func() [32]byte {
			var out [32]byte
			t := clock()
			copy(out[:], crypto.Keccak256([]byte(t.String())))
			return out
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	e := &Engine{
		log:             cfg.Logger.WithField("module", "curation-engine"),
		oracle:          cfg.Oracle,
		clock:           cfg.Clock,
		entropy:         cfg.Entropy,
		emit:            cfg.OnWinner,
		governor:        cfg.Governor,
		rules:           newRulesLedger(cfg.Rules),
		seeds:           make(map[inter.SeedID]*inter.Seed),
		nextSeedID:      1,
		eligible:        newEligibleSet(),
		roundNumber:     1,
		periodStart:     cfg.Clock(),
		pairs:           make(map[pairKey]*pairState),
		usage:           make(map[common.Address]*dayUsage),
		treasuryAccrued: new(big.Int),
	}
	e.log.WithFields(logrus.Fields{
		"network": e.rules.current.Name,
		"period":  time.Duration(e.rules.current.Rounds.PeriodDuration).String(),
		"mode":    e.rules.current.Rounds.Mode.String(),
	}).Info("curation engine started")
	return e, nil
}

// ---------------------------------------------------------------------
// Read-only queries. All run under the read lock and copy out any data
// that aliases engine-owned memory.
// ---------------------------------------------------------------------

// CurrentRound returns the open round's number and period start.
func (e *Engine) CurrentRound() (idx.Epoch, inter.Timestamp) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.roundNumber, e.periodStart
}

// TimeRemaining returns how long until the open round becomes
// resolvable, or zero if it already is.
func (e *Engine) TimeRemaining() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	end := e.periodStart + e.rules.current.Rounds.PeriodDuration
	now := e.clock()
	if now >= end {
		return 0
	}
	return time.Duration(end - now)
}

// IsResolvable reports whether the open round's period has elapsed.
func (e *Engine) IsResolvable() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clock() >= e.periodStart+e.rules.current.Rounds.PeriodDuration
}

// EligibleCount returns the size of the eligible set.
func (e *Engine) EligibleCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.eligible.size()
}

// EligibleSeeds returns the eligible seed ids in the defined scan order.
func (e *Engine) EligibleSeeds() []inter.SeedID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.eligible.snapshot()
}

// SeedByID returns a copy of the seed, if it exists.
func (e *Engine) SeedByID(id inter.SeedID) (inter.Seed, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.seeds[id]
	if !ok {
		return inter.Seed{}, false
	}
	return *s, true
}

// Leader returns the seed currently winning the open round, resolved
// with the current tie-break strategy, and false if the eligible set is
// empty or entirely unscored. PseudoRandom tie-breaks report the
// first-in-scan-order leader instead of drawing entropy, so reads stay
// pure.
func (e *Engine) Leader() (inter.SeedID, inter.Score, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	max, tied := e.scanMax(e.eligible.ids)
	if max == 0 || len(tied) == 0 {
		return inter.NoSeed, 0, false
	}
	strategy := e.rules.current.Policy.TieBreak
	if strategy == curation.PseudoRandom {
		return tied[0], max, true
	}
	return e.breakTie(tied, strategy), max, true
}

// RoundHistory returns a copy of the resolved-round records.
func (e *Engine) RoundHistory() []RoundRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]RoundRecord, len(e.history))
	copy(out, e.history)
	return out
}

// TreasuryAccrued returns the total cost accrued to the treasury so far.
func (e *Engine) TreasuryAccrued() *big.Int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return new(big.Int).Set(e.treasuryAccrued)
}

// QuotaUsedToday returns the elector's blessing and commandment usage
// for the current day.
func (e *Engine) QuotaUsedToday(elector common.Address) (blessings, commandments uint32) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, ok := e.usage[elector]
	if !ok || u.day != e.clock().Day() {
		return 0, 0
	}
	return u.blessings, u.commandments
}

// CurrentRoot returns the latest published commitment root.
func (e *Engine) CurrentRoot() (hash.Hash, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.roots.Current()
}
