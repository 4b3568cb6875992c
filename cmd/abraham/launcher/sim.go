package launcher

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/abraham-ai/go-abraham-curation/eligibility"
	"github.com/abraham-ai/go-abraham-curation/engine"
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// elector is one member of the synthetic electorate: a deterministic
// address, its collectible units, and the Merkle proof minted for it
// when the commitment was built.
type elector struct {
	addr  common.Address
	units []uint64
	proof [][]byte
}

// runSimulation drives the full curation lifecycle against a synthetic
// electorate: it derives deterministic electors, commits them to a
// Merkle root, then loops submit -> bless -> resolve until the
// configured round count is reached or the process is interrupted.
func runSimulation(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	log, err := makeLogger(cfg.Node.Logging)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"node":    cfg.Node.Name,
		"preset":  cfg.Preset.Name,
		"network": cfg.Rules.Name,
	}).Info("starting curation node")

	electors, root, oracle := makeElectorate(cfg.Sim.Electors, cfg.Sim.Units)

	governor := cfg.Governance.Governor
	if governor == (common.Address{}) {
		// The simulation acts as its own governor.
		governor = deriveAddress("governor")
	}

	eng, err := engine.New(engine.Config{
		Rules:    cfg.Rules,
		Governor: governor,
		Oracle:   oracle,
		Logger:   log,
		OnWinner: func(w inter.WinnerRecord) {
			log.WithFields(logrus.Fields{
				"round":  uint32(w.Round),
				"seed":   uint64(w.SeedID),
				"handle": w.ContentHandle,
				"score":  w.FinalScore.String(),
			}).Info("winner elevated")
		},
	})
	if err != nil {
		return err
	}
	if err := eng.PublishRoot(governor, root); err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	var handleCounter int
	for resolved := 0; cfg.Sim.Rounds == 0 || resolved < cfg.Sim.Rounds; {
		round, _ := eng.CurrentRound()

		for i := 0; i < cfg.Sim.Seeds; i++ {
			creator := electors[(int(round)+i)%len(electors)]
			handleCounter++
			handle := fmt.Sprintf("ipfs://bafyseed%08d", handleCounter)
			if _, err := eng.SubmitSeed(creator.addr, handle); err != nil {
				log.WithError(err).Warn("submission rejected")
			}
		}

		// Every elector blesses one eligible seed, spread by index so
		// rounds end with a clear leader instead of a uniform tie.
		candidates := eng.EligibleSeeds()
		for i, el := range electors {
			if len(candidates) == 0 {
				break
			}
			target := candidates[i%((len(candidates)+1)/2)]
			if _, err := eng.Bless(el.addr, target, el.units, el.proof, nil); err != nil {
				log.WithError(err).WithField("elector", el.addr.Hex()).Debug("blessing rejected")
			}
		}

		select {
		case <-interrupt:
			log.Info("interrupted, shutting down")
			return nil
		case <-time.After(eng.TimeRemaining()):
		}

		record, err := eng.Advance()
		if err != nil {
			log.WithError(err).Warn("round did not resolve")
			continue
		}
		if record.Skipped() {
			log.WithField("round", uint32(record.Round)).Info("round skipped")
		}
		resolved++
	}

	log.WithField("rounds", len(eng.RoundHistory())).Info("simulation complete")
	return nil
}

// makeElectorate derives a deterministic synthetic electorate and its
// Merkle commitment. Elector addresses come from hashing a namespaced
// index, unit ids are dense and disjoint, and the returned proofs go
// through the same verification path real holders would use.
func makeElectorate(count, unitsEach int) ([]elector, hash.Hash, eligibility.Oracle) {
	electors := make([]elector, count)
	leaves := make([]hash.Hash, count)
	for i := range electors {
		addr := deriveAddress(fmt.Sprintf("elector-%d", i))
		units := make([]uint64, unitsEach)
		for u := range units {
			units[u] = uint64(i*unitsEach+u) + 1
		}
		electors[i] = elector{addr: addr, units: units}
		leaves[i] = eligibility.LeafHash(addr, units)
	}
	root, proofs := eligibility.BuildTree(leaves)
	for i := range electors {
		electors[i].proof = proofs[i]
	}
	return electors, root, eligibility.MerkleOracle{}
}

func deriveAddress(seed string) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte(seed))[12:])
}
