// This file maps CLI context to the launcher config struct.

package launcher

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/urfave/cli.v1"

	"github.com/abraham-ai/go-abraham-curation/curation"
	"github.com/abraham-ai/go-abraham-curation/integration"
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Node       NodeConfig
	Rules      curation.Rules
	Governance GovernanceConfig
	Sim        SimConfig
	Preset     integration.PresetConfig
}

type NodeConfig struct {
	DataDir string
	Name    string
	Logging LoggingConfig
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type GovernanceConfig struct {
	Governor common.Address
	Treasury common.Address
}

type SimConfig struct {
	Electors int
	Units    int
	Seeds    int
	Rounds   int
}

// MakeAllConfigs merges defaults, the selected preset, then CLI flag
// overrides into a single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	defaults := DefaultConfig()

	presetName := defaults.Network.Preset
	if ctx.IsSet("preset") {
		presetName = ctx.String("preset")
	}
	preset, err := integration.GetPresetByName(presetName)
	if err != nil {
		return Config{}, err
	}
	if ctx.IsSet("network") {
		preset.Network = ctx.String("network")
	} else if presetName == defaults.Network.Preset {
		preset.Network = defaults.Network.Name
	}

	rules, err := preset.Rules()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Node: NodeConfig{
			DataDir: resolvePath(defaults.Node.DataDir),
			Name:    defaults.Node.Name,
			Logging: LoggingConfig{
				Verbosity: preset.Verbosity,
				Format:    defaults.Logging.Format,
				Color:     defaults.Logging.Color,
			},
		},
		Rules: rules,
		Sim: SimConfig{
			Electors: defaults.Sim.Electors,
			Units:    defaults.Sim.Units,
			Seeds:    defaults.Sim.Seeds,
			Rounds:   defaults.Sim.Rounds,
		},
		Preset: preset,
	}
	if preset.JSONLogs {
		cfg.Node.Logging.Format = "json"
		cfg.Node.Logging.Color = false
	}
	if preset.SimElectors > 0 {
		cfg.Sim.Electors = preset.SimElectors
	}
	if preset.SimUnits > 0 {
		cfg.Sim.Units = preset.SimUnits
	}
	if preset.SimSeeds > 0 {
		cfg.Sim.Seeds = preset.SimSeeds
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Rules.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid effective rules: %w", err)
	}
	if err := ensureDir(cfg.Node.DataDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.IsSet("datadir") {
		cfg.Node.DataDir = resolvePath(ctx.String("datadir"))
	}
	if ctx.IsSet("identity") {
		cfg.Node.Name = ctx.String("identity")
	}

	if ctx.IsSet("log.format") {
		cfg.Node.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Node.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Node.Logging.Color = ctx.Bool("log.color")
	}
	if ctx.IsSet("sentry.dsn") {
		cfg.Node.Logging.SentryDSN = ctx.String("sentry.dsn")
	}

	if ctx.IsSet("round.period") {
		if d := ctx.Duration("round.period"); d > 0 {
			cfg.Rules.Rounds.PeriodDuration = inter.Timestamp(d)
		}
	}
	if ctx.IsSet("round.mode") {
		mode, err := curation.RoundModeFromString(ctx.String("round.mode"))
		if err != nil {
			return err
		}
		cfg.Rules.Rounds.Mode = mode
	}
	if ctx.IsSet("round.tiebreak") {
		strategy, err := curation.TieBreakFromString(ctx.String("round.tiebreak"))
		if err != nil {
			return err
		}
		cfg.Rules.Policy.TieBreak = strategy
	}
	if ctx.IsSet("round.deadlock") {
		strategy, err := curation.DeadlockFromString(ctx.String("round.deadlock"))
		if err != nil {
			return err
		}
		cfg.Rules.Policy.Deadlock = strategy
	}

	if ctx.IsSet("limits.maxseeds") {
		if n := ctx.Int("limits.maxseeds"); n > 0 {
			cfg.Rules.Limits.MaxSeeds = uint32(n)
		}
	}
	if ctx.IsSet("limits.maxroundseeds") {
		if n := ctx.Int("limits.maxroundseeds"); n > 0 {
			cfg.Rules.Limits.MaxSeedsPerRound = uint32(n)
		}
	}
	if ctx.IsSet("quota.blessings") {
		if n := ctx.Int("quota.blessings"); n > 0 {
			cfg.Rules.Quotas.BlessingsPerUnit = uint32(n)
		}
	}
	if ctx.IsSet("quota.commandments") {
		if n := ctx.Int("quota.commandments"); n > 0 {
			cfg.Rules.Quotas.CommandmentsPerUnit = uint32(n)
		}
	}

	if ctx.IsSet("economy.blesscost") {
		cfg.Rules.Economy.BlessingCost = new(big.Int).SetUint64(ctx.Uint64("economy.blesscost"))
	}
	if ctx.IsSet("economy.commandcost") {
		cfg.Rules.Economy.CommandmentCost = new(big.Int).SetUint64(ctx.Uint64("economy.commandcost"))
	}

	if ctx.IsSet("governor") {
		addr, err := parseAddress(ctx.String("governor"))
		if err != nil {
			return fmt.Errorf("bad --governor: %w", err)
		}
		cfg.Governance.Governor = addr
	}
	if ctx.IsSet("treasury") {
		addr, err := parseAddress(ctx.String("treasury"))
		if err != nil {
			return fmt.Errorf("bad --treasury: %w", err)
		}
		cfg.Governance.Treasury = addr
		cfg.Rules.Economy.Treasury = addr
	}

	if ctx.IsSet("sim.electors") {
		cfg.Sim.Electors = ctx.Int("sim.electors")
	}
	if ctx.IsSet("sim.rounds") {
		cfg.Sim.Rounds = ctx.Int("sim.rounds")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("not a hex address: %q", s)
	}
	return common.HexToAddress(s), nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
