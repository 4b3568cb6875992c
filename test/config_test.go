package test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/urfave/cli.v1"

	"github.com/abraham-ai/go-abraham-curation/cmd/abraham/launcher"
	"github.com/abraham-ai/go-abraham-curation/curation"
	"github.com/abraham-ai/go-abraham-curation/flags"
	"github.com/abraham-ai/go-abraham-curation/inter"
)

// helper to run MakeAllConfigs with a synthetic CLI context.

func runConfigFromArgs(t *testing.T, args []string) launcher.Config {

	t.Helper()

	app := cli.NewApp()

	app.HideHelp = true
	app.HideVersion = true

	// Register the full flag surface the launcher declares.

	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)
	app.Flags = append(app.Flags, flags.GovernanceFlags()...)
	app.Flags = append(app.Flags, flags.EngineFlags()...)

	var got launcher.Config

	app.Action = func(c *cli.Context) error {
		cfg, err := launcher.MakeAllConfigs(c)
		if err != nil {
			return err
		}
		got = cfg
		return nil
	}

	// Always point the datadir at a throwaway directory so the config
	// step's MkdirAll never touches the real home.
	args = append([]string{"--datadir", t.TempDir()}, args...)
	if err := app.Run(append([]string{"abraham"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return got
}

// TestMakeAllConfigs_flagOverrides verifies that every command-line flag we
// declare correctly overrides the corresponding field in the aggregated
// Config struct. Each sub-test feeds custom CLI arguments into a synthetic
// app, invokes launcher.MakeAllConfigs, and checks the bits of the resulting
// struct that should have changed.
func TestMakeAllConfigs_flagOverrides(t *testing.T) {

	tests := []struct {
		name string                                  // descriptive name for the scenario
		args []string                                // CLI arguments to feed into MakeAllConfigs
		want func(t *testing.T, cfg launcher.Config) // assertion helper examining the final config
	}{
		{
			name: "identity and logging",
			args: []string{"--identity", "curation-1", "--log.verbosity", "5", "--log.format", "json"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Node.Name != "curation-1" {
					t.Fatalf("Identity = %q, want curation-1", cfg.Node.Name)
				}
				if cfg.Node.Logging.Verbosity != 5 {
					t.Fatalf("Verbosity = %d, want 5", cfg.Node.Logging.Verbosity)
				}
				if cfg.Node.Logging.Format != "json" {
					t.Fatalf("Format = %q, want json", cfg.Node.Logging.Format)
				}
			},
		},
		{
			name: "network preset and round overrides",
			args: []string{"--network", "test", "--round.period", "30m", "--round.mode", "round-based"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Rules.Name != "test" {
					t.Fatalf("Rules.Name = %q, want test", cfg.Rules.Name)
				}
				if cfg.Rules.Rounds.PeriodDuration != inter.Timestamp(30*time.Minute) {
					t.Fatalf("PeriodDuration = %v, want 30m", time.Duration(cfg.Rules.Rounds.PeriodDuration))
				}
				if cfg.Rules.Rounds.Mode != curation.RoundBased {
					t.Fatalf("Mode = %v, want round-based", cfg.Rules.Rounds.Mode)
				}
			},
		},
		{
			name: "policy strategies",
			args: []string{"--round.tiebreak", "highest-id", "--round.deadlock", "allow-rewins"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Rules.Policy.TieBreak != curation.HighestSeedID {
					t.Fatalf("TieBreak = %v, want highest-id", cfg.Rules.Policy.TieBreak)
				}
				if cfg.Rules.Policy.Deadlock != curation.AllowRewins {
					t.Fatalf("Deadlock = %v, want allow-rewins", cfg.Rules.Policy.Deadlock)
				}
			},
		},
		{
			name: "quota and limit overrides",
			args: []string{"--quota.blessings", "7", "--quota.commandments", "21", "--limits.maxroundseeds", "50"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Rules.Quotas.BlessingsPerUnit != 7 {
					t.Fatalf("BlessingsPerUnit = %d, want 7", cfg.Rules.Quotas.BlessingsPerUnit)
				}
				if cfg.Rules.Quotas.CommandmentsPerUnit != 21 {
					t.Fatalf("CommandmentsPerUnit = %d, want 21", cfg.Rules.Quotas.CommandmentsPerUnit)
				}
				if cfg.Rules.Limits.MaxSeedsPerRound != 50 {
					t.Fatalf("MaxSeedsPerRound = %d, want 50", cfg.Rules.Limits.MaxSeedsPerRound)
				}
			},
		},
		{
			name: "governance addresses",
			args: []string{
				"--governor", "0x00000000000000000000000000000000000000aa",
				"--treasury", "0x00000000000000000000000000000000000000bb",
				"--economy.blesscost", "42",
			},
			want: func(t *testing.T, cfg launcher.Config) {
				want := common.HexToAddress("0x00000000000000000000000000000000000000aa")
				if cfg.Governance.Governor != want {
					t.Fatalf("Governor = %q, want %q", cfg.Governance.Governor.Hex(), want.Hex())
				}
				// The treasury flag lands in the rules too, since the
				// engine reads it from there.
				if cfg.Rules.Economy.Treasury != cfg.Governance.Treasury {
					t.Fatalf("Treasury mismatch: rules %q vs governance %q",
						cfg.Rules.Economy.Treasury.Hex(), cfg.Governance.Treasury.Hex())
				}
				if cfg.Rules.Economy.BlessingCost.Uint64() != 42 {
					t.Fatalf("BlessingCost = %v, want 42", cfg.Rules.Economy.BlessingCost)
				}
			},
		},
		{
			name: "preset selects run profile",
			args: []string{"--preset", "sim"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Preset.Name != "sim" {
					t.Fatalf("Preset = %q, want sim", cfg.Preset.Name)
				}
				if cfg.Rules.Name != "fake" {
					t.Fatalf("Rules.Name = %q, want fake (sim profile runs on fakenet)", cfg.Rules.Name)
				}
				if cfg.Sim.Electors != 32 {
					t.Fatalf("Sim.Electors = %d, want 32", cfg.Sim.Electors)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := runConfigFromArgs(t, test.args)
			test.want(t, cfg)
		})
	}
}

// TestMakeAllConfigs_rejectsBadInput verifies unparsable flag values fail
// config assembly instead of being silently dropped.
func TestMakeAllConfigs_rejectsBadInput(t *testing.T) {
	bad := [][]string{
		{"--network", "moonnet"},
		{"--round.mode", "sometimes"},
		{"--round.tiebreak", "coin-flip"},
		{"--round.deadlock", "panic"},
		{"--governor", "not-an-address"},
		{"--preset", "turbo"},
	}

	for _, args := range bad {
		t.Run(args[0]+"="+args[1], func(t *testing.T) {
			app := cli.NewApp()
			app.HideHelp = true
			app.HideVersion = true
			app.Flags = append(app.Flags, flags.CommonFlags()...)
			app.Flags = append(app.Flags, flags.NetworkFlags()...)
			app.Flags = append(app.Flags, flags.GovernanceFlags()...)
			app.Flags = append(app.Flags, flags.EngineFlags()...)
			app.Action = func(c *cli.Context) error {
				_, err := launcher.MakeAllConfigs(c)
				return err
			}
			run := append([]string{"abraham", "--datadir", t.TempDir()}, args...)
			if err := app.Run(run); err == nil {
				t.Fatalf("args %v should fail config assembly", args)
			}
		})
	}
}
