package integration

import (
	"fmt"

	"github.com/abraham-ai/go-abraham-curation/curation"
)

// Package integration provides configuration presets and assembly helpers for
// building the curation engine runtime. Presets bundle common settings (rules
// network, logging shape, simulation sizing) into named profiles (Dev, Prod,
// Sim) so operators can quickly spin up a node tuned for a workload without
// tweaking dozens of flags.
//
// Usage:
//   cfg := integration.DevPreset()  // for local development
//   cfg := integration.ProdPreset() // for the production curation service
//   cfg := integration.SimPreset()  // for deterministic fakenet simulation
//
// Each preset returns a PresetConfig struct that can be merged into the
// launcher's main config during engine initialization.

// PresetConfig captures the tunable parameters that vary across preset
// profiles. It intentionally excludes fields that are always the same (like
// flag names or file locations) so presets focus on behavior trade-offs.
type PresetConfig struct {
	Name        string // human-readable identifier (e.g., "dev", "prod")
	Network     string // rules preset the engine starts from: "main", "test", "fake"
	Verbosity   int    // logrus level numeric (0=panic .. 6=trace)
	JSONLogs    bool   // emit structured JSON logs instead of text
	SentryWired bool   // whether an error-reporting hook should be attached when a DSN is configured
	SimElectors int    // synthetic electorate size for fakenet simulation runs
	SimUnits    int    // collectible units granted to each synthetic elector
	SimSeeds    int    // synthetic submissions injected per simulated round
}

func DefaultPreset() PresetConfig {

	return PresetConfig{
		Name:        "default",
		Network:     "test",
		Verbosity:   4, // info: enough to follow round resolutions without per-blessing noise
		JSONLogs:    false,
		SentryWired: true,
		SimElectors: 8,
		SimUnits:    2,
		SimSeeds:    3,
	}
}

// DevPreset returns a configuration optimized for local development and
// debugging: fakenet rules, maximum log verbosity, no external error
// reporting.
//
// Use cases:
//   - Local development on laptops
//   - Debugging scoring or resolution behavior round-by-round
//
// Trade-offs:
//   - Debug-level logging is far too chatty for any shared environment
//   - Fakenet rules (ten-second rounds, free actions) prove nothing about
//     mainnet economics
func DevPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "dev"
	cfg.Network = "fake"    // ten-second rounds and free actions for a tight feedback loop
	cfg.Verbosity = 5       // debug: log every blessing and commandment delta
	cfg.SentryWired = false // local failures belong in the terminal, not an incident feed
	return cfg
}

// ProdPreset returns the production profile: mainnet rules, structured JSON
// logs for ingestion, and error reporting wired up.
//
// Use cases:
//   - The production curation service
//   - Staging environments that must mirror production behavior
//
// Trade-offs:
//   - Info-level logging omits per-action detail; raise verbosity temporarily
//     when investigating scoring disputes
//   - JSON logs are unpleasant to read without a log viewer
func ProdPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "prod"
	cfg.Network = "main" // daily rounds, real quotas, revert-on-deadlock
	cfg.JSONLogs = true  // structured output for the log pipeline
	cfg.SimElectors = 0  // simulation knobs are inert in production
	cfg.SimSeeds = 0
	return cfg
}

// SimPreset returns a profile for deterministic end-to-end simulation: a
// larger synthetic electorate exercising the full submit/bless/resolve cycle
// on fakenet rules.
//
// Use cases:
//   - Demonstrating the full round lifecycle locally
//   - Load-shaped smoke tests before a rules change ships
func SimPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "sim"
	cfg.Network = "fake"
	cfg.SimElectors = 32
	cfg.SimUnits = 3
	cfg.SimSeeds = 10
	cfg.SentryWired = false
	return cfg
}

// GetPresetByName looks up a preset by its string identifier and returns the
// corresponding PresetConfig. Returns an error if the name is unrecognized.
// This helper enables CLI flags like --preset=prod to select configurations
// dynamically.
//
// Example:
//
//	preset, err := integration.GetPresetByName("dev")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "dev":
		return DevPreset(), nil
	case "prod":
		return ProdPreset(), nil
	case "sim":
		return SimPreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: dev, prod, sim, default)", name)
	}
}

// Rules resolves the preset's network name into the matching rules preset.
func (p PresetConfig) Rules() (curation.Rules, error) {
	switch p.Network {
	case "main":
		return curation.MainNetRules(), nil
	case "test":
		return curation.TestNetRules(), nil
	case "fake":
		return curation.FakeNetRules(), nil
	default:
		return curation.Rules{}, fmt.Errorf("unknown network: %q (valid: main, test, fake)", p.Network)
	}
}

// ApplyPreset merges a preset configuration into an existing config struct.
// Fields set in the preset override the corresponding values in the target.
// This allows presets to be applied incrementally on top of CLI/config-file
// overrides without clobbering unrelated settings.
//
// Example:
//
//	cfg := integration.DefaultPreset()
//	integration.ApplyPreset(&cfg, integration.SimPreset())
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.Name != "" {
		target.Name = preset.Name
	}
	if preset.Network != "" {
		target.Network = preset.Network
	}
	if preset.Verbosity > 0 {
		target.Verbosity = preset.Verbosity
	}
	// boolean flags are always applied (no zero-value check needed)
	target.JSONLogs = preset.JSONLogs
	target.SentryWired = preset.SentryWired
	if preset.SimElectors > 0 {
		target.SimElectors = preset.SimElectors
	}
	if preset.SimUnits > 0 {
		target.SimUnits = preset.SimUnits
	}
	if preset.SimSeeds > 0 {
		target.SimSeeds = preset.SimSeeds
	}
}
