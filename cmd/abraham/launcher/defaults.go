package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before flags/config files override them.

type Defaults struct {
	Node       NodeDefaults
	Network    NetworkDefaults
	Governance GovernanceDefaults
	Sim        SimDefaults
	Logging    LoggingDefaults
}

// NodeDefaults captures top-level node settings (datadir, identity, etc).

type NodeDefaults struct {
	DataDir string //	Filesystem root where the node stores everything (round history dumps, logs, errlock). Changing it lets you run multiple nodes or keep test data isolated.
	Name    string //	Human-readable node identity used in logs; helps an operator running several profiles distinguish instances.
}

// NetworkDefaults selects which curation rules preset the engine boots with.
type NetworkDefaults struct {
	Name   string //	Rules preset identifier: "main" (daily rounds, real quotas), "test" (hourly rounds, skip-on-deadlock) or "fake" (ten-second rounds, free actions). Surfaced in logs and config dumps so operators know which economics they are running under.
	Preset string //	Run profile applied on top of the network rules ("default", "dev", "prod", "sim"); bundles logging shape and simulation sizing.
}

// GovernanceDefaults stores defaults for the governor-side levers.
type GovernanceDefaults struct {
	Governor string //	Hex address authorized to stage rule changes and publish electorate commitment roots. Empty means the zero address, which on fakenet is fine because the simulation acts as its own governor.
	Treasury string //	Hex address accruing blessing/commandment fees. Fees are counted, not transferred, so this is an accounting label until a settlement layer exists.
}

// SimDefaults shapes the built-in fakenet simulation.
type SimDefaults struct {
	Electors int //	Synthetic electorate size. Each elector gets a deterministic address and an entry in the generated Merkle commitment, so proofs exercise the real verification path.
	Units    int //	Collectible units granted to each synthetic elector; scales the daily quotas the simulation runs into.
	Seeds    int //	Submissions injected per simulated round.
	Rounds   int //	Rounds to resolve before the simulation exits; 0 runs until interrupted.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=panic, 1=fatal, 2=error, 3=warn, 4=info, 5=debug, 6=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
	SentryDSN string //	Sentry endpoint for error-level reporting; empty disables the hook entirely.
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir: "~/.abraham",
			Name:    "abraham",
		},
		Network: NetworkDefaults{
			Name:   "fake",
			Preset: "default",
		},
		Governance: GovernanceDefaults{
			Governor: "",
			Treasury: "",
		},
		Sim: SimDefaults{
			Electors: 8,
			Units:    2,
			Seeds:    3,
			Rounds:   5,
		},
		Logging: LoggingDefaults{
			Verbosity: 4,
			Format:    "text",
			Color:     true,
		},
	}
}
