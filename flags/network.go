package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags selects the curation network preset and the knobs that
// override its round schedule.

func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Curation network preset to run (main|test|fake)",
			Value: "fake",
		},
		cli.DurationFlag{
			Name:  "round.period",
			Usage: "Override the round period duration (0 keeps the preset value)",
		},
		cli.StringFlag{
			Name:  "round.mode",
			Usage: "Candidate carry-over mode (persistent|round-based)",
		},
		cli.StringFlag{
			Name:  "round.tiebreak",
			Usage: "Tie-break strategy (earliest|latest|lowest-id|highest-id|pseudo-random)",
		},
		cli.StringFlag{
			Name:  "round.deadlock",
			Usage: "Deadlock strategy for zero-score rounds (revert|skip-round|random-from-all|allow-rewins)",
		},
	}
}

// GovernanceFlags isolates the governor-side knobs: the authorized
// configuration address, the treasury, and the action price levers.
func GovernanceFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "governor",
			Usage: "Hex address authorized to stage rules and publish electorate roots",
		},
		cli.StringFlag{
			Name:  "treasury",
			Usage: "Hex address accruing blessing and commandment fees",
		},
		cli.Uint64Flag{
			Name:  "economy.blesscost",
			Usage: "Price of one blessing, in wei-denominated units",
		},
		cli.Uint64Flag{
			Name:  "economy.commandcost",
			Usage: "Price of one commandment, in wei-denominated units",
		},
	}
}
