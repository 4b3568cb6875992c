package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// EngineFlags holds knobs specific to the local engine instance (quotas, candidate ceilings, simulation shape).

func EngineFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "identity",
			Usage: "Custom node name used in logs",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Run profile to apply (default|dev|prod|sim)",
		},
		cli.IntFlag{
			Name:  "limits.maxseeds",
			Usage: "Override the global candidate ceiling (0 keeps the preset value)",
		},
		cli.IntFlag{
			Name:  "limits.maxroundseeds",
			Usage: "Override the per-round submission ceiling (0 keeps the preset value)",
		},
		cli.IntFlag{
			Name:  "quota.blessings",
			Usage: "Override daily blessings per collectible unit (0 keeps the preset value)",
		},
		cli.IntFlag{
			Name:  "quota.commandments",
			Usage: "Override daily commandments per collectible unit (0 keeps the preset value)",
		},
		cli.IntFlag{
			Name:  "sim.electors",
			Usage: "Number of synthetic electors in the fakenet simulation",
			Value: 8,
		},
		cli.IntFlag{
			Name:  "sim.rounds",
			Usage: "Number of rounds the fakenet simulation resolves before exiting (0 = run until interrupted)",
			Value: 5,
		},
	}
}
