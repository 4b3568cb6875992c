package launcher

import (
	"fmt"

	"gopkg.in/urfave/cli.v1"

	"github.com/abraham-ai/go-abraham-curation/flags"
)

var app = flags.NewApp()

func init() {
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)
	app.Flags = append(app.Flags, flags.GovernanceFlags()...)
	app.Flags = append(app.Flags, flags.EngineFlags()...)
	app.Action = runSimulation
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Run the curation engine with a synthetic electorate",
			Action: runSimulation,
			Flags:  app.Flags,
		},
		{
			Name:   "dumprules",
			Usage:  "Print the effective rules after presets and flag overrides",
			Action: dumpRules,
			Flags:  app.Flags,
		},
	}
}

// Launch parses the CLI arguments and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

func dumpRules(ctx *cli.Context) error {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, cfg.Rules.String())
	return nil
}
