package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/hahuaz/eot/cmd"
)

func main() {
	// Bash completion. Runs and exits when invoked by the shell, no-op
	// otherwise.
	region := map[string]complete.Predictor{"region": predict.Set{"tr", "us"}}
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"stock":   {Flags: region},
			"returns": {},
			"fund":    {},
			"scrape":  {Flags: region},
			"topic":   {Args: predict.Set{"readme", "metrics", "returns", "data"}},
			"assist":  {},
		},
		Flags: map[string]complete.Predictor{
			"data-path": predict.Dirs("*"),
		},
	}
	completion.Complete("eot")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
