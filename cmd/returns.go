package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hahuaz/eot/renderer"
)

type returnsCmd struct{}

func (*returnsCmd) Name() string     { return "returns" }
func (*returnsCmd) Synopsis() string { return "print cumulative returns of the tracked basket" }
func (*returnsCmd) Usage() string {
	return `eot returns

  Print day-by-day cumulative returns since the baseline for USD, EUR, the
  mixed currency basket, the money fund (net of withholding) and gold.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := basketReturns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing returns: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderReturns(report))

	return subcommands.ExitSuccess
}
