package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hahuaz/eot"
)

type fundCmd struct{}

func (*fundCmd) Name() string     { return "fund" }
func (*fundCmd) Synopsis() string { return "print the tracked money fund's real trailing yield" }
func (*fundCmd) Usage() string {
	return `eot fund

  Print the trailing twelve month yield of the tracked money fund, net of
  withholding tax and deflated by year-over-year inflation.
`
}

func (c *fundCmd) SetFlags(f *flag.FlagSet) {}

func (c *fundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	inflation, err := eot.LoadInflation(*dataPath, eot.RegionTR)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading inflation: %v\n", err)
		return subcommands.ExitFailure
	}
	yield, err := eot.TrackedFundYield(inflation, eot.DefaultAxis())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing fund yield: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Real TTM yield: %s\n", yield)

	return subcommands.ExitSuccess
}
