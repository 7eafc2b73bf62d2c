package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/hahuaz/eot"
)

// scrapeCmd holds the flags for the 'scrape' subcommand.
type scrapeCmd struct {
	region string
	daily  bool
}

func (*scrapeCmd) Name() string     { return "scrape" }
func (*scrapeCmd) Synopsis() string { return "refresh live prices and daily closes" }
func (*scrapeCmd) Usage() string {
	return `eot scrape [-region <region>] [-daily]

  Refresh the live prices of every tracked symbol in the region, and with
  -daily also append today's closes of the return basket series. Responses
  are cached on disk for the day.
`
}

func (c *scrapeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.region, "region", "tr", "region to refresh (tr, us)")
	f.BoolVar(&c.daily, "daily", true, "also append today's basket closes")
}

func (c *scrapeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	region, err := eot.ParseRegion(c.region)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if err := eot.UpdateDynamicInfo(*dataPath, region); err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Refreshed %s prices.\n", region)

	if c.daily {
		if err := eot.UpdateDailySeries(*dataPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error appending daily closes: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Appended today's basket closes.\n")
	}

	return subcommands.ExitSuccess
}
