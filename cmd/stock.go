package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/hahuaz/eot"
	"github.com/hahuaz/eot/renderer"
)

// stockCmd holds the flags for the 'stock' subcommand.
type stockCmd struct {
	region string
}

func (*stockCmd) Name() string     { return "stock" }
func (*stockCmd) Synopsis() string { return "analyze a stock and print its report" }
func (*stockCmd) Usage() string {
	return `eot stock [-region <region>] <symbol>

  Derive yield, valuation ratios and inflation-adjusted growth for a stock
  from its quarterly statements and print the report.

Usage Examples:
# Report for a Turkish stock.
$ eot stock EREGL

# Report for a US stock.
$ eot stock -region us MSFT

`
}

func (c *stockCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.region, "region", "tr", "region of the stock (tr, us)")
}

func (c *stockCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one symbol\n")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

	region, err := eot.ParseRegion(c.region)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	analyzer, info, err := analyzedStock(region, symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderStock(renderer.NewStockReport(analyzer, info)))

	return subcommands.ExitSuccess
}
