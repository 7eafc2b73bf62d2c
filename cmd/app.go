// Package cmd implements the CLI application over the derivation pipeline.
package cmd

import (
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/hahuaz/eot"
	"github.com/hahuaz/eot/renderer"
)

// Register the subcommands. A main package calls Register() and then
// Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&stockCmd{}, "reports")
	c.Register(&returnsCmd{}, "reports")
	c.Register(&fundCmd{}, "reports")

	c.Register(&scrapeCmd{}, "data")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables.

var dataPath = flag.String("data-path", "data", "Path to the data directory (statements, inflation, daily closes)")

// analyzedStock loads one stock and runs the full pipeline on it.
func analyzedStock(region eot.Region, symbol string) (*eot.Analyzer, eot.DynamicInfo, error) {
	var info eot.DynamicInfo
	set, cfg, err := eot.LoadStock(*dataPath, region, symbol)
	if err != nil {
		return nil, info, err
	}
	inflation, err := eot.LoadInflation(*dataPath, region)
	if err != nil {
		return nil, info, err
	}
	dynamic, err := eot.LoadDynamicInfo(*dataPath, region)
	if err != nil {
		return nil, info, err
	}
	info, ok := dynamic[symbol]
	if !ok {
		return nil, info, fmt.Errorf("no dynamic info for %q, run 'scrape' first", symbol)
	}
	analyzer, err := eot.NewAnalyzer(eot.DefaultAxis(), cfg, inflation, set)
	if err != nil {
		return nil, info, err
	}
	if err := analyzer.Run(info.Price); err != nil {
		return nil, info, err
	}
	return analyzer, info, nil
}

// basketReturns computes the cumulative returns of the tracked basket.
func basketReturns() (*renderer.ReturnsReport, error) {
	basket, err := eot.LoadBasket(*dataPath)
	if err != nil {
		return nil, err
	}
	taxes, err := eot.TaxPolicy(eot.RegionTR)
	if err != nil {
		return nil, err
	}
	cr, err := eot.ComputeReturns(basket, eot.DefaultBaseline, taxes)
	if err != nil {
		return nil, err
	}
	inflation, err := eot.LoadInflation(*dataPath, eot.RegionTR)
	if err != nil {
		return nil, err
	}
	fundYield, err := eot.TrackedFundYield(inflation, eot.DefaultAxis())
	if err != nil {
		return nil, err
	}
	return renderer.NewReturnsReport(cr, fundYield), nil
}
