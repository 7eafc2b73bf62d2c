// Package eot derives financial metrics for tracked stocks from their
// quarterly statements and publishes inflation-aware reports. It is designed
// to be local-first: statements, inflation series and daily closes live as
// plain files that can be version-controlled and audited.
//
// The core functionalities include:
//   - Statement Loading: Reading hand-maintained quarterly statements,
//     regional inflation series and scraped live prices from the data
//     directory.
//   - Metric Derivation: A stateless pipeline that computes real dividend
//     yield, net debt ratio, enterprise value multiples, market-to-book and
//     inflation-adjusted growth over a fixed reporting axis.
//   - Basket Returns: Cumulative returns of a reference basket (currencies,
//     a money fund net of withholding, gold) since a baseline date.
//   - Price Refresh: Fetching live quotes over HTTP with a day-scoped disk
//     cache, so repeated runs in a day never re-hit the provider.
//
// This package serves as the foundational logic for the `eot` command-line
// tool, ensuring that all reports are derived from a single source of truth.
package eot
