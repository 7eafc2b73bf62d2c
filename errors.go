package eot

import "errors"

// Sentinel errors for the derivation pipeline. Callers match them with
// errors.Is; the pipeline wraps them with the metric name and date key that
// triggered the failure.
var (
	// ErrMissingMetric reports a base metric absent from the loaded set.
	ErrMissingMetric = errors.New("missing metric")

	// ErrMissingDateData reports a metric with no value on a date a
	// calculation requires.
	ErrMissingDateData = errors.New("missing data for date")

	// ErrUnsupportedRegion reports a region code with no tax policy.
	ErrUnsupportedRegion = errors.New("unsupported region")

	// ErrUnimplemented reports a calculation path that is recognized but
	// deliberately not built yet.
	ErrUnimplemented = errors.New("not implemented")
)
