// Package metrics holds shared metric conventions for the service.
package metrics

// DefaultBuckets provides a common set of latency histogram buckets in
// seconds, reused by HTTP middleware and any future instrumented component.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals
