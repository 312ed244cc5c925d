// Package aggregators provides concurrency-safe, lock-free accumulators
// that rank computations use to combine partial results produced by
// concurrent workers.
package aggregators

// Aggregator is implemented by accumulators that can be safely updated
// by multiple workers at the same time.
type Aggregator interface {
	Type() string
	Set(val any)
	Get() any
	// Aggregate updates the aggregator's value based on the current value.
	Aggregate(val any)
}
