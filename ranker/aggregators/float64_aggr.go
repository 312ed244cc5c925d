package aggregators

import (
	"math"
	"sync/atomic"
	"unsafe"
)

var _ Aggregator = (*Float64Aggregator)(nil)

// Float64Aggregator implements a concurrent-safe accumulator for
// float64 values. It uses a mutex free implementation.
type Float64Aggregator struct {
	sum float64
}

func (a *Float64Aggregator) Type() string {
	return "Float64Aggregator"
}

func (a *Float64Aggregator) Get() any {
	return loadFloat64(&a.sum)
}

func (a *Float64Aggregator) Set(v any) {
	for v64 := v.(float64); ; {
		old := loadFloat64(&a.sum)
		if atomic.CompareAndSwapUint64(
			(*uint64)(unsafe.Pointer(&a.sum)),
			math.Float64bits(old),
			math.Float64bits(v64),
		) {
			return
		}
	}
}

func (a *Float64Aggregator) Aggregate(v any) {
	for v64 := v.(float64); ; {
		old := loadFloat64(&a.sum)
		next := old + v64
		if atomic.CompareAndSwapUint64(
			(*uint64)(unsafe.Pointer(&a.sum)),
			math.Float64bits(old),
			math.Float64bits(next),
		) {
			return
		}
	}
}

// atomic load for float64
// it works by casting float64 to uint64 then loading the latter.
func loadFloat64(fp *float64) float64 {
	return math.Float64frombits(
		atomic.LoadUint64((*uint64)(unsafe.Pointer(fp))),
	)
}
