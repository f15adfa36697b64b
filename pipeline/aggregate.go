package pipeline

import (
	"math"
	"sort"
)

// Bucket is one summed measure for one composite key.
type Bucket struct {
	Key string
	Sum float64
}

// NoRounding disables post-sum rounding on an aggregation.
const NoRounding = -1

// Aggregation groups keyed measures and reduces them by summation. It is an
// explicit two-phase operation: Add collects contributions into per-key
// accumulators, Buckets emits one sum per completed key. Summation order
// does not matter beyond ordinary floating-point tolerance.
type Aggregation struct {
	sums      map[string]float64
	precision int
}

// NewAggregation creates an aggregation whose sums are emitted as-is.
func NewAggregation() *Aggregation {
	return &Aggregation{sums: make(map[string]float64), precision: NoRounding}
}

// NewRoundedAggregation creates an aggregation whose sums are rounded to
// the given number of decimal digits after summation.
func NewRoundedAggregation(precision int) *Aggregation {
	return &Aggregation{sums: make(map[string]float64), precision: precision}
}

// Add collects one keyed measure into its key's accumulator.
func (a *Aggregation) Add(measure KeyedMeasure) {
	a.sums[measure.Key] += measure.Value
}

// Len returns the number of distinct keys collected so far.
func (a *Aggregation) Len() int {
	return len(a.sums)
}

// Buckets emits one bucket per distinct key, sorted by key so repeated runs
// over the same input produce identical output.
func (a *Aggregation) Buckets() []Bucket {
	keys := make([]string, 0, len(a.sums))
	for key := range a.sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		sum := a.sums[key]
		if a.precision != NoRounding {
			sum = roundTo(sum, a.precision)
		}
		buckets = append(buckets, Bucket{Key: key, Sum: sum})
	}
	return buckets
}

// roundTo rounds v to the given number of decimal digits.
func roundTo(v float64, digits int) float64 {
	shift := math.Pow(10, float64(digits))
	return math.Round(v*shift) / shift
}
