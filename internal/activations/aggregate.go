package activations

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregator reduces a pooling window to one value.
type Aggregator int

const (
	Max Aggregator = iota
	Min
	Average
	Median
)

var aggregatorNames = [...]string{
	Max:     "max",
	Min:     "min",
	Average: "avg",
	Median:  "median",
}

func (a Aggregator) String() string {
	if a < 0 || int(a) >= len(aggregatorNames) {
		return fmt.Sprintf("Aggregator(%d)", int(a))
	}
	return aggregatorNames[a]
}

// Valid reports whether a is one of the defined aggregators.
func (a Aggregator) Valid() bool {
	return a >= 0 && int(a) < len(aggregatorNames)
}

// ParseAggregator maps an export name such as "median" back to its Aggregator.
func ParseAggregator(name string) (Aggregator, error) {
	for a, n := range aggregatorNames {
		if n == name {
			return Aggregator(a), nil
		}
	}
	return 0, fmt.Errorf("activations: unknown aggregator %q", name)
}

// Reduce returns the aggregate of window. Median sorts window in place, so
// callers pass a scratch copy. An empty window reduces to 0.
func (a Aggregator) Reduce(window []float64) float64 {
	if len(window) == 0 {
		return 0
	}
	switch a {
	case Max:
		return floats.Max(window)
	case Min:
		return floats.Min(window)
	case Average:
		return stat.Mean(window, nil)
	case Median:
		sort.Float64s(window)
		n := len(window)
		if n%2 == 1 {
			return window[n/2]
		}
		return stat.Mean(window[n/2-1:n/2+1], nil)
	}
	return 0
}
