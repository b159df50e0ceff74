package metrics

import (
	"errors"

	vm "github.com/VictoriaMetrics/metrics"
)

// Counter is a counter metric.
type Counter struct {
	*metricBase
	*vm.Counter
}

// NewCounter registers a new counter metric. If a counter with the same ID
// and labels already exists, it is returned instead.
func NewCounter(id string, labels map[string]string, opts *Options) (*Counter, error) {
	// Ensure that there are options.
	if opts == nil {
		opts = &Options{}
	}

	// Make base.
	base, err := newMetricBase(id, labels, *opts)
	if err != nil {
		return nil, err
	}

	// Create metric struct.
	m := &Counter{
		metricBase: base,
	}

	// Register metric and create it in the set.
	registered, err := register(m, func() {
		m.Counter = metricsSet.NewCounter(m.LabeledID())
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyRegistered):
		existing, ok := registered.(*Counter)
		if !ok {
			return nil, err
		}
		return existing, nil
	default:
		return nil, err
	}

	return m, nil
}

// FetchingCounter is a counter metric that fetches its value when exported.
type FetchingCounter struct {
	*metricBase
	fetchCnt func() uint64
}

// NewFetchingCounter registers a new fetching counter metric. The given
// function is called to get the current value whenever metrics are exported.
func NewFetchingCounter(id string, labels map[string]string, fn func() uint64, opts *Options) (*FetchingCounter, error) {
	// Check if a fetch function is provided.
	if fn == nil {
		return nil, errors.New("no fetch function provided")
	}

	// Ensure that there are options.
	if opts == nil {
		opts = &Options{}
	}

	// Make base.
	base, err := newMetricBase(id, labels, *opts)
	if err != nil {
		return nil, err
	}

	// Create metric struct.
	m := &FetchingCounter{
		metricBase: base,
		fetchCnt:   fn,
	}

	// Register metric and create it in the set.
	_, err = register(m, func() {
		metricsSet.NewGauge(m.LabeledID(), func() float64 {
			return float64(m.fetchCnt())
		})
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Value returns the current value of the counter.
func (fc *FetchingCounter) Value() uint64 {
	return fc.fetchCnt()
}
