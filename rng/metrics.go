package rng

import (
	"github.com/safing/portrand/metrics"
)

// Reseed sources.
const (
	reseedSourceOS     = "os"
	reseedSourceFeeder = "feeder"
	reseedSourceStir   = "stir"
	reseedSourceUser   = "user"
)

var (
	bytesReadCounter *metrics.Counter
	reseedCounters   = make(map[string]*metrics.Counter)
)

func registerMetrics() (err error) {
	bytesReadCounter, err = metrics.NewCounter(
		"random/bytes/total",
		nil,
		&metrics.Options{
			Name: "Total Random Bytes Served",
		},
	)
	if err != nil {
		return err
	}

	for _, source := range []string{
		reseedSourceOS,
		reseedSourceFeeder,
		reseedSourceStir,
		reseedSourceUser,
	} {
		reseedCounters[source], err = metrics.NewCounter(
			"random/reseeds/total",
			map[string]string{"source": source},
			&metrics.Options{
				Name: "Total RNG Reseeds",
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func countBytes(n int) {
	if bytesReadCounter != nil {
		bytesReadCounter.Add(n)
	}
}

func countReseed(source string) {
	if c, ok := reseedCounters[source]; ok {
		c.Inc()
	}
}
