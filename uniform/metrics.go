package uniform

import (
	"github.com/safing/portrand/log"
	"github.com/safing/portrand/metrics"
)

var (
	drawsCounter      *metrics.Counter
	rejectionsCounter *metrics.Counter
)

func init() {
	var err error

	drawsCounter, err = metrics.NewCounter(
		"uniform/draws/total",
		nil,
		&metrics.Options{
			Name: "Total Uniform Draws",
		},
	)
	if err != nil {
		log.Warningf("uniform: failed to register draws metric: %s", err)
	}

	rejectionsCounter, err = metrics.NewCounter(
		"uniform/rejections/total",
		nil,
		&metrics.Options{
			Name: "Total Uniform Rejected Draws",
		},
	)
	if err != nil {
		log.Warningf("uniform: failed to register rejections metric: %s", err)
	}
}

func countDraw() {
	if drawsCounter != nil {
		drawsCounter.Inc()
	}
}

func countRejection() {
	if rejectionsCounter != nil {
		rejectionsCounter.Inc()
	}
}
