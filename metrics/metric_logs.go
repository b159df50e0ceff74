package metrics

import (
	"github.com/safing/portrand/log"
)

func init() {
	if err := registerLogMetrics(); err != nil {
		panic(err)
	}
}

func registerLogMetrics() (err error) {
	_, err = NewFetchingCounter(
		"logs/warning/total",
		nil,
		log.TotalWarningLogLines,
		&Options{
			Name: "Total Warning Log Lines",
		},
	)
	if err != nil {
		return err
	}

	_, err = NewFetchingCounter(
		"logs/error/total",
		nil,
		log.TotalErrorLogLines,
		&Options{
			Name: "Total Error Log Lines",
		},
	)
	if err != nil {
		return err
	}

	_, err = NewFetchingCounter(
		"logs/critical/total",
		nil,
		log.TotalCriticalLogLines,
		&Options{
			Name: "Total Critical Log Lines",
		},
	)
	if err != nil {
		return err
	}

	return nil
}
