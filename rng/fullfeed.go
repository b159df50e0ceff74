package rng

import (
	"context"
	"time"
)

func getFullFeedDuration() time.Duration {
	// full feed every 5x time of reseedAfterSeconds
	secsUntilFullFeed := reseedAfterSeconds() * 5

	// full feed at most once per minute
	if secsUntilFullFeed < 60 {
		secsUntilFullFeed = 60
	}

	return time.Duration(secsUntilFullFeed * int64(time.Second))
}

// fullFeeder periodically drains all waiting seed material into the generator.
func fullFeeder(ctx context.Context) error {
	fullFeedDuration := 100 * time.Millisecond

	for {
		select {
		case <-time.After(fullFeedDuration):
			drainFeeders()
		case <-ctx.Done():
			return nil
		}

		fullFeedDuration = getFullFeedDuration()
	}
}

func drainFeeders() {
	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady {
		return
	}

feedAll:
	for {
		select {
		case data := <-rngFeeder:
			reseed(data, reseedSourceFeeder)
		default:
			break feedAll
		}
	}
}
