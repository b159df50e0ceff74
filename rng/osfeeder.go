package rng

import (
	"context"
	"crypto/rand"
	"fmt"
)

// osFeeder reads OS entropy into feeder until ctx is canceled.
func osFeeder(ctx context.Context, feeder *Feeder) error {
	entropyBytes := minFeedEntropy() / 8
	if entropyBytes < 32 {
		entropyBytes = 64
	}

	for {
		// gather seed material
		osEntropy := make([]byte, entropyBytes)
		n, err := rand.Read(osEntropy)
		if err != nil {
			return fmt.Errorf("could not read entropy from os: %w", err)
		}
		if n != len(osEntropy) {
			return fmt.Errorf("could not read enough entropy from os: got only %d bytes instead of %d", n, len(osEntropy))
		}

		// feed
		feeder.SupplyEntropy(ctx, osEntropy, n*8)

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}
