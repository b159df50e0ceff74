package rng

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"

	"github.com/safing/portrand/config"
	"github.com/safing/portrand/log"
	"github.com/safing/portrand/modules"
)

// Config keys.
const (
	CfgOptionCipherKey             = "random/rng_cipher"
	CfgOptionMinFeedEntropyKey     = "random/min_feed_entropy"
	CfgOptionReseedAfterSecondsKey = "random/reseed_after_seconds"
	CfgOptionReseedAfterBytesKey   = "random/reseed_after_bytes"
)

// seedSize is the amount of OS entropy used for seeding and stirring.
const seedSize = 64

var (
	module *modules.Module

	rng      *fortuna.Generator
	rngLock  sync.Mutex
	rngReady = false

	rngCipherOption    config.StringOption
	minFeedEntropy     config.IntOption
	reseedAfterSeconds config.IntOption
	reseedAfterBytes   config.IntOption
)

func init() {
	module = modules.Register("random", prep, start, stop, "config")
}

func prep() error {
	err := config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             CfgOptionCipherKey,
		Description:     "Cipher to use for the Fortuna RNG. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		RequiresRestart: true,
		ExternalOptType: "string list",
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent)$",
	})
	if err != nil {
		return err
	}
	rngCipherOption = config.Concurrent.GetAsString(CfgOptionCipherKey, "aes")

	err = config.Register(&config.Option{
		Name:            "Minimum Feed Entropy",
		Key:             CfgOptionMinFeedEntropyKey,
		Description:     "The minimum amount of entropy before a entropy source is feed to the RNG, in bits.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    256,
		ValidationRegex: "^[0-9]{3,5}$",
	})
	if err != nil {
		return err
	}
	minFeedEntropy = config.Concurrent.GetAsInt(CfgOptionMinFeedEntropyKey, 256)

	err = config.Register(&config.Option{
		Name:            "Reseed after x seconds",
		Key:             CfgOptionReseedAfterSecondsKey,
		Description:     "Number of seconds until reseed",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    360, // six minutes
		ValidationRegex: "^[1-9][0-9]{1,5}$",
	})
	if err != nil {
		return err
	}
	reseedAfterSeconds = config.Concurrent.GetAsInt(CfgOptionReseedAfterSecondsKey, 360)

	err = config.Register(&config.Option{
		Name:            "Reseed after x bytes",
		Key:             CfgOptionReseedAfterBytesKey,
		Description:     "Number of fetched bytes until reseed",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    1000000, // one megabyte
		ValidationRegex: "^[1-9][0-9]{2,9}$",
	})
	if err != nil {
		return err
	}
	reseedAfterBytes = config.Concurrent.GetAsInt(CfgOptionReseedAfterBytesKey, 1000000)

	return registerMetrics()
}

func newCipher(key []byte) (cipher.Block, error) {
	cipher := rngCipherOption()
	switch cipher {
	case "aes":
		return aes.NewCipher(key)
	case "serpent":
		return serpent.NewCipher(key)
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", cipher)
	}
}

func start() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	// The generator must be seeded before it can serve any data.
	seed := make([]byte, seedSize)
	if _, err := rand.Read(seed); err != nil {
		return fmt.Errorf("failed to get initial seed from os: %w", err)
	}

	rng = fortuna.NewGenerator(newCipher)
	reseed(seed, reseedSourceOS)
	rngReady = true
	log.Infof("random: started fortuna generator with %s cipher", rngCipherOption())

	// random source: OS
	osEntropyFeeder := NewFeeder(module.Ctx)
	module.StartServiceWorker("os rng feeder", 0, func(ctx context.Context) error {
		return osFeeder(ctx, osEntropyFeeder)
	})

	// full feeder
	module.StartServiceWorker("full feeder", 0, fullFeeder)

	return nil
}

func stop() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	rngReady = false
	return nil
}

// reseed mixes the seed into the generator, wipes the seed and resets the
// reseed counters. rngLock must be held.
func reseed(seed []byte, source string) {
	rng.Reseed(seed)
	for i := range seed {
		seed[i] = 0
	}
	rngBytesRead = 0
	rngLastFeed = time.Now()
	countReseed(source)
}
