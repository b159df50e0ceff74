package rng

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"
)

// maxRequestSize limits how much data is requested from the generator at once.
const maxRequestSize = 1 << 20

var (
	// Reader provides a global instance to read from the RNG.
	Reader io.Reader = reader{}

	rngBytesRead int64
	rngLastFeed  = time.Now()

	// ErrNotReady is returned when the RNG is used before it was started or after it was stopped.
	ErrNotReady = errors.New("RNG is not ready yet")
)

// reader provides an io.Reader interface.
type reader struct{}

func checkEntropy() (err error) {
	if !rngReady {
		return ErrNotReady
	}
	if rngBytesRead > reseedAfterBytes() ||
		int64(time.Since(rngLastFeed).Seconds()) > reseedAfterSeconds() {
		select {
		case r := <-rngFeeder:
			reseed(r, reseedSourceFeeder)
		case <-time.After(1 * time.Second):
			return errors.New("failed to get new entropy")
		}
	}
	return nil
}

// Read reads random bytes into the supplied byte slice.
func Read(b []byte) (n int, err error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkEntropy(); err != nil {
		return 0, err
	}

	for n < len(b) {
		size := len(b) - n
		if size > maxRequestSize {
			size = maxRequestSize
		}
		n += copy(b[n:], rng.PseudoRandomData(uint(size)))
	}
	rngBytesRead += int64(n)
	countBytes(n)

	return n, nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with random data.
func Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid length %d", n)
	}

	b := make([]byte, n)
	if _, err := Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Stir immediately reseeds the RNG with fresh entropy from the OS.
// Failing to get entropy from the OS is fatal and results in a panic.
func Stir() error {
	seed := make([]byte, seedSize)
	if _, err := rand.Read(seed); err != nil {
		panic(fmt.Sprintf("random: failed to read entropy from os: %s", err))
	}

	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady {
		return ErrNotReady
	}
	reseed(seed, reseedSourceStir)
	return nil
}

// AddRandom mixes the given data into the RNG state. The data is not
// retained. As the quality of the supplied data is unknown, it does not
// count as a reseed and does not delay the next scheduled reseed.
func AddRandom(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	rngLock.Lock()
	defer rngLock.Unlock()

	if !rngReady {
		return ErrNotReady
	}
	rng.Reseed(data)
	countReseed(reseedSourceUser)
	return nil
}
