package uniform

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/safing/portrand/rng"
)

// Source draws uniformly distributed integers from a byte source.
// A Source is safe for concurrent use if its byte source is.
type Source struct {
	src io.Reader
}

var (
	defaultSource     *Source
	defaultSourceOnce sync.Once
)

// New returns a Source reading from src. If src is nil, the process-wide
// generator is used. While the generator is not running, ie. before the
// modules are started or after shutdown, the OS RNG is used instead.
func New(src io.Reader) *Source {
	if src == nil {
		src = &fallbackReader{
			primary:  rng.Reader,
			fallback: rand.Reader,
		}
	}
	return &Source{src: src}
}

// fallbackReader reads from fallback while primary is not ready.
type fallbackReader struct {
	primary  io.Reader
	fallback io.Reader
}

func (fr *fallbackReader) Read(b []byte) (int, error) {
	n, err := fr.primary.Read(b)
	if errors.Is(err, rng.ErrNotReady) {
		return fr.fallback.Read(b)
	}
	return n, err
}

// Default returns the shared Source backed by the process-wide generator.
func Default() *Source {
	defaultSourceOnce.Do(func() {
		defaultSource = New(nil)
	})
	return defaultSource
}

// Uniform returns a uniformly distributed number in [0, upperBound) from
// the default Source.
func Uniform(upperBound uint32) uint32 {
	return Default().Uniform(upperBound)
}

// Uint32 returns a uniformly distributed 32 bit number from the default
// Source.
func Uint32() uint32 {
	return Default().Uint32()
}

// Uniform returns a uniformly distributed number in [0, upperBound).
// Values outside the largest multiple of upperBound below 2^32 are
// rejected and drawn again, so the result has no modulo bias.
// Bounds of 0 and 1 return 0 without reading from the byte source.
// Failing to read from the byte source results in a panic.
func (s *Source) Uniform(upperBound uint32) uint32 {
	if upperBound < 2 {
		return 0
	}

	limit := rejectionLimit(upperBound)
	for {
		candidate := s.Uint32()
		if uint64(candidate) < limit {
			return candidate % upperBound
		}
		countRejection()
	}
}

// Uint32 returns a uniformly distributed 32 bit number.
// Failing to read from the byte source results in a panic.
func (s *Source) Uint32() uint32 {
	var b [4]byte
	if _, err := io.ReadFull(s.src, b[:]); err != nil {
		panic(fmt.Sprintf("uniform: failed to read from random source: %s", err))
	}
	countDraw()

	return binary.LittleEndian.Uint32(b[:])
}

// rejectionLimit returns the exclusive limit below which a 32 bit draw can
// be reduced modulo upperBound without bias. upperBound must not be 0.
func rejectionLimit(upperBound uint32) uint64 {
	const space = uint64(1) << 32
	return space - space%uint64(upperBound)
}
