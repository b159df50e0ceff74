package rng

import (
	"context"
	"encoding/binary"

	"github.com/tevino/abool"

	"github.com/safing/portrand/container"
)

var rngFeeder = make(chan []byte)

// The Feeder is used to feed entropy to the RNG.
type Feeder struct {
	input        chan *entropyData
	entropy      int64
	needsEntropy *abool.AtomicBool
	buffer       *container.Container
}

type entropyData struct {
	data    []byte
	entropy int
}

// NewFeeder returns a new entropy Feeder. It stops when the context is canceled.
func NewFeeder(ctx context.Context) *Feeder {
	newFeeder := &Feeder{
		input:        make(chan *entropyData),
		needsEntropy: abool.NewBool(true),
		buffer:       container.New(),
	}
	module.StartServiceWorker("feeder", 0, func(_ context.Context) error {
		newFeeder.run(ctx)
		return nil
	})
	return newFeeder
}

// NeedsEntropy returns whether the feeder is currently gathering entropy.
func (f *Feeder) NeedsEntropy() bool {
	return f.needsEntropy.IsSet()
}

// SupplyEntropy supplies entropy to the Feeder, it will block until the Feeder has read from it.
func (f *Feeder) SupplyEntropy(ctx context.Context, data []byte, entropy int) {
	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	case <-ctx.Done():
	}
}

// SupplyEntropyIfNeeded supplies entropy to the Feeder, but will not block if no entropy is currently needed.
func (f *Feeder) SupplyEntropyIfNeeded(data []byte, entropy int) {
	if !f.needsEntropy.IsSet() {
		return
	}

	select {
	case f.input <- &entropyData{
		data:    data,
		entropy: entropy,
	}:
	default:
	}
}

// SupplyEntropyAsInt supplies entropy to the Feeder, it will block until the Feeder has read from it.
func (f *Feeder) SupplyEntropyAsInt(ctx context.Context, n int64, entropy int) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(n))
	f.SupplyEntropy(ctx, b, entropy)
}

func (f *Feeder) run(ctx context.Context) {
	defer f.needsEntropy.UnSet()
	defer f.buffer.Wipe()

	for {
		// gather
		f.needsEntropy.Set()
	gather:
		for {
			select {
			case newEntropy := <-f.input:
				f.buffer.AppendCopy(newEntropy.data)
				f.entropy += int64(newEntropy.entropy)
				if f.entropy >= minFeedEntropy() {
					break gather
				}
			case <-ctx.Done():
				return
			}
		}

		// feed
		f.needsEntropy.UnSet()
		seed := make([]byte, f.buffer.Length())
		copy(seed, f.buffer.CompileData())
		f.buffer.Wipe()
		f.entropy = 0
		select {
		case rngFeeder <- seed:
		case <-ctx.Done():
			return
		}
	}
}
