package rng

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tevino/abool"

	"github.com/safing/portrand/container"
)

func TestFeeder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewFeeder(ctx)

	// wait for start / first round to complete
	time.Sleep(10 * time.Millisecond)

	// go through all functions
	f.NeedsEntropy()
	f.SupplyEntropy(ctx, []byte{0}, 0)
	f.SupplyEntropyAsInt(ctx, 0, 0)
	f.SupplyEntropyIfNeeded([]byte{0}, 0)

	// fill entropy
	f.SupplyEntropyAsInt(ctx, 0, 65535)

	// check blocking calls

	blockedC := make(chan struct{})
	go func(done chan struct{}) {
		f.SupplyEntropy(ctx, []byte{0}, 0)
		close(done)
	}(blockedC)
	select {
	case <-blockedC:
		t.Error("call does not block!")
	case <-time.After(10 * time.Millisecond):
	}

	// check non-blocking calls

	nonBlockingC := make(chan struct{})
	go func(done chan struct{}) {
		f.SupplyEntropyIfNeeded([]byte{0}, 0)
		close(done)
	}(nonBlockingC)
	select {
	case <-nonBlockingC:
	case <-time.After(10 * time.Millisecond):
		t.Error("call blocks!")
	}

	// canceling the context releases blocked suppliers
	cancel()
	select {
	case <-blockedC:
	case <-time.After(time.Second):
		t.Error("blocked supplier was not released by cancel")
	}
}

func TestOSFeeder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// feeder without a run loop, so the supplied data can be inspected
	f := &Feeder{
		input:        make(chan *entropyData),
		needsEntropy: abool.NewBool(true),
		buffer:       container.New(),
	}

	errC := make(chan error, 1)
	go func() {
		errC <- osFeeder(ctx, f)
	}()

	// entropy goes to the given feeder
	for i := 0; i < 2; i++ {
		select {
		case supplied := <-f.input:
			assert.GreaterOrEqual(t, len(supplied.data), 32)
			assert.Equal(t, len(supplied.data)*8, supplied.entropy)
		case <-time.After(time.Second):
			t.Fatal("os feeder did not supply entropy")
		}
	}

	cancel()
	select {
	case err := <-errC:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("os feeder did not stop")
	}
}
