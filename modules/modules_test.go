package modules

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderLock   sync.Mutex
	prepOrder   []string
	startOrder  []string
	stopOrder   []string
	workerState = make(chan string, 2)
)

func record(list *[]string, name string) func() error {
	return func() error {
		orderLock.Lock()
		defer orderLock.Unlock()
		*list = append(*list, name)
		return nil
	}
}

func testModule(name string, deps ...string) *Module {
	return Register(
		name,
		record(&prepOrder, name),
		record(&startOrder, name),
		record(&stopOrder, name),
		deps...,
	)
}

func TestModules(t *testing.T) {
	testModule("base")
	testModule("feeder", "base")
	generator := testModule("generator", "feeder")

	require.NoError(t, Start())
	assert.True(t, StartCompleted())
	select {
	case <-WaitForStartCompletion():
	default:
		t.Fatal("start completion signal should be closed")
	}

	assert.Equal(t, []string{"base", "feeder", "generator"}, prepOrder)
	assert.Equal(t, []string{"base", "feeder", "generator"}, startOrder)

	// service worker that runs until the module stops
	generator.StartServiceWorker("seeder", 0, func(ctx context.Context) error {
		workerState <- "started"
		<-ctx.Done()
		workerState <- "stopped"
		return nil
	})
	select {
	case state := <-workerState:
		assert.Equal(t, "started", state)
	case <-time.After(time.Second):
		t.Fatal("service worker did not start")
	}

	// panics are caught and reported as errors
	err := generator.RunWorker("explode", func(context.Context) error {
		panic("boom")
	})
	require.Error(t, err)
	isPanic, moduleErr := IsPanic(err)
	assert.True(t, isPanic)
	assert.Equal(t, "generator", moduleErr.ModuleName)
	assert.Equal(t, "explode", moduleErr.TaskName)
	assert.Equal(t, "worker", moduleErr.TaskType)

	// errors are returned as is
	errTest := errors.New("test error")
	err = generator.RunWorker("fail", func(context.Context) error {
		return errTest
	})
	assert.ErrorIs(t, err, errTest)
	isPanic, _ = IsPanic(err)
	assert.False(t, isPanic)

	// shutdown
	require.NoError(t, Shutdown())
	assert.True(t, IsShuttingDown())
	assert.Error(t, Shutdown(), "second shutdown should fail")
	assert.Equal(t, []string{"generator", "feeder", "base"}, stopOrder)
	assert.True(t, generator.IsStopping())

	select {
	case state := <-workerState:
		assert.Equal(t, "stopped", state)
	case <-time.After(time.Second):
		t.Fatal("service worker did not stop")
	}
}
