package rng

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safing/portrand/config"
	"github.com/safing/portrand/modules"
)

func TestMain(m *testing.M) {
	err := modules.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to setup test: %s", err)
		os.Exit(1)
	}

	exitCode := m.Run()

	// shutdown
	_ = modules.Shutdown()
	os.Exit(exitCode)
}

func TestRNG(t *testing.T) {
	key := make([]byte, 16)

	err := config.SetConfigOption(CfgOptionCipherKey, "aes")
	if err != nil {
		t.Errorf("failed to set %s config: %s", CfgOptionCipherKey, err)
	}
	_, err = newCipher(key)
	if err != nil {
		t.Errorf("failed to create aes cipher: %s", err)
	}

	err = config.SetConfigOption(CfgOptionCipherKey, "serpent")
	if err != nil {
		t.Errorf("failed to set %s config: %s", CfgOptionCipherKey, err)
	}
	_, err = newCipher(key)
	if err != nil {
		t.Errorf("failed to create serpent cipher: %s", err)
	}

	assert.Error(t, config.SetConfigOption(CfgOptionCipherKey, "rc4"), "unsupported cipher must not validate")
	require.NoError(t, config.SetConfigOption(CfgOptionCipherKey, nil))

	b := make([]byte, 32)
	n, err := Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}
	assert.Equal(t, 32, n)
	_, err = Reader.Read(b)
	if err != nil {
		t.Errorf("Read failed: %s", err)
	}

	b1, err := Bytes(32)
	require.NoError(t, err)
	b2, err := Bytes(32)
	require.NoError(t, err)
	assert.Len(t, b1, 32)
	assert.False(t, bytes.Equal(b1, b2), "consecutive reads must differ")

	empty, err := Bytes(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
	_, err = Bytes(-1)
	assert.Error(t, err)
}

func TestLargeRead(t *testing.T) {
	b := make([]byte, maxRequestSize+100)
	n, err := Read(b)
	require.NoError(t, err)
	assert.Equal(t, len(b), n)
	assert.False(t, bytes.Equal(b[:32], make([]byte, 32)))
	assert.False(t, bytes.Equal(b[len(b)-32:], make([]byte, 32)), "tail must be filled too")
}

func TestReseedAfterBytes(t *testing.T) {
	require.NoError(t, config.SetConfigOption(CfgOptionReseedAfterBytesKey, 100))
	defer func() {
		require.NoError(t, config.SetConfigOption(CfgOptionReseedAfterBytesKey, nil))
	}()

	before := reseedCounters[reseedSourceFeeder].Get()
	for i := 0; i < 3; i++ {
		_, err := Bytes(200)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, reseedCounters[reseedSourceFeeder].Get(), before+2)
}

func TestStir(t *testing.T) {
	before := reseedCounters[reseedSourceStir].Get()
	bytesBefore := bytesReadCounter.Get()

	require.NoError(t, Stir())
	assert.Equal(t, before+1, reseedCounters[reseedSourceStir].Get())

	_, err := Bytes(10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bytesReadCounter.Get(), bytesBefore+10)
}

func TestAddRandom(t *testing.T) {
	before := reseedCounters[reseedSourceUser].Get()

	// empty input is a no-op
	require.NoError(t, AddRandom(nil))
	require.NoError(t, AddRandom([]byte{}))
	assert.Equal(t, before, reseedCounters[reseedSourceUser].Get())

	data := []byte("some caller supplied randomness")
	dataCopy := append([]byte(nil), data...)
	require.NoError(t, AddRandom(data))
	assert.Equal(t, before+1, reseedCounters[reseedSourceUser].Get())
	assert.Equal(t, dataCopy, data, "caller data must not be modified")
}

func TestNotReady(t *testing.T) {
	rngLock.Lock()
	rngReady = false
	rngLock.Unlock()
	defer func() {
		rngLock.Lock()
		rngReady = true
		rngLock.Unlock()
	}()

	_, err := Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, Stir(), ErrNotReady)
	assert.ErrorIs(t, AddRandom([]byte{1}), ErrNotReady)
}
