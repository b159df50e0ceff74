package metrics

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	c, err := NewCounter("test/draws/total", map[string]string{"source": "os", "cipher": "aes"}, &Options{Name: "Test Draws"})
	require.NoError(t, err)
	assert.Equal(t, "test/draws/total", c.ID())
	assert.Equal(t, `portrand_test_draws_total{cipher="aes",source="os"}`, c.LabeledID())
	assert.Equal(t, "Test Draws", c.Opts().Name)

	c.Inc()
	c.Add(2)
	assert.Equal(t, uint64(3), c.Get())

	// same ID and labels return the same counter
	same, err := NewCounter("test/draws/total", map[string]string{"cipher": "aes", "source": "os"}, nil)
	require.NoError(t, err)
	assert.Same(t, c, same)

	buf := &bytes.Buffer{}
	WritePrometheus(buf, false)
	assert.Contains(t, buf.String(), `portrand_test_draws_total{cipher="aes",source="os"} 3`)
	assert.Contains(t, Registered(), c.LabeledID())
}

func TestFetchingCounter(t *testing.T) {
	t.Parallel()

	var value uint64 = 7
	fc, err := NewFetchingCounter("test/fetched/total", nil, func() uint64 { return value }, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), fc.Value())

	buf := &bytes.Buffer{}
	WritePrometheus(buf, true)
	assert.Contains(t, buf.String(), "portrand_test_fetched_total 7")
	assert.Contains(t, buf.String(), "go_goroutines")

	// log metrics are registered on init
	assert.Contains(t, buf.String(), "portrand_logs_warning_total")

	_, err = NewFetchingCounter("test/fetched/total", nil, func() uint64 { return 0 }, nil)
	assert.True(t, errors.Is(err, ErrAlreadyRegistered))

	_, err = NewFetchingCounter("test/nil", nil, nil, nil)
	assert.Error(t, err)
}

func TestInvalidIDs(t *testing.T) {
	t.Parallel()

	_, err := NewCounter("test/bad-name", nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidID))

	_, err = NewCounter("test/bad_label", map[string]string{"1abc": "x"}, nil)
	assert.True(t, errors.Is(err, ErrInvalidID))

	_, err = NewCounter("test/bad_value", map[string]string{"abc": "x\"y"}, nil)
	assert.True(t, errors.Is(err, ErrInvalidID))
}
