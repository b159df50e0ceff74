package container

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	testData         = []byte("The quick brown fox jumps over the lazy dog")
	testDataSplitted = [][]byte{
		[]byte("T"),
		[]byte("he"),
		[]byte(" qu"),
		[]byte("ick "),
		[]byte("brown"),
		[]byte(" fox j"),
		[]byte("umps ov"),
		[]byte("er the l"),
		[]byte("azy dog"),
	}
)

func TestContainerDataHandling(t *testing.T) {
	t.Parallel()

	c1 := New(testDataSplitted[0])
	for i := 1; i < len(testDataSplitted); i++ {
		c1.Append(testDataSplitted[i])
	}
	assert.Equal(t, len(testData), c1.Length())

	compiled := c1.CompileData()
	if !bytes.Equal(testData, compiled) {
		t.Errorf("compiled data mismatch: %s", compiled)
	}

	// compiling twice returns the same data
	assert.Equal(t, testData, c1.CompileData())

	c2 := New()
	assert.Equal(t, 0, c2.Length())
	assert.Empty(t, c2.CompileData())
}

func TestContainerWipe(t *testing.T) {
	t.Parallel()

	a := []byte{1, 2, 3}
	b := []byte{4, 5}

	c := New(a)
	c.Append(b)
	c.AppendCopy([]byte{6})
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, c.CompileData())

	// compiled data is a new buffer, originals are untouched by wipe
	c.Wipe()
	assert.Equal(t, 0, c.Length())
	assert.Equal(t, []byte{1, 2, 3}, a)

	c = New(a, b)
	c.Wipe()
	assert.Equal(t, []byte{0, 0, 0}, a)
	assert.Equal(t, []byte{0, 0}, b)
}
