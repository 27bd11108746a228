package ptycore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteQueueWriteReturnsAppendedSlice(t *testing.T) {
	var q byteQueue
	first := q.write([]byte("hello"))
	assert.Equal(t, []byte("hello"), first)

	second := q.write([]byte("world"))
	assert.Equal(t, []byte("world"), second)
	assert.Equal(t, 10, q.len())
}

func TestByteQueueAdvanceDrainsFront(t *testing.T) {
	var q byteQueue
	q.write([]byte("abcdef"))

	q.advance(3)
	assert.Equal(t, []byte("def"), q.front())
	assert.Equal(t, 3, q.len())

	q.advance(3)
	assert.Equal(t, 0, q.len())
	assert.Empty(t, q.buf)
	assert.Equal(t, 0, q.off)
}

func TestByteQueueCompactsPastThreshold(t *testing.T) {
	var q byteQueue
	chunk := make([]byte, compactThreshold)
	q.write(chunk)
	q.write([]byte("tail"))

	q.advance(compactThreshold)

	assert.Equal(t, []byte("tail"), q.front())
	assert.Equal(t, 0, q.off)
	assert.Equal(t, 4, len(q.buf))
}

func TestByteQueuePreservesOrderAcrossWrites(t *testing.T) {
	var q byteQueue
	q.write([]byte("a"))
	q.advance(1)
	q.write([]byte("b"))
	q.write([]byte("c"))

	assert.Equal(t, []byte("bc"), q.front())
}
