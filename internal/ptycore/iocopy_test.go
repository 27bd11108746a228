package ptycore

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAllReturnsAppendedSliceAndEOF(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	var out byteQueue
	scratch := make([]byte, 64)

	appended, eof, err := readAll(int(r.Fd()), scratch, &out)
	require.NoError(t, err)
	assert.True(t, eof)
	assert.Equal(t, []byte("payload"), appended)
	assert.Equal(t, []byte("payload"), out.front())
}

func TestReadAllStopsOnWouldBlock(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	require.NoError(t, SetNonBlocking(int(r.Fd())))

	_, err = w.Write([]byte("hi"))
	require.NoError(t, err)

	var out byteQueue
	scratch := make([]byte, 64)

	appended, eof, err := readAll(int(r.Fd()), scratch, &out)
	require.NoError(t, err)
	assert.False(t, eof)
	assert.Equal(t, []byte("hi"), appended)
}

func TestWriteAllDrainsQueue(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var q byteQueue
	q.write([]byte("out"))

	remaining, err := writeAll(int(w.Fd()), &q)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 0, q.len())

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "out", string(buf[:n]))
}

func TestWriteAllOnEmptyQueueIsNoop(t *testing.T) {
	_, w, err := os.Pipe()
	require.NoError(t, err)
	defer w.Close()

	var q byteQueue
	remaining, err := writeAll(int(w.Fd()), &q)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}
