package recorder

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srg/termrec/internal/ptycore"
)

func TestRawWriterWritesOutputVerbatim(t *testing.T) {
	var buf bytes.Buffer
	w := NewRawWriter(&buf)

	require.NoError(t, w.Start(ptycore.WindowSize{Cols: 80, Rows: 24}))
	w.Output([]byte("hello "))
	w.Output([]byte("world"))
	w.Input([]byte("ignored"))
	w.Resize(ptycore.WindowSize{Cols: 100, Rows: 40})

	assert.Equal(t, "hello world", buf.String())
}
