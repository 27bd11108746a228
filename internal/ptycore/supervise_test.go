package ptycore

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuperviseEndToEnd exercises the full reactor against a real PTY and a
// throwaway shell command. It needs a controlling terminal (CI runners
// without one should skip it) and forks a real process, so it's excluded
// from short test runs.
func TestSuperviseEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("forks a real child process")
	}
	if _, err := os.Open("/dev/tty"); err != nil {
		t.Skip("no controlling terminal available")
	}

	rec := &fakeRecorder{}
	code, err := Supervise(Options{
		Argv:     BuildArgv("echo hello-from-child; exit 7"),
		Env:      BuildEnv(),
		Recorder: rec,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, code)

	var got []byte
	for _, chunk := range rec.output {
		got = append(got, chunk...)
	}
	assert.Contains(t, string(got), "hello-from-child")
	assert.NotZero(t, rec.started.Cols)
}
