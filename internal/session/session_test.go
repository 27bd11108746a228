package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFileModeMissingFileCreatesFresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.cast")

	effAppend, err := resolveFileMode(path, false, false)
	require.NoError(t, err)
	assert.False(t, effAppend)
}

func TestResolveFileModeEmptyExistingFileBehavesAsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.cast")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	effAppend, err := resolveFileMode(path, false, false)
	require.NoError(t, err)
	assert.False(t, effAppend)
}

func TestResolveFileModeNonEmptyWithoutFlagsConflicts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.cast")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	_, err := resolveFileMode(path, false, false)
	require.Error(t, err)
	var conflict *FileConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestResolveFileModeNonEmptyWithAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.cast")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	effAppend, err := resolveFileMode(path, true, false)
	require.NoError(t, err)
	assert.True(t, effAppend)
}

func TestResolveFileModeNonEmptyWithOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.cast")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	effAppend, err := resolveFileMode(path, false, true)
	require.NoError(t, err)
	assert.False(t, effAppend)
}

func TestOpenDestinationAppendPreservesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.cast")
	require.NoError(t, os.WriteFile(path, []byte("prior\n"), 0644))

	f, isAppend, err := openDestination(path, true, false)
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, isAppend)

	_, err = f.WriteString("more\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prior\nmore\n", string(data))
}

func TestOpenDestinationOverwriteTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "existing.cast")
	require.NoError(t, os.WriteFile(path, []byte("stale data"), 0644))

	f, isAppend, err := openDestination(path, false, true)
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isAppend)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCaptureEnvOnlySetVars(t *testing.T) {
	require.NoError(t, os.Setenv("TERMREC_TEST_VAR", "value"))
	defer os.Unsetenv("TERMREC_TEST_VAR")
	os.Unsetenv("TERMREC_TEST_VAR_UNSET")

	got := captureEnv([]string{"TERMREC_TEST_VAR", "TERMREC_TEST_VAR_UNSET"})
	assert.Equal(t, map[string]string{"TERMREC_TEST_VAR": "value"}, got)
}

func TestCaptureEnvNoneSetReturnsNil(t *testing.T) {
	got := captureEnv([]string{"TERMREC_TEST_VAR_DEFINITELY_UNSET"})
	assert.Nil(t, got)
}

func TestFormatIdleTimeLimit(t *testing.T) {
	assert.Equal(t, "none", FormatIdleTimeLimit(nil))
	v := 1.5
	assert.Equal(t, "1.5s", FormatIdleTimeLimit(&v))
}

func TestFileConflictErrorMessage(t *testing.T) {
	err := &FileConflictError{Filename: "x.cast"}
	assert.Contains(t, err.Error(), "x.cast")
	assert.Contains(t, err.Error(), "--append")
}
