package ptycore

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgvUsesExplicitCommand(t *testing.T) {
	assert.Equal(t, []string{FallbackShell, "-c", "echo hi"}, BuildArgv("echo hi"))
}

func TestBuildArgvFallsBackToShellEnv(t *testing.T) {
	old, had := os.LookupEnv(ShellEnvVar)
	defer func() {
		if had {
			os.Setenv(ShellEnvVar, old)
		} else {
			os.Unsetenv(ShellEnvVar)
		}
	}()

	os.Setenv(ShellEnvVar, "/bin/zsh")
	assert.Equal(t, []string{FallbackShell, "-c", "/bin/zsh"}, BuildArgv(""))

	os.Unsetenv(ShellEnvVar)
	assert.Equal(t, []string{FallbackShell, "-c", FallbackShell}, BuildArgv(""))
}

func TestBuildEnvAppendsRecorderMarker(t *testing.T) {
	env := BuildEnv()
	assert.Contains(t, env, RecorderEnvVar)
	assert.Equal(t, len(os.Environ())+1, len(env))
}
