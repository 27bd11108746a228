package ptycore

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
)

// ShellEnvVar names the environment variable consulted for the default
// command to run when the caller didn't specify one.
const ShellEnvVar = "SHELL"

// FallbackShell is used when SHELL is unset.
const FallbackShell = "/bin/sh"

// RecorderEnvVar is unconditionally appended to the child's environment so
// scripts can detect they're running under a recorded session.
const RecorderEnvVar = "ASCIINEMA_REC=1"

// BuildArgv implements the argv convention from spec.md §4.B: the child is
// always "/bin/sh -c <command>", where command defaults to $SHELL and falls
// back to /bin/sh.
func BuildArgv(command string) []string {
	if command == "" {
		command = os.Getenv(ShellEnvVar)
	}
	if command == "" {
		command = FallbackShell
	}
	return []string{FallbackShell, "-c", command}
}

// BuildEnv returns the parent's current environment with ASCIINEMA_REC=1
// appended.
func BuildEnv() []string {
	env := os.Environ()
	return append(env, RecorderEnvVar)
}

// ChildProcess is the forked descendant. The reactor may send it SIGTERM in
// response to a fatal signal; the caller reaps it after the reactor returns.
type ChildProcess struct {
	cmd *exec.Cmd
}

// Pid returns the child's process id.
func (c *ChildProcess) Pid() int {
	if c.cmd.Process == nil {
		return 0
	}
	return c.cmd.Process.Pid
}

// Signal sends sig to the child. Errors are not fatal to the caller: the
// child may already have exited.
func (c *ChildProcess) Signal(sig syscall.Signal) error {
	if c == nil || c.cmd == nil || c.cmd.Process == nil {
		return nil
	}
	return c.cmd.Process.Signal(sig)
}

// ExitResult is the mapping described by spec.md §6 / §8 property 6.
type ExitResult struct {
	Code int
}

// Wait blocks until the child exits and maps its termination to an exit
// code: a clean exit(n) maps to n; death by signal s maps to 128+s.
func (c *ChildProcess) Wait() (ExitResult, error) {
	err := c.cmd.Wait()
	state := c.cmd.ProcessState
	if state == nil {
		return ExitResult{}, err
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitResult{Code: 128 + int(ws.Signal())}, nil
	}
	return ExitResult{Code: state.ExitCode()}, nil
}

// SpawnResult is returned by SpawnInPTY.
type SpawnResult struct {
	Master *os.File
	Child  *ChildProcess
}

// SpawnInPTY allocates a PTY pair sized to size, forks, and execs argv with
// env in the child. The child is placed in its own session with the PTY
// slave as its controlling terminal, and its stdin/stdout/stderr attached
// to the slave; the parent never reads or writes the slave again once
// Start returns and it is closed.
//
// os/exec resets the child's signal dispositions to default before calling
// execve, which satisfies the "reset SIGPIPE handling to default" step of
// spec.md §4.B without any extra code here.
func SpawnInPTY(argv []string, env []string, size WindowSize) (*SpawnResult, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, newErr(KindPTYAllocationFailed, err)
	}

	if err := pty.Setsize(master, &pty.Winsize{Rows: size.Rows, Cols: size.Cols}); err != nil {
		_ = master.Close()
		_ = slave.Close()
		return nil, newErr(KindPTYAllocationFailed, err)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Stdin = slave
	cmd.Stdout = slave
	cmd.Stderr = slave
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	}

	if err := cmd.Start(); err != nil {
		_ = master.Close()
		_ = slave.Close()
		return nil, newErr(KindForkFailed, err)
	}

	// The parent's copy of the slave is only needed to hand off to the
	// child during Start; close it now so the master sees EOF once the
	// child's own slave fd is closed on exit.
	_ = slave.Close()

	return &SpawnResult{
		Master: master,
		Child:  &ChildProcess{cmd: cmd},
	}, nil
}
