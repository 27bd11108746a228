package ptycore

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// scratchSize is the single read/write scratch buffer size shared by both
// directions, per spec.md §4.D.
const scratchSize = 128 * 1024

// Recorder is the capability set the reactor depends on. Start is called
// exactly once, before fork; Output/Input/Resize are infallible from the
// reactor's perspective — a sink that wants to report failure buffers it or
// panics by its own policy.
type Recorder interface {
	Start(size WindowSize) error
	Output(data []byte)
	Input(data []byte)
	Resize(size WindowSize)
}

// Options configures a supervised session.
type Options struct {
	Argv         []string
	Env          []string
	ColsOverride *uint16
	RowsOverride *uint16
	Recorder     Recorder
}

// Supervise runs one full session: opens the controlling tty, measures its
// size, starts the recorder, forks a child into a freshly allocated PTY,
// and pumps bytes until the child exits or a fatal signal is received. It
// returns the exit code to propagate (spec.md §8 property 6) and restores
// the controlling tty to cooked mode on every return path.
func Supervise(opts Options) (exitCode int, err error) {
	tty, err := OpenControllingTTY()
	if err != nil {
		return 1, err
	}
	defer tty.Close()

	ttyFd := int(tty.Fd())
	size := QueryWindowSize(ttyFd).WithOverride(opts.ColsOverride, opts.RowsOverride)

	if err := opts.Recorder.Start(size); err != nil {
		return 1, newErr(KindSinkError, err)
	}

	raw, err := EnterRawMode(ttyFd)
	if err != nil {
		return 1, err
	}
	defer raw.Restore()

	spawned, err := SpawnInPTY(opts.Argv, opts.Env, size)
	if err != nil {
		return 1, err
	}
	master := spawned.Master
	defer master.Close()
	masterFd := int(master.Fd())

	if err := SetNonBlocking(masterFd); err != nil {
		return 1, newIOErr("master", err)
	}
	if err := SetNonBlocking(ttyFd); err != nil {
		return 1, newIOErr("tty", err)
	}

	sig, err := newSignalIntake()
	if err != nil {
		return 1, err
	}
	defer sig.close()

	re := &reactor{
		masterFd:     masterFd,
		ttyFd:        ttyFd,
		sig:          sig,
		recorder:     opts.Recorder,
		colsOverride: opts.ColsOverride,
		rowsOverride: opts.RowsOverride,
		scratch:      make([]byte, scratchSize),
		child:        spawned.Child,
	}

	runErr := re.run()

	// Reap the child regardless of runErr so it is never left a zombie.
	result, waitErr := spawned.Child.Wait()

	if runErr != nil {
		return 1, runErr
	}
	if waitErr != nil {
		return 1, newIOErr("", waitErr)
	}
	return result.Code, nil
}

// token identifies one of the three sources the reactor multiplexes.
type token int

const (
	tokenMaster token = iota
	tokenTTY
	tokenSignal
	tokenCount
)

// reactor is the single-threaded event-driven pump described in spec.md
// §4.D. One instance runs until the master reports read-closed and the
// outbound tty queue has drained, or until a fatal signal arrives.
type reactor struct {
	masterFd int
	ttyFd    int
	sig      *signalIntake
	recorder Recorder
	child    *ChildProcess

	colsOverride *uint16
	rowsOverride *uint16

	scratch []byte

	toTTY    byteQueue // bytes read from master, waiting to reach the real tty ("output")
	toMaster byteQueue // bytes read from the real tty, waiting to reach master ("input")

	flushing bool // master read-closed but toTTY still has bytes to drain

	done  bool
	fatal error
}

func (re *reactor) run() error {
	pollfds := make([]unix.PollFd, tokenCount)
	pollfds[tokenMaster] = unix.PollFd{Fd: int32(re.masterFd), Events: unix.POLLIN}
	pollfds[tokenTTY] = unix.PollFd{Fd: int32(re.ttyFd), Events: unix.POLLIN}
	pollfds[tokenSignal] = unix.PollFd{Fd: int32(re.sig.fd()), Events: unix.POLLIN}

	for !re.done {
		_, err := unix.Poll(pollfds, -1)
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			return newIOErr("", err)
		}

		for i := range pollfds {
			if pollfds[i].Fd < 0 {
				continue
			}
			revents := pollfds[i].Revents
			if revents == 0 {
				continue
			}
			switch token(i) {
			case tokenMaster:
				re.handleMaster(revents, &pollfds[tokenMaster], &pollfds[tokenTTY])
			case tokenTTY:
				re.handleTTY(revents, &pollfds[tokenTTY], &pollfds[tokenMaster])
			case tokenSignal:
				re.handleSignal(revents)
			}
			if re.done {
				break
			}
		}
	}

	return re.fatal
}

func (re *reactor) handleMaster(revents int16, masterPF, ttyPF *unix.PollFd) {
	if revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
		appended, eof, err := readAll(re.masterFd, re.scratch, &re.toTTY)
		if err != nil {
			re.fail(newIOErr("master", err))
			return
		}
		if len(appended) > 0 {
			re.recorder.Output(appended)
			ttyPF.Events |= unix.POLLOUT
		}
		if eof {
			masterPF.Fd = -1
			if re.toTTY.len() == 0 {
				re.done = true
			} else {
				re.flushing = true
			}
			return
		}
	}

	if revents&unix.POLLOUT != 0 {
		remaining, err := writeAll(re.masterFd, &re.toMaster)
		if err != nil {
			re.fail(newIOErr("master", err))
			return
		}
		if remaining == 0 {
			masterPF.Events &^= unix.POLLOUT
		}
	}
}

func (re *reactor) handleTTY(revents int16, ttyPF, masterPF *unix.PollFd) {
	if revents&unix.POLLOUT != 0 {
		remaining, err := writeAll(re.ttyFd, &re.toTTY)
		if err != nil {
			re.fail(newIOErr("tty", err))
			return
		}
		if remaining == 0 {
			if re.flushing {
				re.done = true
				return
			}
			ttyPF.Events &^= unix.POLLOUT
		}
	}

	if revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
		appended, eof, err := readAll(re.ttyFd, re.scratch, &re.toMaster)
		if err != nil {
			re.fail(newIOErr("tty", err))
			return
		}
		if len(appended) > 0 {
			re.recorder.Input(appended)
			masterPF.Events |= unix.POLLOUT
		}
		if eof {
			ttyPF.Fd = -1
			re.done = true
			return
		}
	}
}

func (re *reactor) handleSignal(revents int16) {
	if revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
		return
	}
	re.processSignalKinds(re.sig.drain(re.scratch[:4096]))
}

// processSignalKinds applies each decoded signal in order, stopping early
// once a termination signal sets re.done.
func (re *reactor) processSignalKinds(kinds []signalKind) {
	for _, kind := range kinds {
		switch kind {
		case sigWINCH:
			size := QueryWindowSize(re.ttyFd).WithOverride(re.colsOverride, re.rowsOverride)
			SetPTYSize(re.masterFd, size)
			re.recorder.Resize(size)

		case sigINT:
			// The child receives its own SIGINT via the line discipline
			// when the user presses ^C in raw mode; we must not also
			// kill it here.

		case sigTERM, sigQUIT, sigHUP:
			_ = re.child.Signal(syscall.SIGTERM)
			re.done = true
			return
		}
	}
}

func (re *reactor) fail(err error) {
	re.fatal = err
	re.done = true
}
