package ptycore

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/srg/termrec/internal/groutine"
)

// signalKind is the one-byte encoding written to the self-pipe. Using a
// small fixed enum instead of the raw signal number keeps the pipe protocol
// independent of platform-specific signal numbering.
type signalKind byte

const (
	sigWINCH signalKind = iota + 1
	sigINT
	sigTERM
	sigQUIT
	sigHUP
)

// signalIntake converts asynchronous unix signals into a stream the reactor
// can poll alongside the master and tty file descriptors. signal.Notify
// only delivers on a channel, so one small goroutine bridges the channel to
// a self-pipe's write end; the reactor never touches that goroutine, it
// only reads the pipe's read end.
type signalIntake struct {
	r, w *os.File
	ch   chan os.Signal
	done chan struct{}
}

func newSignalIntake() (*signalIntake, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	if err := SetNonBlocking(int(r.Fd())); err != nil {
		_ = r.Close()
		_ = w.Close()
		return nil, err
	}

	si := &signalIntake{
		r:    r,
		w:    w,
		ch:   make(chan os.Signal, 16),
		done: make(chan struct{}),
	}

	signal.Notify(si.ch, syscall.SIGWINCH, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	groutine.Go(nil, "signal-intake-forwarder", func(_ context.Context) {
		si.forward()
	})

	return si, nil
}

// forward bridges si.ch to the pipe's write end, one byte per signal.
func (si *signalIntake) forward() {
	for {
		select {
		case s := <-si.ch:
			var kind signalKind
			switch s {
			case syscall.SIGWINCH:
				kind = sigWINCH
			case syscall.SIGINT:
				kind = sigINT
			case syscall.SIGTERM:
				kind = sigTERM
			case syscall.SIGQUIT:
				kind = sigQUIT
			case syscall.SIGHUP:
				kind = sigHUP
			default:
				continue
			}
			if _, err := si.w.Write([]byte{byte(kind)}); err != nil {
				return
			}
		case <-si.done:
			return
		}
	}
}

func (si *signalIntake) fd() int {
	return int(si.r.Fd())
}

// drain reads every pending signal byte from the pipe without blocking. It
// never returns a fatal error: EAGAIN/EINTR are normal control flow and any
// other read error just means there's nothing more to decode this pass.
func (si *signalIntake) drain(scratch []byte) []signalKind {
	var kinds []signalKind
	fd := int(si.r.Fd())
	for {
		n, err := syscall.Read(fd, scratch)
		if n > 0 {
			for _, b := range scratch[:n] {
				kinds = append(kinds, signalKind(b))
			}
		}
		if err == syscall.EINTR {
			continue
		}
		if n <= 0 || err != nil {
			return kinds
		}
	}
}

func (si *signalIntake) close() {
	signal.Stop(si.ch)
	close(si.done)
	_ = si.r.Close()
	_ = si.w.Close()
}
