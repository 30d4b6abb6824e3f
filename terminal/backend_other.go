//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package terminal

import (
	"errors"
	"runtime"
)

var errUnsupported = errors.New("ansi backend not supported on " + runtime.GOOS)

// unsupportedBackend fails Init so callers can fall back to NewTcell
type unsupportedBackend struct{}

const ansiSupported = false

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error { return errUnsupported }
func (unsupportedBackend) Fini() error { return nil }
func (unsupportedBackend) Size() (int, int, error) { return 0, 0, errUnsupported }
func (unsupportedBackend) Write([]byte) error { return errUnsupported }
func (unsupportedBackend) Read() ([]byte, error) { return nil, errUnsupported }
func (unsupportedBackend) Resized() bool { return false }

func resetTerminalMode() {}
