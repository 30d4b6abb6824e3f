//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const ansiSupported = true

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	sigCh chan os.Signal
	buf   []byte
}

func newBackend() Backend {
	return &unixBackend{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
		buf:   make([]byte, 256),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.oldTerm = old

	// Buffered by one: repeated SIGWINCH between polls collapse into a single resize
	b.sigCh = make(chan os.Signal, 1)
	signal.Notify(b.sigCh, syscall.SIGWINCH)
	return nil
}

func (b *unixBackend) Fini() error {
	if b.sigCh != nil {
		signal.Stop(b.sigCh)
		b.sigCh = nil
	}
	if b.oldTerm == nil {
		return nil
	}
	err := term.Restore(b.inFd, b.oldTerm)
	b.oldTerm = nil
	return err
}

func (b *unixBackend) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read polls stdin with a zero timeout and reads whatever is already buffered
func (b *unixBackend) Read() ([]byte, error) {
	fds := []unix.PollFd{
		{Fd: int32(b.inFd), Events: unix.POLLIN},
	}

	n, err := unix.Poll(fds, 0)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0 && fds[0].Revents&unix.POLLIN == 0 {
		return nil, io.ErrClosedPipe
	}

	rn, err := unix.Read(b.inFd, b.buf)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return nil, nil
		}
		return nil, err
	}
	if rn == 0 {
		return nil, io.EOF
	}

	// Return copy of data
	ret := make([]byte, rn)
	copy(ret, b.buf[:rn])
	return ret, nil
}

func (b *unixBackend) Resized() bool {
	select {
	case <-b.sigCh:
		return true
	default:
		return false
	}
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// Try to restore via /dev/tty (works even if stdin redirected)
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer tty.Close()
		fd := int(tty.Fd())
		// Get current termios, enable ECHO and ICANON
		if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
			termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
			termios.Iflag |= unix.ICRNL
			unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
		}
	}
}
