package terminal

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Terminal is the terminal capability the animation consumes
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state, attempting every step even if one fails. Safe to call multiple times
	Fini() error

	// Size returns current terminal dimensions
	Size() (width, height int, err error)

	// DrawGlyph moves the cursor to (x, y) (0-indexed) and prints r in fg
	DrawGlyph(x, y int, r rune, fg RGB) error

	// Flush completes the frame; implementations that write immediately treat it as a no-op
	Flush() error

	// PollEvent returns the next pending event without waiting
	PollEvent() (Event, bool, error)
}

// ANSI implements Terminal by writing ANSI sequences straight to a Backend
type ANSI struct {
	backend Backend
	writer  *bufio.Writer
	input   *inputParser

	initialized bool
	finalized   bool
}

// New creates an ANSI terminal on stdin/stdout
func New() *ANSI {
	return newANSI(newBackend())
}

func newANSI(b Backend) *ANSI {
	return &ANSI{
		backend: b,
		writer:  bufio.NewWriterSize(backendWriter{b}, 64),
		input:   newInputParser(),
	}
}

// backendWriter adapts Backend.Write to io.Writer for the bufio layer
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Init enters raw mode and sets up terminal
func (t *ANSI) Init() error {
	if t.initialized {
		return nil
	}

	// Initialize backend (raw mode)
	if err := t.backend.Init(); err != nil {
		return ioErr("raw mode", err)
	}
	t.initialized = true

	// Enter alternate screen, hide cursor
	// DISABLE AUTO-WRAP: prevents terminal scroll on bottom-right corner write
	if err := t.writeRaw(csiAltScreenEnter, csiCursorHide, csiAutoWrapOff, csiClear); err != nil {
		return ioErr("alt screen", err)
	}
	return nil
}

// Fini restores terminal state
func (t *ANSI) Fini() error {
	if !t.initialized || t.finalized {
		return nil
	}
	t.finalized = true

	var errs []error

	// Show cursor, exit alternate screen.
	// Re-enable Auto-Wrap AFTER exiting alt screen to ensure the main buffer has wrap enabled
	if err := t.writeRaw(csiCursorShow, csiAltScreenExit, csiAutoWrapOn, csiSGR0); err != nil {
		errs = append(errs, ioErr("alt screen", err))
	}

	// Backend cleanup runs even when the screen restore failed
	if err := t.backend.Fini(); err != nil {
		errs = append(errs, ioErr("restore", err))
	}

	return errors.Join(errs...)
}

// Size returns current terminal dimensions
func (t *ANSI) Size() (int, int, error) {
	w, h, err := t.backend.Size()
	if err != nil {
		return 0, 0, ioErr("size", err)
	}
	return w, h, nil
}

// DrawGlyph writes one cursor-move-then-print pair and flushes it immediately
func (t *ANSI) DrawGlyph(x, y int, r rune, fg RGB) error {
	w := t.writer
	writeCursorPos(w, x, y)
	writeFgRGB(w, fg)
	w.WriteRune(r)
	return ioErr("write", w.Flush())
}

// Flush is a no-op, DrawGlyph already wrote through
func (t *ANSI) Flush() error {
	return nil
}

// PollEvent checks resize first, then parsed input
func (t *ANSI) PollEvent() (Event, bool, error) {
	if t.backend.Resized() {
		return Event{Type: EventResize}, true, nil
	}

	if ev, ok := t.input.next(); ok {
		return ev, true, nil
	}

	data, err := t.backend.Read()
	if err != nil {
		return Event{}, false, ioErr("read", err)
	}
	t.input.feed(data)

	ev, ok := t.input.next()
	return ev, ok, nil
}

// writeRaw writes sequences to the backend in one call
func (t *ANSI) writeRaw(seqs ...[]byte) error {
	var n int
	for _, s := range seqs {
		n += len(s)
	}
	buf := make([]byte, 0, n)
	for _, s := range seqs {
		buf = append(buf, s...)
	}
	return t.backend.Write(buf)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset via termios - escape sequences alone don't restore it
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
