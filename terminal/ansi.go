// @focus: #terminal { ansi }
package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiCursorPos  = []byte("\x1b[") // followed by row;colH

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: Auto-Wrap Mode
	// ?7l disables wrapping, a glyph in the bottom-right corner must not scroll the screen
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	csiFgRGB = []byte("\x1b[38;2;") // followed by R;G;B;m
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [10]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeFgRGB writes a 24-bit foreground color
func writeFgRGB(w *bufio.Writer, c RGB) {
	w.Write(csiFgRGB)
	writeInt(w, int(c.R))
	w.WriteByte(';')
	writeInt(w, int(c.G))
	w.WriteByte(';')
	writeInt(w, int(c.B))
	w.WriteByte('m')
}
