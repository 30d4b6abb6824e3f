package terminal

import (
	"time"
	"unicode/utf8"
)

// escapeTimeout is the duration to wait after ESC to distinguish
// standalone ESC from escape sequence start
const escapeTimeout = 50 * time.Millisecond

// maxSequenceLen bounds CSI scanning so a malformed sequence cannot stall the parser
const maxSequenceLen = 32

// inputParser assembles raw stdin bytes into key events
type inputParser struct {
	// Persistent buffer for stream assembly, holds incomplete sequences and partial UTF-8 between reads
	buf     []byte
	pending []Event

	// pendingSince is when buf last started holding an incomplete escape sequence
	pendingSince time.Time
	now          func() time.Time
}

func newInputParser() *inputParser {
	return &inputParser{
		buf: make([]byte, 0, 256),
		now: time.Now,
	}
}

// feed appends freshly read bytes and parses as much as possible
func (p *inputParser) feed(data []byte) {
	if len(data) > 0 {
		p.buf = append(p.buf, data...)
		p.pendingSince = time.Time{}
	}

	consumed := p.parse(p.buf)
	if consumed > 0 {
		if consumed >= len(p.buf) {
			p.buf = p.buf[:0]
		} else {
			copy(p.buf, p.buf[consumed:])
			p.buf = p.buf[:len(p.buf)-consumed]
		}
	}

	p.expireEscape()
}

// expireEscape resolves an escape prefix that received no continuation within escapeTimeout
func (p *inputParser) expireEscape() {
	if len(p.buf) == 0 || p.buf[0] != 0x1b {
		p.pendingSince = time.Time{}
		return
	}

	now := p.now()
	if p.pendingSince.IsZero() {
		p.pendingSince = now
		return
	}
	if now.Sub(p.pendingSince) < escapeTimeout {
		return
	}

	if len(p.buf) == 1 {
		p.emit(Event{Type: EventKey, Key: KeyEscape})
	} else {
		// Truncated sequence, swallow it
		p.emit(Event{Type: EventKey, Key: KeySequence})
	}
	p.buf = p.buf[:0]
	p.pendingSince = time.Time{}
}

// next pops the oldest parsed event
func (p *inputParser) next() (Event, bool) {
	if len(p.pending) == 0 {
		return Event{}, false
	}
	ev := p.pending[0]
	p.pending = p.pending[1:]
	return ev, true
}

func (p *inputParser) emit(ev Event) {
	p.pending = append(p.pending, ev)
}

// parse parses raw bytes into events and returns bytes consumed (stop on incomplete sequence)
func (p *inputParser) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Fast path: printable ASCII
		if b >= 0x20 && b < 0x7f {
			p.emit(Event{Type: EventKey, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i
			}

			consumed, ev := parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			p.emit(ev)
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			if ev := parseControl(b); ev.Key != KeyNone {
				p.emit(ev)
			}
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			p.emit(Event{Type: EventKey, Key: KeyBackspace})
			i++
			continue
		}

		// UTF-8 multibyte
		if !utf8.FullRune(data[i:]) {
			return i
		}
		r, size := utf8.DecodeRune(data[i:])
		if r != utf8.RuneError {
			p.emit(Event{Type: EventKey, Key: KeyRune, Rune: r})
		}
		i += size
	}
	return i
}

// parseEscape parses a sequence starting with ESC, returns 0 on incomplete
func parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	switch c := data[1]; {
	case c == 0x1b:
		// ESC ESC -> Alt+Escape
		return 2, Event{Type: EventKey, Key: KeyEscape, Modifiers: ModAlt}
	case c == '[':
		return parseCSI(data)
	case c == 'O':
		if len(data) < 3 {
			return 0, Event{}
		}
		return 3, Event{Type: EventKey, Key: KeySequence}
	case c < 0x20:
		ev := parseControl(c)
		ev.Modifiers |= ModAlt
		return 2, ev
	case c < 0x7f:
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(c), Modifiers: ModAlt}
	}

	// ESC followed by DEL or a non-ASCII byte: report the escape, parse the rest normally
	return 1, Event{Type: EventKey, Key: KeyEscape}
}

// parseCSI consumes a full CSI sequence (ESC [ params final)
func parseCSI(data []byte) (int, Event) {
	end := 2
	for end < len(data) {
		b := data[end]
		end++
		// Final byte range per ECMA-48
		if b >= 0x40 && b <= 0x7e {
			return end, Event{Type: EventKey, Key: KeySequence}
		}
		if b < 0x20 || b > 0x7e || end >= maxSequenceLen {
			// Malformed, drop what was scanned
			return end, Event{Type: EventKey, Key: KeySequence}
		}
	}
	return 0, Event{}
}

// parseControl maps control characters to keys
func parseControl(b byte) Event {
	switch b {
	case 0x03:
		return Event{Type: EventKey, Key: KeyCtrlC}
	case 0x08: // Ctrl+H or Backspace
		return Event{Type: EventKey, Key: KeyBackspace}
	case 0x09:
		return Event{Type: EventKey, Key: KeyTab}
	case 0x0a, 0x0d: // LF, CR (Enter)
		return Event{Type: EventKey, Key: KeyEnter}
	case 0x1b:
		return Event{Type: EventKey, Key: KeyEscape}
	}
	return Event{Type: EventKey, Key: KeyNone}
}
