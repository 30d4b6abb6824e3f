package terminal

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var errNotInitialized = errors.New("screen not initialized")

// Tcell implements Terminal on a tcell.Screen
// tcell owns raw mode and the alternate screen; glyphs are buffered until Flush
type Tcell struct {
	screen      tcell.Screen
	initialized bool
	finalized   bool
}

// NewTcell wraps an existing screen, use tcell.NewSimulationScreen in tests
func NewTcell(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen}
}

// NewDefault returns the ANSI terminal where the platform supports it, otherwise a tcell screen
func NewDefault() (Terminal, error) {
	if ansiSupported {
		return New(), nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, ioErr("screen", fmt.Errorf("cannot create screen: %w", err))
	}
	return NewTcell(s), nil
}

func (t *Tcell) Init() error {
	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return ioErr("raw mode", err)
	}
	t.initialized = true
	t.screen.HideCursor()
	t.screen.Clear()
	return nil
}

func (t *Tcell) Fini() error {
	if !t.initialized || t.finalized {
		return nil
	}
	t.finalized = true
	t.screen.Fini()
	return nil
}

func (t *Tcell) Size() (int, int, error) {
	if !t.initialized {
		return 0, 0, ioErr("size", errNotInitialized)
	}
	w, h := t.screen.Size()
	return w, h, nil
}

func (t *Tcell) DrawGlyph(x, y int, r rune, fg RGB) error {
	if !t.initialized || t.finalized {
		return ioErr("write", errNotInitialized)
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B)))
	t.screen.SetContent(x, y, r, nil, style)
	return nil
}

func (t *Tcell) Flush() error {
	if !t.initialized || t.finalized {
		return ioErr("show", errNotInitialized)
	}
	t.screen.Show()
	return nil
}

func (t *Tcell) PollEvent() (Event, bool, error) {
	if !t.initialized || t.finalized {
		return Event{}, false, ioErr("poll", errNotInitialized)
	}
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			return Event{Type: EventResize}, true, nil
		case *tcell.EventKey:
			return convertKey(ev), true, nil
		case nil:
			// Screen finalized underneath us
			return Event{}, false, ioErr("poll", errNotInitialized)
		}
	}
	return Event{}, false, nil
}

// convertKey maps a tcell key event to the package's Event
func convertKey(ev *tcell.EventKey) Event {
	out := Event{Type: EventKey}
	mods := ev.Modifiers()
	if mods&tcell.ModShift != 0 {
		out.Modifiers |= ModShift
	}
	if mods&tcell.ModAlt != 0 {
		out.Modifiers |= ModAlt
	}
	if mods&tcell.ModCtrl != 0 {
		out.Modifiers |= ModCtrl
	}

	switch ev.Key() {
	case tcell.KeyRune:
		out.Key = KeyRune
		out.Rune = ev.Rune()
	case tcell.KeyEscape:
		out.Key = KeyEscape
	case tcell.KeyEnter:
		out.Key = KeyEnter
	case tcell.KeyTab:
		out.Key = KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = KeyBackspace
	case tcell.KeyCtrlC:
		out.Key = KeyCtrlC
	default:
		out.Key = KeySequence
	}
	return out
}
