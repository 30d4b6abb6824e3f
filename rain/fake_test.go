package rain

import (
	"github.com/lixenwraith/matrix-rain/terminal"
)

type draw struct {
	X, Y int
	R    rune
	Fg   terminal.RGB
}

// fakeTerminal records every glyph and can fail any step on demand
type fakeTerminal struct {
	w, h int

	draws []draw

	initErr  error
	finiErr  error
	sizeErr  error
	drawErr  error
	flushErr error

	initCalls  int
	finiCalls  int
	flushCalls int
}

func newFakeTerminal(w, h int) *fakeTerminal {
	return &fakeTerminal{w: w, h: h}
}

func (f *fakeTerminal) Init() error {
	f.initCalls++
	return f.initErr
}

func (f *fakeTerminal) Fini() error {
	f.finiCalls++
	return f.finiErr
}

func (f *fakeTerminal) Size() (int, int, error) {
	if f.sizeErr != nil {
		return 0, 0, f.sizeErr
	}
	return f.w, f.h, nil
}

func (f *fakeTerminal) DrawGlyph(x, y int, r rune, fg terminal.RGB) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.draws = append(f.draws, draw{X: x, Y: y, R: r, Fg: fg})
	return nil
}

func (f *fakeTerminal) Flush() error {
	f.flushCalls++
	return f.flushErr
}

func (f *fakeTerminal) PollEvent() (terminal.Event, bool, error) {
	return terminal.Event{}, false, nil
}

// scriptedRand replays vals, then returns fallback; every value is reduced mod n
type scriptedRand struct {
	vals     []int
	fallback int
	calls    []int
}

func (r *scriptedRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	v := r.fallback
	if len(r.vals) > 0 {
		v = r.vals[0]
		r.vals = r.vals[1:]
	}
	return v % n
}
