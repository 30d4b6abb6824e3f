package terminal

import (
	"bytes"
	"time"
)

// fakeBackend records output and replays scripted input
type fakeBackend struct {
	out       bytes.Buffer
	reads     [][]byte
	resized   bool
	width     int
	height    int
	initErr   error
	finiErr   error
	sizeErr   error
	writeErr  error
	readErr   error
	initCalls int
	finiCalls int
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{width: w, height: h}
}

func (f *fakeBackend) Init() error {
	f.initCalls++
	return f.initErr
}

func (f *fakeBackend) Fini() error {
	f.finiCalls++
	return f.finiErr
}

func (f *fakeBackend) Size() (int, int, error) {
	if f.sizeErr != nil {
		return 0, 0, f.sizeErr
	}
	return f.width, f.height, nil
}

func (f *fakeBackend) Write(p []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.out.Write(p)
	return nil
}

func (f *fakeBackend) Read() ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if len(f.reads) == 0 {
		return nil, nil
	}
	data := f.reads[0]
	f.reads = f.reads[1:]
	return data, nil
}

func (f *fakeBackend) Resized() bool {
	r := f.resized
	f.resized = false
	return r
}

// fakeClock is a manually advanced time source
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
