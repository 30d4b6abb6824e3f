package rain

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/matrix-rain/terminal"
)

func newTestSession(t *testing.T, w, h int, rng Rand) (*Session, *fakeTerminal) {
	t.Helper()
	ft := newFakeTerminal(w, h)
	s, err := New(ft, rng, DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Initialize())
	return s, ft
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero trail", func(c *Config) { c.TrailLength = 0 }},
		{"trail longer than palette", func(c *Config) { c.TrailLength = len(c.Palette) + 1 }},
		{"zero stride", func(c *Config) { c.TrailStride = 0 }},
		{"zero cap", func(c *Config) { c.DropsPerColumn = 0 }},
		{"negative frame interval", func(c *Config) { c.FrameInterval = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(newFakeTerminal(10, 10), &scriptedRand{}, cfg, nil)
			assert.Error(t, err)
		})
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.TrailLength)
	assert.Equal(t, 2, cfg.TrailStride)
	assert.Equal(t, 2, cfg.DropsPerColumn)
	assert.Zero(t, cfg.FrameInterval, "default runs unthrottled")
	assert.Equal(t, 36, cfg.resetLimit(20), "reset limit is height + 2N")
	assert.Equal(t, 37, cfg.pruneLimit(20))
}

func TestPalette_MonotonicGreen(t *testing.T) {
	require.Len(t, Palette, 10)
	assert.Equal(t, uint8(250), Palette[0].G)
	assert.Equal(t, uint8(25), Palette[9].G)
	for i := 1; i < len(Palette); i++ {
		assert.Less(t, Palette[i].G, Palette[i-1].G, "green must strictly decrease at index %d", i)
	}
}

func TestInitialize_EmptyCollection(t *testing.T) {
	s, ft := newTestSession(t, 10, 20, &scriptedRand{})

	assert.Empty(t, s.Drops())
	w, h := s.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)
	assert.Equal(t, 1, ft.initCalls)
	assert.True(t, s.Active())
}

func TestInitialize_ModeSwitchFailure(t *testing.T) {
	ft := newFakeTerminal(10, 20)
	ft.initErr = &terminal.IOError{Op: "raw mode", Err: errors.New("not a terminal")}
	s, err := New(ft, &scriptedRand{}, DefaultConfig(), nil)
	require.NoError(t, err)

	err = s.Initialize()
	var ioe *terminal.IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "raw mode", ioe.Op)
	assert.Equal(t, 1, ft.finiCalls, "partial mode switch must be undone")
	assert.False(t, s.Active())
}

func TestInitialize_SizeFailureRestoresTerminal(t *testing.T) {
	ft := newFakeTerminal(10, 20)
	ft.sizeErr = &terminal.IOError{Op: "size", Err: errors.New("inappropriate ioctl")}
	s, err := New(ft, &scriptedRand{}, DefaultConfig(), nil)
	require.NoError(t, err)

	err = s.Initialize()
	var ioe *terminal.IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, 1, ft.finiCalls)
	assert.False(t, s.Active())
}

func TestResize_PrunesOutOfBounds(t *testing.T) {
	s, ft := newTestSession(t, 20, 30, &scriptedRand{})
	s.drops = []Drop{
		{X: 5, Y: 10},  // keep
		{X: 15, Y: 10}, // column gone
		{X: 5, Y: 30},  // keep, below limit 37
		{X: 5, Y: 37},  // at limit
		{X: 9, Y: 36},  // keep
	}

	ft.w, ft.h = 10, 20
	require.NoError(t, s.Resize())

	w, h := s.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)
	assert.ElementsMatch(t, []Drop{{X: 5, Y: 10}, {X: 5, Y: 30}, {X: 9, Y: 36}}, s.Drops())
}

func TestResize_SizeFailure(t *testing.T) {
	s, ft := newTestSession(t, 10, 20, &scriptedRand{})
	ft.sizeErr = &terminal.IOError{Op: "size", Err: errors.New("gone")}

	err := s.Resize()
	var ioe *terminal.IOError
	require.ErrorAs(t, err, &ioe)

	// Last known size retained
	w, h := s.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)
}

func TestResize_BoundsInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, ft := newTestSession(t, 40, 30, rng)
	cfg := s.Config()

	for round := 0; round < 50; round++ {
		ticks := rng.Intn(60)
		for i := 0; i < ticks; i++ {
			require.NoError(t, s.Tick())
		}

		ft.w = 1 + rng.Intn(60)
		ft.h = 1 + rng.Intn(40)
		require.NoError(t, s.Resize())

		for _, d := range s.Drops() {
			assert.Less(t, d.X, ft.w)
			assert.Less(t, d.Y, ft.h+2*cfg.TrailLength+1)
		}
	}
}

func TestTeardown_BestEffortAndIdempotent(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ft := newFakeTerminal(10, 20)
	s, err := New(ft, &scriptedRand{}, DefaultConfig(), zap.New(core))
	require.NoError(t, err)
	require.NoError(t, s.Initialize())

	ft.finiErr = errors.Join(
		&terminal.IOError{Op: "alt screen", Err: errors.New("broken pipe")},
		&terminal.IOError{Op: "restore", Err: errors.New("bad fd")},
	)

	assert.NotPanics(t, s.Teardown)
	assert.False(t, s.Active())
	assert.Equal(t, 1, logs.FilterMessage("terminal restore incomplete").Len())

	s.Teardown()
	assert.Equal(t, 1, ft.finiCalls, "teardown runs once")
}

func TestTeardown_BeforeInitialize(t *testing.T) {
	ft := newFakeTerminal(10, 20)
	s, err := New(ft, &scriptedRand{}, DefaultConfig(), nil)
	require.NoError(t, err)

	s.Teardown()
	assert.Zero(t, ft.finiCalls)
}
