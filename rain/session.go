package rain

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/matrix-rain/terminal"
)

// Rand is the random source a Session draws columns and glyphs from
// *math/rand.Rand satisfies it
type Rand interface {
	Intn(n int) int
}

// Drop is one falling column, tracked by its head position
type Drop struct {
	X, Y int
}

// Session manages the terminal mode and the animation state drawn on it
type Session struct {
	term terminal.Terminal
	rng  Rand
	cfg  Config
	log  *zap.Logger

	drops  []Drop
	width  int
	height int

	initialized bool
	tornDown    bool
}

// New creates a session; nothing touches the terminal until Initialize
func New(term terminal.Terminal, rng Rand, cfg Config, logger *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rain config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		term: term,
		rng:  rng,
		cfg:  cfg,
		log:  logger,
	}, nil
}

// Initialize enters raw mode and the alternate screen, then records the terminal size
// The drop collection starts empty
func (s *Session) Initialize() error {
	if s.initialized {
		return nil
	}

	if err := s.term.Init(); err != nil {
		// Undo whatever part of the mode switch succeeded
		s.term.Fini()
		return fmt.Errorf("initialize: %w", err)
	}
	s.initialized = true

	w, h, err := s.term.Size()
	if err != nil {
		s.Teardown()
		return fmt.Errorf("initialize: %w", err)
	}
	s.width, s.height = w, h
	s.drops = s.drops[:0]

	s.log.Debug("session initialized", zap.Int("width", w), zap.Int("height", h))
	return nil
}

// Resize re-queries the terminal size and permanently removes drops now out of bounds
func (s *Session) Resize() error {
	w, h, err := s.term.Size()
	if err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	s.width, s.height = w, h

	limit := s.cfg.pruneLimit(h)
	kept := s.drops[:0]
	for _, d := range s.drops {
		if d.X < w && d.Y < limit {
			kept = append(kept, d)
		}
	}
	pruned := len(s.drops) - len(kept)
	s.drops = kept

	s.log.Debug("terminal resized",
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Int("drops", len(kept)),
		zap.Int("pruned", pruned),
	)
	return nil
}

// Teardown restores raw mode and the original screen buffer
// Best-effort: failures are logged, never returned. Safe to call multiple times
func (s *Session) Teardown() {
	if !s.initialized || s.tornDown {
		return
	}
	s.tornDown = true

	if err := s.term.Fini(); err != nil {
		s.log.Warn("terminal restore incomplete", zap.Error(err))
		return
	}
	s.log.Debug("session torn down", zap.Int("drops", len(s.drops)))
}

// Active reports whether the terminal is currently in animation mode
func (s *Session) Active() bool {
	return s.initialized && !s.tornDown
}

// Size returns the last known terminal dimensions
func (s *Session) Size() (width, height int) {
	return s.width, s.height
}

// Drops returns a copy of the live drops
func (s *Session) Drops() []Drop {
	out := make([]Drop, len(s.drops))
	copy(out, s.drops)
	return out
}

// Config returns the session's animation settings
func (s *Session) Config() Config {
	return s.cfg
}
