package rain

import (
	"fmt"
)

// Tick advances the animation by exactly one frame
// Every drop falls one row and its trail is redrawn, then one drop is added while under the cap
func (s *Session) Tick() error {
	limit := s.cfg.resetLimit(s.height)

	for i := range s.drops {
		d := &s.drops[i]

		// Trail fully below the screen: reborn at the top in a new column
		if d.Y > limit {
			d.Y = 0
			d.X = s.randomColumn()
		}
		d.Y++

		if err := s.drawTrail(*d); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
	}

	if s.width > 0 && len(s.drops) < s.cfg.DropsPerColumn*s.width {
		s.drops = append(s.drops, Drop{X: s.randomColumn(), Y: 0})
	}

	if err := s.term.Flush(); err != nil {
		return fmt.Errorf("tick: %w", err)
	}
	return nil
}

// drawTrail draws the head and the dimming glyphs above it, stride rows apart
func (s *Session) drawTrail(d Drop) error {
	for offset := 0; offset < s.cfg.TrailLength; offset++ {
		realY := d.Y - offset*s.cfg.TrailStride
		if realY < 0 {
			// Further offsets only go higher
			break
		}
		if realY > s.height {
			continue
		}
		if err := s.term.DrawGlyph(d.X, realY, s.glyph(), s.cfg.Palette[offset]); err != nil {
			return err
		}
	}
	return nil
}

// glyph picks '1' or '0' with equal probability, fresh on every draw
func (s *Session) glyph() rune {
	if s.rng.Intn(2) == 1 {
		return '1'
	}
	return '0'
}

// randomColumn returns a uniform column in [0, width), 0 when the terminal has no columns
func (s *Session) randomColumn() int {
	if s.width <= 0 {
		return 0
	}
	return s.rng.Intn(s.width)
}
