package rain

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/matrix-rain/terminal"
)

// Palette is the 10-shade trail gradient, brightest green at the head
var Palette = []terminal.RGB{
	{R: 100, G: 250, B: 100},
	{R: 90, G: 225, B: 90},
	{R: 80, G: 200, B: 80},
	{R: 70, G: 175, B: 70},
	{R: 60, G: 150, B: 60},
	{R: 50, G: 125, B: 50},
	{R: 40, G: 100, B: 40},
	{R: 30, G: 75, B: 30},
	{R: 20, G: 50, B: 20},
	{R: 10, G: 25, B: 10},
}

const (
	// DefaultTrailLength is N, the number of glyphs drawn per drop
	DefaultTrailLength = 8
	// DefaultTrailStride is the row gap between trail glyphs
	DefaultTrailStride = 2
	// DefaultDropsPerColumn caps the drop count at this multiple of the width
	DefaultDropsPerColumn = 2
)

// Config tunes the animation
type Config struct {
	TrailLength    int
	TrailStride    int
	DropsPerColumn int
	Palette        []terminal.RGB

	// FrameInterval caps the frame rate when positive; zero runs unthrottled
	FrameInterval time.Duration
}

// DefaultConfig returns the stock rain: 8-glyph trails two rows apart, unthrottled
func DefaultConfig() Config {
	return Config{
		TrailLength:    DefaultTrailLength,
		TrailStride:    DefaultTrailStride,
		DropsPerColumn: DefaultDropsPerColumn,
		Palette:        Palette,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	if c.TrailLength < 1 {
		return fmt.Errorf("trail length must be positive, got %d", c.TrailLength)
	}
	if c.TrailLength > len(c.Palette) {
		return fmt.Errorf("trail length %d exceeds palette size %d", c.TrailLength, len(c.Palette))
	}
	if c.TrailStride < 1 {
		return fmt.Errorf("trail stride must be positive, got %d", c.TrailStride)
	}
	if c.DropsPerColumn < 1 {
		return fmt.Errorf("drops per column must be positive, got %d", c.DropsPerColumn)
	}
	if c.FrameInterval < 0 {
		return errors.New("frame interval must not be negative")
	}
	return nil
}

// resetLimit is the head row past which a drop's whole trail is offscreen: height + stride*N
func (c Config) resetLimit(height int) int {
	return height + c.TrailStride*c.TrailLength
}

// pruneLimit bounds Y on resize; the largest Y a tick can leave behind is resetLimit+1
func (c Config) pruneLimit(height int) int {
	return c.resetLimit(height) + 1
}
