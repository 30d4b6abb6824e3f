package main

import (
	"time"

	"github.com/lixenwraith/matrix-rain/rain"
	"github.com/lixenwraith/matrix-rain/terminal"
)

// run owns the session from Initialize to Teardown
// Returns nil on Escape; any tick, poll or resize error aborts the loop
func run(term terminal.Terminal, session *rain.Session) error {
	if err := session.Initialize(); err != nil {
		return err
	}
	// Restores the terminal on every exit path, panics included
	defer session.Teardown()

	frame := session.Config().FrameInterval

	for {
		start := time.Now()

		if err := session.Tick(); err != nil {
			return err
		}

		ev, ok, err := term.PollEvent()
		if err != nil {
			return err
		}
		if ok {
			switch ev.Type {
			case terminal.EventKey:
				if ev.Key == terminal.KeyEscape {
					return nil
				}
			case terminal.EventResize:
				if err := session.Resize(); err != nil {
					return err
				}
			}
		}

		throttle(frame, start)
	}
}

// throttle sleeps out the rest of the frame when a frame cap is set
func throttle(frame time.Duration, start time.Time) {
	if frame <= 0 {
		return
	}
	if remaining := frame - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
}
