package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/matrix-rain/logging"
	"github.com/lixenwraith/matrix-rain/rain"
	"github.com/lixenwraith/matrix-rain/terminal"
)

func main() {
	logger := logging.NewDefault()
	defer logger.Sync()

	var session *rain.Session

	// Panic Recovery: deferred Teardown already ran unless the panic came from it
	defer func() {
		if r := recover(); r != nil {
			if session != nil && session.Active() {
				terminal.EmergencyReset(os.Stdout)
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMATRIX-RAIN CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	term, err := terminal.NewDefault()
	if err != nil {
		logger.Error("cannot open terminal", zap.Error(err))
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	session, err = rain.New(term, rng, rain.DefaultConfig(), logger)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	if err := run(term, session); err != nil {
		logger.Error("terminal failure", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
