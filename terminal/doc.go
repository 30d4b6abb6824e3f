// @focus: #sys { term }
// Package terminal provides the terminal capability the rain animation draws on.
//
// Features:
//   - Raw input mode and alternate screen buffer with restoration on exit/panic
//   - Immediate cursor-move-then-print glyph writes in 24-bit color
//   - Zero-duration input and SIGWINCH polling, no background goroutines
//   - A tcell-backed implementation of the same interface
//
// The ANSI implementation bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
