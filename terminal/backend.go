package terminal

// Backend abstracts platform-specific terminal operations.
// All methods return immediately; nothing here blocks waiting for the user.
type Backend interface {
	// Lifecycle
	// Init enters raw input mode
	Init() error
	// Fini restores the input mode saved by Init
	Fini() error

	// Capabilities
	Size() (width, height int, err error)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// Read returns pending input without waiting; an empty result means nothing is available.
	Read() ([]byte, error)

	// Resized reports whether a resize was signalled since the previous call.
	Resized() bool
}
