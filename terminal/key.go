// @focus: #sys { io } #input { keys }
package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyCtrlC

	// KeySequence is any CSI/SS3 sequence (arrows, function keys, ...), consumed whole
	KeySequence
)

// Modifier represents key modifiers
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModAlt
	ModCtrl
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
)

// Event represents a terminal input event
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune
	Modifiers Modifier
}
