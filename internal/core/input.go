package core

// Key is a device-independent key identity, abstracted from physical key presses.
// Frontends translate their native key events into Keys so the input adapter
// works the same for terminal and window input.
type Key int

const (
	KeyNone    Key = iota
	KeyLeft        // Left arrow, A
	KeyRight       // Right arrow, D
	KeySpace       // Space - start or toggle pause
	KeyRestart     // R - restart the round
	KeyQuit        // Q, Ctrl+C - exit the frontend
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySpace:
		return "Space"
	case KeyRestart:
		return "Restart"
	case KeyQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether the key steers the paddle.
func (k Key) IsDirectional() bool {
	return k == KeyLeft || k == KeyRight
}

// Opposite returns the opposite directional key, or KeyNone.
func (k Key) Opposite() Key {
	switch k {
	case KeyLeft:
		return KeyRight
	case KeyRight:
		return KeyLeft
	default:
		return KeyNone
	}
}

// Binding maps several physical keys of one device onto a Key.
type Binding[P comparable] struct {
	Key      Key
	Physical []P
}

// Pressed reports whether any of the binding's physical keys went down.
func (b Binding[P]) Pressed(justPressed func(P) bool) bool {
	for _, p := range b.Physical {
		if justPressed(p) {
			return true
		}
	}
	return false
}

// Released reports whether the binding's Key was let go: one of its
// physical keys went up and none of the others is still down.
func (b Binding[P]) Released(justReleased, down func(P) bool) bool {
	released := false
	for _, p := range b.Physical {
		if down(p) {
			return false
		}
		if justReleased(p) {
			released = true
		}
	}
	return released
}
