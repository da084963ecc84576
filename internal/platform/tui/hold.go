package tui

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// repeatRelease is the release window once a key is auto-repeating.
// Repeat intervals are far shorter than the initial repeat delay.
const repeatRelease = 150 * time.Millisecond

// holdTracker infers key releases. Terminals only report presses and
// auto-repeats, so a direction key counts as held until no repeat has
// arrived for the release window. Before the first repeat the window must
// cover the terminal's initial repeat delay; after it a shorter one applies.
type holdTracker struct {
	release   time.Duration
	repeat    time.Duration
	last      map[core.Key]time.Time
	repeating map[core.Key]bool
}

func newHoldTracker(release time.Duration) *holdTracker {
	return &holdTracker{
		release:   release,
		repeat:    min(release, repeatRelease),
		last:      make(map[core.Key]time.Time),
		repeating: make(map[core.Key]bool),
	}
}

// Press records a press or repeat of k at now. It returns true when k was
// not already held, i.e. when the controller should see a KeyDown.
func (h *holdTracker) Press(k core.Key, now time.Time) bool {
	_, held := h.last[k]
	h.last[k] = now
	h.repeating[k] = held
	return !held
}

// Expired removes and returns the keys whose last press is older than their
// release window, in a stable order.
func (h *holdTracker) Expired(now time.Time) []core.Key {
	var out []core.Key
	for _, k := range []core.Key{core.KeyLeft, core.KeyRight} {
		t, ok := h.last[k]
		if !ok {
			continue
		}
		window := h.release
		if h.repeating[k] {
			window = h.repeat
		}
		if now.Sub(t) >= window {
			delete(h.last, k)
			delete(h.repeating, k)
			out = append(out, k)
		}
	}
	return out
}

// Held reports whether k is currently considered held.
func (h *holdTracker) Held(k core.Key) bool {
	_, ok := h.last[k]
	return ok
}
