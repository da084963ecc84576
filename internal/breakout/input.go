package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Controller turns device events into commands. It tracks which direction
// keys are held so that releasing one key while the other is still down
// keeps the paddle moving toward the held key.
type Controller struct {
	cmds        Commands
	speed       float64
	paddleWidth float64

	left, right bool
}

// NewController creates a controller sending commands to cmds.
// speed is the paddle speed per tick; paddleWidth centers the paddle on the pointer.
func NewController(cmds Commands, speed, paddleWidth float64) *Controller {
	return &Controller{cmds: cmds, speed: speed, paddleWidth: paddleWidth}
}

// KeyDown handles a key press (or a terminal auto-repeat of one).
func (c *Controller) KeyDown(k core.Key) {
	switch k {
	case core.KeyLeft:
		c.setHeld(k, true)
		c.cmds.SetPaddleVelocity(-c.speed)
	case core.KeyRight:
		c.setHeld(k, true)
		c.cmds.SetPaddleVelocity(c.speed)
	case core.KeySpace:
		c.Space()
	case core.KeyRestart:
		c.cmds.Restart()
	}
}

// KeyUp handles a key release.
func (c *Controller) KeyUp(k core.Key) {
	if !k.IsDirectional() {
		return
	}
	c.setHeld(k, false)
	if other := k.Opposite(); c.Held(other) {
		c.KeyDown(other)
		return
	}
	c.cmds.SetPaddleVelocity(0)
}

// Space starts an idle round or toggles pause. A press that is not legal
// in the current phase (for example after game over) is ignored.
func (c *Controller) Space() {
	if err := c.cmds.Start(); err == nil {
		return
	}
	_ = c.cmds.TogglePause()
}

// PointerMove centers the paddle on field coordinate x.
func (c *Controller) PointerMove(x float64) {
	c.cmds.SetPaddleTargetX(x - c.paddleWidth/2)
}

func (c *Controller) setHeld(k core.Key, held bool) {
	switch k {
	case core.KeyLeft:
		c.left = held
	case core.KeyRight:
		c.right = held
	}
}

// Held reports whether a direction key is currently held.
func (c *Controller) Held(k core.Key) bool {
	switch k {
	case core.KeyLeft:
		return c.left
	case core.KeyRight:
		return c.right
	default:
		return false
	}
}
