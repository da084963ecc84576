package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Ball is the single ball in play. X and Y are its center.
type Ball struct {
	X, Y   float64
	Radius float64
	DX, DY float64 // Velocity per tick
}

// Advance moves the ball by one tick of velocity.
// There is no sub-stepping: a fast ball may tunnel through a thin brick.
func (b *Ball) Advance() {
	b.X += b.DX
	b.Y += b.DY
}

// ReflectVertical reverses vertical velocity.
func (b *Ball) ReflectVertical() {
	b.DY = -b.DY
}

// ReflectHorizontal reverses horizontal velocity.
func (b *Ball) ReflectHorizontal() {
	b.DX = -b.DX
}

// Circle returns the ball as a collision shape.
func (b *Ball) Circle() core.Circle {
	return core.Circle{X: b.X, Y: b.Y, R: b.Radius}
}

// Paddle is the player's paddle. Y never changes after construction.
type Paddle struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
	VX            float64 // Set by input, applied by the step

	fieldW float64
}

// MoveBy shifts the paddle horizontally and clamps it into the field.
func (p *Paddle) MoveBy(dx float64) {
	p.MoveTo(p.X + dx)
}

// MoveTo places the paddle's left edge at x, clamped into the field.
func (p *Paddle) MoveTo(x float64) {
	p.X = core.ClampF(x, 0, p.fieldW-p.Width)
}

// Rect returns the paddle's bounds.
func (p *Paddle) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// PaddleSpin computes the horizontal velocity a ball leaves the paddle with.
// The hit position is normalized to [0, 1] across the paddle, so the result
// stays within ±factor/2 even when the ball center is past an edge.
func PaddleSpin(ball Ball, paddle Paddle, factor float64) float64 {
	if paddle.Width <= 0 {
		return 0
	}
	hitPos := core.ClampF((ball.X-paddle.X)/paddle.Width, 0, 1)
	return (hitPos - 0.5) * factor
}

// hitsPaddle is the paddle contact test. Only the paddle's top edge and its
// x-span are checked; a ball already below the paddle still counts.
func hitsPaddle(ball Ball, paddle Paddle) bool {
	return ball.Y+ball.Radius > paddle.Y &&
		ball.X > paddle.X &&
		ball.X < paddle.X+paddle.Width
}
