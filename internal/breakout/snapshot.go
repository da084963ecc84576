package breakout

import (
	"fmt"
	"math"
)

// Snapshot contains the complete session state for replay and regression checks.
// Fields are primitives so it serializes the same everywhere.
type Snapshot struct {
	Tick     uint64  `msgpack:"tick"`
	Phase    int     `msgpack:"phase"`
	Outcome  int     `msgpack:"outcome"`
	Score    int     `msgpack:"score"`
	Lives    int     `msgpack:"lives"`
	PaddleX  float64 `msgpack:"paddle_x"`
	PaddleVX float64 `msgpack:"paddle_vx"`
	BallX    float64 `msgpack:"ball_x"`
	BallY    float64 `msgpack:"ball_y"`
	BallDX   float64 `msgpack:"ball_dx"`
	BallDY   float64 `msgpack:"ball_dy"`

	// Brick alive flags, row-major.
	Bricks []bool `msgpack:"bricks"`

	RNGState uint64 `msgpack:"rng_state"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:     s.ticks,
		Phase:    int(s.phase),
		Outcome:  int(s.outcome),
		Score:    s.score,
		Lives:    s.lives,
		PaddleX:  s.paddle.X,
		PaddleVX: s.paddle.VX,
		BallX:    s.ball.X,
		BallY:    s.ball.Y,
		BallDX:   s.ball.DX,
		BallDY:   s.ball.DY,
		Bricks:   s.grid.cells(),
		RNGState: s.rng.State(),
	}
}

// ApplySnapshot restores session state. The snapshot must come from a
// session with the same brick grid dimensions.
func (s *Session) ApplySnapshot(snap Snapshot) error {
	if !s.grid.restore(snap.Bricks) {
		return fmt.Errorf("breakout: apply snapshot: %d bricks, grid has %d",
			len(snap.Bricks), s.grid.Rows*s.grid.Cols)
	}
	s.ticks = snap.Tick
	s.phase = Phase(snap.Phase)
	s.outcome = Outcome(snap.Outcome)
	s.score = snap.Score
	s.lives = snap.Lives
	s.paddle.VX = snap.PaddleVX
	s.paddle.MoveTo(snap.PaddleX)
	s.ball.X, s.ball.Y = snap.BallX, snap.BallY
	s.ball.DX, s.ball.DY = snap.BallDX, snap.BallDY
	s.rng.state = snap.RNGState
	s.pointerMoved = false
	return nil
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Floats are hashed by their bit patterns, so equal hashes mean bit-identical state.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Outcome) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)   //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleVX)
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.BallDX)
	h = h*31 + math.Float64bits(snap.BallDY)

	for _, alive := range snap.Bricks {
		var v uint64
		if alive {
			v = 1
		}
		h = h*31 + v
	}

	h = h*31 + snap.RNGState

	return h
}
