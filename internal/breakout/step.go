package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// step runs one simulation tick. The order of the stages is part of the
// game's behavior; do not reorder.
func (s *Session) step() {
	// 1. Paddle. A pointer move this tick already positioned it.
	if !s.pointerMoved {
		s.paddle.MoveBy(s.paddle.VX)
	}

	// 2. Ball.
	s.ball.Advance()

	// 3. Walls. No position correction; the ball re-enters on the next tick.
	b := &s.ball
	if b.X+b.Radius > s.cfg.Field.Width || b.X-b.Radius < 0 {
		b.ReflectHorizontal()
	}
	if b.Y-b.Radius < 0 {
		b.ReflectVertical()
	}

	// 4. Paddle.
	if hitsPaddle(*b, s.paddle) {
		b.ReflectVertical()
		b.DX = PaddleSpin(*b, s.paddle, s.cfg.Ball.Spin)
	}

	// 5. Bottom.
	if b.Y+b.Radius > s.cfg.Field.Height {
		s.lives--
		s.sinks.Scoreboard.LivesChanged(s.lives)
		if s.lives <= 0 {
			s.finish(OutcomeLost)
			return
		}
		s.resetBall()
	}

	// 6. Bricks. First overlap in row-major order only.
	s.hitFirstBrick()

	// 7. Win.
	if s.grid.IsCleared() {
		s.finish(OutcomeWon)
	}
}

func (s *Session) hitFirstBrick() {
	c := s.ball.Circle()
	hitRow, hitCol := -1, -1
	s.grid.ForEachAlive(func(row, col int, r core.Rect) bool {
		if core.CircleIntersectsRect(c, r) {
			hitRow, hitCol = row, col
			return false
		}
		return true
	})
	if hitRow < 0 {
		return
	}

	s.ball.ReflectVertical()
	s.grid.Kill(hitRow, hitCol)
	s.score += s.cfg.Gameplay.BrickReward
	s.sinks.Scoreboard.ScoreChanged(s.score)
}
