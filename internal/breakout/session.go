// Package breakout implements a single-screen ball-and-paddle game.
//
// A Session owns every piece of mutable state: paddle, ball, brick grid,
// score, lives and phase. A frontend drives it from one goroutine by calling
// commands as input arrives and Tick at a fixed rate; nothing here blocks or
// locks. Collaborators (Renderer, Scoreboard, MessageSink) only receive
// values and cannot reach back into the session.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Session is one game round and everything needed to restart it.
type Session struct {
	cfg  config.BreakoutConfig
	seed int64
	rng  *SimpleRNG

	paddle Paddle
	ball   Ball
	grid   *BrickGrid

	score   int
	lives   int
	phase   Phase
	outcome Outcome
	ticks   uint64

	// pointerMoved suppresses the velocity move for the next step.
	pointerMoved bool

	sinks Sinks
}

var _ Commands = (*Session)(nil)

// New creates a session in the Idle phase. The configuration is validated
// first; a session is never built from an invalid one.
func New(cfg config.BreakoutConfig, seed int64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("breakout: new session: %w", err)
	}

	s := &Session{
		cfg:   cfg,
		seed:  seed,
		rng:   NewSimpleRNG(seed),
		grid:  NewBrickGrid(cfg.Bricks),
		lives: cfg.Gameplay.Lives,
		sinks: Sinks{}.withDefaults(),
	}
	s.paddle = Paddle{
		Y:      cfg.PaddleY(),
		Width:  cfg.Paddle.Width,
		Height: cfg.Paddle.Height,
		fieldW: cfg.Field.Width,
	}
	s.centerPaddle()
	s.ball = Ball{
		X:      cfg.Field.Width / 2,
		Y:      cfg.Field.Height / 2,
		Radius: cfg.Ball.Radius,
		DX:     cfg.Ball.Speed,
		DY:     -cfg.Ball.Speed,
	}
	return s, nil
}

// Attach connects collaborators and sends them the current score and lives.
func (s *Session) Attach(sinks Sinks) {
	s.sinks = sinks.withDefaults()
	s.sinks.Scoreboard.ScoreChanged(s.score)
	s.sinks.Scoreboard.LivesChanged(s.lives)
}

// Start begins play from Idle.
func (s *Session) Start() error {
	if s.phase != PhaseIdle {
		return fmt.Errorf("breakout: start from %s: %w", s.phase, ErrInvalidTransition)
	}
	s.phase = PhaseRunning
	s.sinks.Messages.HideMessage()
	return nil
}

// TogglePause switches between Running and Paused.
func (s *Session) TogglePause() error {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhaseRunning
	default:
		return fmt.Errorf("breakout: toggle pause from %s: %w", s.phase, ErrInvalidTransition)
	}
	return nil
}

// Restart resets score, lives, bricks, paddle and ball and returns to Idle.
// It is legal from every phase. The paddle velocity belongs to input and is kept.
func (s *Session) Restart() {
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.phase = PhaseIdle
	s.outcome = OutcomeNone
	s.pointerMoved = false
	s.grid.Reset()
	s.centerPaddle()
	s.resetBall()

	s.sinks.Scoreboard.ScoreChanged(s.score)
	s.sinks.Scoreboard.LivesChanged(s.lives)
	s.sinks.Messages.HideMessage()
}

// SetPaddleVelocity sets the per-tick paddle movement applied by the step.
func (s *Session) SetPaddleVelocity(v float64) {
	s.paddle.VX = v
}

// SetPaddleTargetX places the paddle's left edge at x (clamped) right away.
// The velocity move is skipped on the next step so the pointer wins that tick.
func (s *Session) SetPaddleTargetX(x float64) {
	s.paddle.MoveTo(x)
	s.pointerMoved = true
}

// Tick advances the session by one frame. The simulation step only runs
// while Running; the renderer is called every time.
func (s *Session) Tick() {
	s.ticks++
	if s.phase == PhaseRunning {
		s.step()
	}
	s.pointerMoved = false
	s.sinks.Renderer.Render(s.View())
}

// View returns a copy of the current state for rendering.
func (s *Session) View() View {
	bricks := make([]BrickView, 0, s.grid.Rows*s.grid.Cols)
	for row := range s.grid.Rows {
		for col := range s.grid.Cols {
			bricks = append(bricks, BrickView{
				Row:   row,
				Col:   col,
				Rect:  s.grid.Rect(row, col),
				Alive: s.grid.Alive(row, col),
			})
		}
	}
	return View{
		Field:   core.NewRect(0, 0, s.cfg.Field.Width, s.cfg.Field.Height),
		Paddle:  s.paddle.Rect(),
		Ball:    s.ball.Circle(),
		Bricks:  bricks,
		Score:   s.score,
		Lives:   s.lives,
		Phase:   s.phase,
		Outcome: s.outcome,
		Tick:    s.ticks,
	}
}

// Accessors. All return copies.

func (s *Session) Phase() Phase                  { return s.phase }
func (s *Session) Outcome() Outcome              { return s.outcome }
func (s *Session) Score() int                    { return s.score }
func (s *Session) Lives() int                    { return s.lives }
func (s *Session) Ticks() uint64                 { return s.ticks }
func (s *Session) Seed() int64                   { return s.seed }
func (s *Session) Ball() Ball                    { return s.ball }
func (s *Session) Paddle() Paddle                { return s.paddle }
func (s *Session) Config() config.BreakoutConfig { return s.cfg }

// BrickAlive reports whether the brick at row, col is still standing.
func (s *Session) BrickAlive(row, col int) bool { return s.grid.Alive(row, col) }

// BricksLeft returns the number of bricks still standing.
func (s *Session) BricksLeft() int { return s.grid.AliveCount() }

func (s *Session) centerPaddle() {
	s.paddle.MoveTo((s.cfg.Field.Width - s.paddle.Width) / 2)
}

// resetBall puts the ball back at the field center heading up, with a random
// horizontal direction.
func (s *Session) resetBall() {
	speed := s.cfg.Ball.Speed
	s.ball.X = s.cfg.Field.Width / 2
	s.ball.Y = s.cfg.Field.Height / 2
	s.ball.DX = speed * s.rng.Sign()
	s.ball.DY = -speed
}

func (s *Session) finish(o Outcome) {
	s.phase = PhaseOver
	s.outcome = o
	s.sinks.Messages.GameOver(o == OutcomeWon)
}
