package breakout

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// recordingSinks counts every notification a session sends.
type recordingSinks struct {
	frames    int
	lastView  View
	scores    []int
	lives     []int
	gameOvers []bool
	hides     int
}

func (r *recordingSinks) Render(v View)      { r.frames++; r.lastView = v }
func (r *recordingSinks) ScoreChanged(n int) { r.scores = append(r.scores, n) }
func (r *recordingSinks) LivesChanged(n int) { r.lives = append(r.lives, n) }
func (r *recordingSinks) GameOver(won bool)  { r.gameOvers = append(r.gameOvers, won) }
func (r *recordingSinks) HideMessage()       { r.hides++ }

func (r *recordingSinks) sinks() Sinks {
	return Sinks{Renderer: r, Scoreboard: r, Messages: r}
}

func newTestSession(t *testing.T) (*Session, *recordingSinks) {
	t.Helper()
	s, err := New(config.DefaultBreakoutConfig(), 42)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	rec := &recordingSinks{}
	s.Attach(rec.sinks())
	return s, rec
}

func mustStart(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
}

func TestNewSession(t *testing.T) {
	s, rec := newTestSession(t)

	if s.Phase() != PhaseIdle || s.Outcome() != OutcomeNone {
		t.Errorf("new session should be idle, got %s/%s", s.Phase(), s.Outcome())
	}
	if s.Score() != 0 || s.Lives() != 3 {
		t.Errorf("score/lives = %d/%d, expected 0/3", s.Score(), s.Lives())
	}
	if p := s.Paddle(); p.X != 350 || p.Y != 570 {
		t.Errorf("paddle at (%v, %v), expected (350, 570)", p.X, p.Y)
	}
	if b := s.Ball(); b.X != 400 || b.Y != 300 || b.DX != 4 || b.DY != -4 {
		t.Errorf("ball = %+v, expected center moving (4, -4)", b)
	}
	if s.BricksLeft() != 45 {
		t.Errorf("BricksLeft() = %d, expected 45", s.BricksLeft())
	}
	if len(rec.scores) != 1 || len(rec.lives) != 1 || rec.lives[0] != 3 {
		t.Errorf("Attach should announce score and lives, got %v %v", rec.scores, rec.lives)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.BreakoutConfig)
	}{
		{"zero paddle width", func(c *config.BreakoutConfig) { c.Paddle.Width = 0 }},
		{"negative paddle width", func(c *config.BreakoutConfig) { c.Paddle.Width = -1 }},
		{"zero rows", func(c *config.BreakoutConfig) { c.Bricks.Rows = 0 }},
		{"zero cols", func(c *config.BreakoutConfig) { c.Bricks.Cols = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultBreakoutConfig()
			tc.mutate(&cfg)
			s, err := New(cfg, 1)
			if err == nil || s != nil {
				t.Fatal("New() should refuse an invalid config")
			}
			if !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestStateMachine(t *testing.T) {
	s, rec := newTestSession(t)

	if err := s.TogglePause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("TogglePause from idle should fail, got %v", err)
	}

	mustStart(t, s)
	if s.Phase() != PhaseRunning {
		t.Fatalf("after Start phase = %s, expected running", s.Phase())
	}
	if rec.hides != 1 {
		t.Errorf("Start should hide the message, hides = %d", rec.hides)
	}

	if err := s.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start while running should fail, got %v", err)
	}
	if s.Phase() != PhaseRunning {
		t.Error("failed Start must not change phase")
	}

	if err := s.TogglePause(); err != nil || s.Phase() != PhasePaused {
		t.Fatalf("TogglePause: err=%v phase=%s", err, s.Phase())
	}
	if err := s.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start while paused should fail, got %v", err)
	}
	if err := s.TogglePause(); err != nil || s.Phase() != PhaseRunning {
		t.Fatalf("TogglePause back: err=%v phase=%s", err, s.Phase())
	}

	s.Restart()
	if s.Phase() != PhaseIdle {
		t.Errorf("Restart should return to idle, got %s", s.Phase())
	}
}

func TestPausedAndIdleDoNotStep(t *testing.T) {
	s, rec := newTestSession(t)
	s.SetPaddleVelocity(8)

	before := s.Ball()
	s.Tick()
	if s.Ball() != before || s.Paddle().X != 350 {
		t.Error("idle tick should not move anything")
	}

	mustStart(t, s)
	_ = s.TogglePause()
	s.Tick()
	if s.Ball() != before || s.Paddle().X != 350 {
		t.Error("paused tick should not move anything")
	}

	if rec.frames != 2 {
		t.Errorf("renderer should be called every tick, frames = %d", rec.frames)
	}
	if s.Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", s.Ticks())
	}
}

func TestPaddleStaysInBounds(t *testing.T) {
	s, _ := newTestSession(t)
	mustStart(t, s)

	rng := NewSimpleRNG(7)
	for tick := range 2000 {
		switch int(rng.Float64() * 4) {
		case 0:
			s.SetPaddleVelocity(-8)
		case 1:
			s.SetPaddleVelocity(8)
		case 2:
			s.SetPaddleTargetX(rng.Float64()*1200 - 200)
		}
		s.Tick()

		if x := s.Paddle().X; x < 0 || x > 700 {
			t.Fatalf("tick %d: paddle x = %v out of [0, 700]", tick, x)
		}
		if s.Phase() == PhaseOver {
			s.Restart()
			mustStart(t, s)
		}
	}
}

func TestPointerOverridesVelocityForOneTick(t *testing.T) {
	s, _ := newTestSession(t)
	mustStart(t, s)
	s.SetPaddleVelocity(8)

	s.SetPaddleTargetX(100)
	if s.Paddle().X != 100 {
		t.Fatalf("SetPaddleTargetX should move immediately, x = %v", s.Paddle().X)
	}

	s.Tick()
	if s.Paddle().X != 100 {
		t.Errorf("velocity should be skipped on the pointer tick, x = %v", s.Paddle().X)
	}

	s.Tick()
	if s.Paddle().X != 108 {
		t.Errorf("velocity should apply again after, x = %v", s.Paddle().X)
	}
}

func TestScenarioFirstBrickHit(t *testing.T) {
	s, rec := newTestSession(t)
	mustStart(t, s)

	// Straight down onto row 0, col 0 (35..110 x 60..85).
	s.ball = Ball{X: 70, Y: 50, Radius: 8, DX: 0, DY: 4}
	s.Tick()

	if s.BrickAlive(0, 0) {
		t.Error("brick (0, 0) should be dead")
	}
	if s.Score() != 10 {
		t.Errorf("score = %d, expected 10", s.Score())
	}
	if s.Ball().DY != -4 {
		t.Errorf("dy = %v, expected -4", s.Ball().DY)
	}
	if s.BricksLeft() != 44 {
		t.Errorf("BricksLeft() = %d, expected 44", s.BricksLeft())
	}
	if len(rec.scores) != 2 || rec.scores[1] != 10 {
		t.Errorf("ScoreChanged calls = %v, expected [0 10]", rec.scores)
	}
}

func TestOneBrickPerTick(t *testing.T) {
	s, _ := newTestSession(t)
	mustStart(t, s)

	// Straddles the gap between (0, 0) and (0, 1); only the first is hit.
	s.ball = Ball{X: 115, Y: 50, Radius: 8, DX: 0, DY: 4}
	s.Tick()

	if s.BrickAlive(0, 0) || !s.BrickAlive(0, 1) {
		t.Errorf("expected only (0, 0) dead: (0,0)=%v (0,1)=%v", s.BrickAlive(0, 0), s.BrickAlive(0, 1))
	}
	if s.Score() != 10 {
		t.Errorf("score = %d, expected 10", s.Score())
	}
}

func TestScenarioRightEdge(t *testing.T) {
	s, _ := newTestSession(t)
	mustStart(t, s)

	// After advance x = fieldWidth - radius + 1.
	s.ball = Ball{X: 789, Y: 300, Radius: 8, DX: 4, DY: -4}
	s.Tick()

	b := s.Ball()
	if b.X != 793 {
		t.Fatalf("x after advance = %v, expected 793", b.X)
	}
	if b.DX >= 0 {
		t.Errorf("dx = %v, expected negative", b.DX)
	}

	s.Tick()
	if b := s.Ball(); b.X+b.Radius > 800 {
		t.Errorf("ball should re-enter the field, right edge at %v", b.X+b.Radius)
	}
}

func TestSingleVerticalFlipPerTick(t *testing.T) {
	tests := []struct {
		name   string
		ball   Ball
		wantDY float64
		score  int
	}{
		{"top wall", Ball{X: 400, Y: 10, Radius: 8, DX: 0, DY: -4}, 4, 0},
		{"top wall above a brick column", Ball{X: 70, Y: 10, Radius: 8, DX: 0, DY: -4}, 4, 0},
		{"paddle center", Ball{X: 400, Y: 560, Radius: 8, DX: 0, DY: 4}, -4, 0},
		{"paddle edge", Ball{X: 445, Y: 560, Radius: 8, DX: 4, DY: 4}, -4, 0},
		{"brick from below", Ball{X: 70, Y: 100, Radius: 8, DX: 0, DY: -4}, 4, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			mustStart(t, s)
			s.ball = tc.ball

			s.Tick()

			if got := s.Ball().DY; got != tc.wantDY {
				t.Errorf("dy = %v, expected %v", got, tc.wantDY)
			}
			if s.Score() != tc.score {
				t.Errorf("score = %d, expected %d", s.Score(), tc.score)
			}
			if s.Lives() != 3 || s.Phase() != PhaseRunning {
				t.Errorf("lives = %d, phase = %s; the tick should not lose a life", s.Lives(), s.Phase())
			}
		})
	}
}

// Layouts where one tick could touch a brick and the top wall or the paddle
// are refused before a session exists.
func TestNewRejectsDoubleFlipLayouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.BreakoutConfig)
	}{
		{"grid against the top wall", func(c *config.BreakoutConfig) { c.Bricks.OffsetY = 10 }},
		{"grid against the paddle", func(c *config.BreakoutConfig) { c.Bricks.Rows = 15 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultBreakoutConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg, 1); !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	// The tightest layouts that still pass.
	cfg := config.DefaultBreakoutConfig()
	cfg.Bricks.OffsetY = 2 * cfg.Ball.Radius
	cfg.Bricks.Rows = 14
	if _, err := New(cfg, 1); err != nil {
		t.Errorf("New() of the tightest valid layout failed: %v", err)
	}
}

func TestScenarioLastLifeLost(t *testing.T) {
	s, rec := newTestSession(t)
	mustStart(t, s)
	s.lives = 1

	s.ball = Ball{X: 100, Y: 595, Radius: 8, DX: 0, DY: 4}
	s.Tick()

	if s.Lives() != 0 {
		t.Errorf("lives = %d, expected 0", s.Lives())
	}
	if s.Phase() != PhaseOver || s.Outcome() != OutcomeLost {
		t.Fatalf("phase = %s/%s, expected over/lost", s.Phase(), s.Outcome())
	}
	if b := s.Ball(); b.X != 100 || b.Y != 599 {
		t.Errorf("ball should not be reset, got (%v, %v)", b.X, b.Y)
	}
	if len(rec.gameOvers) != 1 || rec.gameOvers[0] {
		t.Errorf("GameOver calls = %v, expected [false]", rec.gameOvers)
	}

	// No further steps until restart.
	frozen := s.Snapshot()
	s.SetPaddleVelocity(8)
	for range 10 {
		s.Tick()
	}
	after := s.Snapshot()
	if after.BallY != frozen.BallY || after.PaddleX != frozen.PaddleX || after.Lives != 0 {
		t.Error("session kept stepping after game over")
	}
	if err := s.TogglePause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("TogglePause after game over should fail, got %v", err)
	}
}

func TestLifeLostResetsBall(t *testing.T) {
	s, rec := newTestSession(t)
	mustStart(t, s)

	s.ball = Ball{X: 100, Y: 595, Radius: 8, DX: 0, DY: 4}
	s.Tick()

	if s.Lives() != 2 || s.Phase() != PhaseRunning {
		t.Fatalf("lives/phase = %d/%s, expected 2/running", s.Lives(), s.Phase())
	}
	b := s.Ball()
	if b.X != 400 || b.Y != 300 || b.DY != -4 || (b.DX != 4 && b.DX != -4) {
		t.Errorf("ball not reset to center: %+v", b)
	}
	if rec.lives[len(rec.lives)-1] != 2 {
		t.Errorf("LivesChanged should report 2, got %v", rec.lives)
	}
}

func TestScenarioRestartFromWon(t *testing.T) {
	s, rec := newTestSession(t)
	mustStart(t, s)

	for row := range 5 {
		for col := range 9 {
			if row != 0 || col != 0 {
				s.grid.Kill(row, col)
			}
		}
	}
	s.score = 440
	s.ball = Ball{X: 70, Y: 50, Radius: 8, DX: 0, DY: 4}
	s.Tick()

	if s.Score() != 450 {
		t.Fatalf("score = %d, expected 450", s.Score())
	}
	if s.Phase() != PhaseOver || s.Outcome() != OutcomeWon {
		t.Fatalf("phase = %s/%s, expected over/won in the same tick", s.Phase(), s.Outcome())
	}
	if len(rec.gameOvers) != 1 || !rec.gameOvers[0] {
		t.Errorf("GameOver calls = %v, expected [true]", rec.gameOvers)
	}

	s.Restart()
	if s.Score() != 0 || s.Lives() != 3 {
		t.Errorf("score/lives = %d/%d, expected 0/3", s.Score(), s.Lives())
	}
	if s.BricksLeft() != 45 {
		t.Errorf("BricksLeft() = %d, expected 45", s.BricksLeft())
	}
	if s.Phase() != PhaseIdle || s.Outcome() != OutcomeNone {
		t.Errorf("phase = %s/%s, expected idle/none", s.Phase(), s.Outcome())
	}
	if s.Paddle().X != 350 {
		t.Errorf("paddle x = %v, expected 350", s.Paddle().X)
	}
}

// autoplay keeps the paddle under the ball with a drifting offset so the
// ball sweeps the whole grid.
func autoplay(s *Session) {
	off := float64(int(s.Ticks()*7)%61 - 30)
	s.SetPaddleTargetX(s.Ball().X - 50 + off)
}

func TestScoreProperties(t *testing.T) {
	s, _ := newTestSession(t)
	mustStart(t, s)

	maxScore := s.Config().MaxScore()
	prev := 0
	for tick := range 200000 {
		autoplay(s)
		dyBefore := s.Ball().DY
		s.Tick()

		score := s.Score()
		if score%10 != 0 || score < prev || score > maxScore {
			t.Fatalf("tick %d: bad score %d (prev %d, max %d)", tick, score, prev, maxScore)
		}
		if score > prev && s.Ball().DY != -dyBefore {
			t.Fatalf("tick %d: brick hit should flip dy exactly once: %v -> %v", tick, dyBefore, s.Ball().DY)
		}
		if score == maxScore && (s.Phase() != PhaseOver || s.Outcome() != OutcomeWon) {
			t.Fatalf("tick %d: max score reached but phase = %s/%s", tick, s.Phase(), s.Outcome())
		}
		prev = score
		if s.Phase() == PhaseOver {
			return
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s, err := New(config.DefaultBreakoutConfig(), 12345)
		if err != nil {
			t.Fatal(err)
		}
		_ = s.Start()
		for i := range 3000 {
			switch {
			case i%50 < 20:
				s.SetPaddleVelocity(8)
			case i%50 < 40:
				s.SetPaddleVelocity(-8)
			default:
				s.SetPaddleVelocity(0)
			}
			s.Tick()
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
}

func TestViewIsACopy(t *testing.T) {
	s, rec := newTestSession(t)
	s.Tick()

	v := rec.lastView
	if len(v.Bricks) != 45 {
		t.Fatalf("view has %d bricks, expected 45", len(v.Bricks))
	}
	if v.Bricks[0].Row != 0 || v.Bricks[9].Row != 1 || v.Bricks[9].Col != 0 {
		t.Error("view bricks should be row-major")
	}
	if v.Tick != 1 || v.Lives != 3 || v.Phase != PhaseIdle {
		t.Errorf("view header = tick %d lives %d phase %s", v.Tick, v.Lives, v.Phase)
	}

	v.Bricks[0].Alive = false
	if !s.BrickAlive(0, 0) {
		t.Error("mutating a view must not affect the session")
	}
}
