package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// Renderer draws a frame. It is called once per tick with a fresh View.
type Renderer interface {
	Render(v View)
}

// Scoreboard displays score and lives.
type Scoreboard interface {
	ScoreChanged(score int)
	LivesChanged(lives int)
}

// MessageSink shows and hides the end-of-round message.
type MessageSink interface {
	GameOver(won bool)
	HideMessage()
}

// Commands is everything input can ask a session to do.
// Session implements it; a recorder can wrap it.
type Commands interface {
	Start() error
	TogglePause() error
	Restart()
	SetPaddleVelocity(v float64)
	SetPaddleTargetX(x float64)
}

// Sinks groups the collaborators a session notifies. Nil fields are ignored.
type Sinks struct {
	Renderer   Renderer
	Scoreboard Scoreboard
	Messages   MessageSink
}

func (s Sinks) withDefaults() Sinks {
	if s.Renderer == nil {
		s.Renderer = nopSink{}
	}
	if s.Scoreboard == nil {
		s.Scoreboard = nopSink{}
	}
	if s.Messages == nil {
		s.Messages = nopSink{}
	}
	return s
}

type nopSink struct{}

func (nopSink) Render(View)      {}
func (nopSink) ScoreChanged(int) {}
func (nopSink) LivesChanged(int) {}
func (nopSink) GameOver(bool)    {}
func (nopSink) HideMessage()     {}

// BrickView is one grid cell as seen by a renderer.
type BrickView struct {
	Row, Col int
	Rect     core.Rect
	Alive    bool
}

// View is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the session.
type View struct {
	Field   core.Rect
	Paddle  core.Rect
	Ball    core.Circle
	Bricks  []BrickView // Row-major, dead cells included
	Score   int
	Lives   int
	Phase   Phase
	Outcome Outcome
	Tick    uint64
}
