// Package replay records the commands sent to a breakout session and plays
// them back headlessly. A session is fully determined by its config, seed
// and command journal, so a replay ends in the same snapshot as the
// original run.
package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
)

// Kind identifies a recorded command.
type Kind string

const (
	KindStart    Kind = "start"
	KindPause    Kind = "pause"
	KindRestart  Kind = "restart"
	KindVelocity Kind = "velocity"
	KindTarget   Kind = "target"
)

// Command is one journal entry. Tick is the number of ticks the session had
// run when the command arrived, so it applies before tick Tick+1.
type Command struct {
	Tick  uint64  `msgpack:"tick"`
	Kind  Kind    `msgpack:"kind"`
	Value float64 `msgpack:"value,omitempty"`
}

// ErrUnknownKind is returned when a journal holds a command kind this
// version does not understand.
var ErrUnknownKind = errors.New("unknown command kind")

// ErrOutOfOrder is returned when journal ticks go backwards.
var ErrOutOfOrder = errors.New("journal out of order")

// Recorder forwards commands to a session and journals the ones that took effect.
type Recorder struct {
	session *breakout.Session
	journal []Command
}

var _ breakout.Commands = (*Recorder)(nil)

// NewRecorder wraps a session.
func NewRecorder(s *breakout.Session) *Recorder {
	return &Recorder{session: s}
}

func (r *Recorder) record(kind Kind, value float64) {
	r.journal = append(r.journal, Command{Tick: r.session.Ticks(), Kind: kind, Value: value})
}

// Start forwards to the session. Rejected transitions are not journaled;
// they change nothing and would be rejected again on replay.
func (r *Recorder) Start() error {
	if err := r.session.Start(); err != nil {
		return err
	}
	r.record(KindStart, 0)
	return nil
}

// TogglePause forwards to the session.
func (r *Recorder) TogglePause() error {
	if err := r.session.TogglePause(); err != nil {
		return err
	}
	r.record(KindPause, 0)
	return nil
}

// Restart forwards to the session.
func (r *Recorder) Restart() {
	r.session.Restart()
	r.record(KindRestart, 0)
}

// SetPaddleVelocity forwards to the session.
func (r *Recorder) SetPaddleVelocity(v float64) {
	r.session.SetPaddleVelocity(v)
	r.record(KindVelocity, v)
}

// SetPaddleTargetX forwards to the session.
func (r *Recorder) SetPaddleTargetX(x float64) {
	r.session.SetPaddleTargetX(x)
	r.record(KindTarget, x)
}

// Journal returns a copy of the recorded commands.
func (r *Recorder) Journal() []Command {
	out := make([]Command, len(r.journal))
	copy(out, r.journal)
	return out
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	return len(r.journal)
}

// Apply sends one journaled command to cmds.
func Apply(cmds breakout.Commands, c Command) error {
	switch c.Kind {
	case KindStart:
		return cmds.Start()
	case KindPause:
		return cmds.TogglePause()
	case KindRestart:
		cmds.Restart()
	case KindVelocity:
		cmds.SetPaddleVelocity(c.Value)
	case KindTarget:
		cmds.SetPaddleTargetX(c.Value)
	default:
		return fmt.Errorf("replay: %w %q", ErrUnknownKind, c.Kind)
	}
	return nil
}

// Run rebuilds a session from cfg and seed and replays journal against it
// for endTick ticks. Commands stamped at or after endTick are applied after
// the last tick. It returns the final snapshot.
//
// A command the replayed session rejects as an invalid transition is
// skipped. That only happens once the replay has diverged, which the
// caller sees as a snapshot that differs from the recorded one.
func Run(cfg config.BreakoutConfig, seed int64, journal []Command, endTick uint64) (breakout.Snapshot, error) {
	s, err := breakout.New(cfg, seed)
	if err != nil {
		return breakout.Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	next := 0
	applyUpTo := func(tick uint64) error {
		for next < len(journal) && journal[next].Tick <= tick {
			if next > 0 && journal[next].Tick < journal[next-1].Tick {
				return fmt.Errorf("replay: command %d at tick %d: %w", next, journal[next].Tick, ErrOutOfOrder)
			}
			if err := Apply(s, journal[next]); err != nil && !errors.Is(err, breakout.ErrInvalidTransition) {
				return fmt.Errorf("replay: command %d at tick %d: %w", next, journal[next].Tick, err)
			}
			next++
		}
		return nil
	}

	for tick := range endTick {
		if err := applyUpTo(tick); err != nil {
			return breakout.Snapshot{}, err
		}
		s.Tick()
	}
	if err := applyUpTo(^uint64(0)); err != nil {
		return breakout.Snapshot{}, err
	}

	return s.Snapshot(), nil
}
