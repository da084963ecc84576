package breakout

import "errors"

// Phase is the coarse state of a round.
type Phase int

const (
	PhaseIdle    Phase = iota // Waiting for start, after construction or restart
	PhaseRunning              // Simulation advances every tick
	PhasePaused               // Frozen, only reachable from Running
	PhaseOver                 // Round ended; see Outcome
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Outcome says how a finished round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// ErrInvalidTransition is returned (wrapped) when a command is not legal in
// the current phase. The session is left unchanged.
var ErrInvalidTransition = errors.New("invalid transition")
